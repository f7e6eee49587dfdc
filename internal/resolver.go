package internal

type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftMethod
	ftInitializer
)

type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
)

// resolver is a static pass over the tree. It records, for every
// local variable reference, how many environments separate it from
// its declaration, and reports scoping mistakes before execution.
type resolver struct {
	state  *interpreterState
	locals map[expr]int

	// each scope maps a name to whether its initializer has finished
	scopes []map[string]bool

	currentFunction functionType
	currentClass    classType
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		s.accept(r)
	}
}

func (r *resolver) resolveExpr(ex expr) {
	ex.accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.lexeme]; ok {
		r.state.tokenError(errAlreadyDeclared, name)
	}
	scope[name.lexeme] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal stores the distance to the innermost scope declaring
// name. Names not found in any scope are globals and stay unrecorded.
func (r *resolver) resolveLocal(ex expr, name *token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.lexeme]; ok {
			r.locals[ex] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveFunction(fn *fnStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() {
		r.currentFunction = enclosingFunction
	}()

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param.lexeme)
	}
	r.resolve(fn.body)
	r.endScope()
}

func (r *resolver) visitExprStmt(stmt *exprStmt) (R, error) {
	r.resolveExpr(stmt.expression)
	return nil, nil
}

func (r *resolver) visitPrintStmt(stmt *printStmt) (R, error) {
	r.resolveExpr(stmt.expression)
	return nil, nil
}

func (r *resolver) visitVarStmt(stmt *varStmt) (R, error) {
	r.declare(stmt.name)
	if stmt.initializer != nil {
		r.resolveExpr(stmt.initializer)
	}
	r.define(stmt.name.lexeme)
	return nil, nil
}

func (r *resolver) visitBlockStmt(stmt *blockStmt) (R, error) {
	r.beginScope()
	r.resolve(stmt.stmts)
	r.endScope()
	return nil, nil
}

func (r *resolver) visitIfStmt(stmt *ifStmt) (R, error) {
	r.resolveExpr(stmt.condition)
	stmt.thenBranch.accept(r)
	if stmt.elseBranch != nil {
		stmt.elseBranch.accept(r)
	}
	return nil, nil
}

func (r *resolver) visitWhileStmt(stmt *whileStmt) (R, error) {
	r.resolveExpr(stmt.condition)
	stmt.body.accept(r)
	return nil, nil
}

func (r *resolver) visitFnStmt(stmt *fnStmt) (R, error) {
	r.declare(stmt.name)
	r.define(stmt.name.lexeme)
	r.resolveFunction(stmt, ftFunction)
	return nil, nil
}

func (r *resolver) visitReturnStmt(stmt *returnStmt) (R, error) {
	if r.currentFunction == ftNone {
		r.state.tokenError(errTopLevelReturn, stmt.keyword)
	}
	if stmt.value != nil {
		r.resolveExpr(stmt.value)
	}
	return nil, nil
}

func (r *resolver) visitClassStmt(stmt *classStmt) (R, error) {
	enclosingClass := r.currentClass
	r.currentClass = ctClass
	defer func() {
		r.currentClass = enclosingClass
	}()

	r.declare(stmt.name)
	r.define(stmt.name.lexeme)

	if stmt.superclass != nil {
		if stmt.superclass.name.lexeme == stmt.name.lexeme {
			r.state.tokenError(errInheritFromSelf, stmt.superclass.name)
		}
		r.currentClass = ctSubclass
		r.resolveExpr(stmt.superclass)

		r.beginScope()
		r.define("super")
	}

	r.beginScope()
	r.define("this")

	for _, method := range stmt.methods {
		kind := ftMethod
		if method.name.lexeme == "init" {
			kind = ftInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if stmt.superclass != nil {
		r.endScope()
	}
	return nil, nil
}

func (r *resolver) visitAssignExpr(expr *assignExpr) (R, error) {
	r.resolveExpr(expr.value)
	r.resolveLocal(expr, expr.name)
	return nil, nil
}

func (r *resolver) visitBinaryExpr(expr *binaryExpr) (R, error) {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil, nil
}

func (r *resolver) visitCallExpr(expr *callExpr) (R, error) {
	r.resolveExpr(expr.callee)
	for _, argument := range expr.arguments {
		r.resolveExpr(argument)
	}
	return nil, nil
}

func (r *resolver) visitGetExpr(expr *getExpr) (R, error) {
	r.resolveExpr(expr.object)
	return nil, nil
}

func (r *resolver) visitSetExpr(expr *setExpr) (R, error) {
	r.resolveExpr(expr.value)
	r.resolveExpr(expr.object)
	return nil, nil
}

func (r *resolver) visitSuperExpr(expr *superExpr) (R, error) {
	if r.currentClass == ctNone {
		r.state.tokenError(errSuperOutsideClass, expr.keyword)
	} else if r.currentClass != ctSubclass {
		r.state.tokenError(errSuperWithoutSuperclass, expr.keyword)
	}
	r.resolveLocal(expr, expr.keyword)
	return nil, nil
}

func (r *resolver) visitGroupingExpr(expr *groupingExpr) (R, error) {
	r.resolveExpr(expr.expression)
	return nil, nil
}

func (r *resolver) visitLiteralExpr(expr *literalExpr) (R, error) {
	return nil, nil
}

func (r *resolver) visitLogicalExpr(expr *logicalExpr) (R, error) {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil, nil
}

func (r *resolver) visitThisExpr(expr *thisExpr) (R, error) {
	if r.currentClass == ctNone {
		r.state.tokenError(errThisOutsideClass, expr.keyword)
		return nil, nil
	}
	r.resolveLocal(expr, expr.keyword)
	return nil, nil
}

func (r *resolver) visitUnaryExpr(expr *unaryExpr) (R, error) {
	r.resolveExpr(expr.right)
	return nil, nil
}

func (r *resolver) visitVariableExpr(expr *variableExpr) (R, error) {
	if len(r.scopes) != 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][expr.name.lexeme]; ok && !defined {
			r.state.tokenError(errOwnInitializer, expr.name)
		}
	}
	r.resolveLocal(expr, expr.name)
	return nil, nil
}
