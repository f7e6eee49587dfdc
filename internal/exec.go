package internal

import (
	"github.com/sirupsen/logrus"
)

type exec struct {
	globals *env
	env     *env

	// locals maps variable, assign, this and super expressions to the
	// lexical distance computed by the resolver. When nil every name is
	// looked up walking the environment chain.
	locals map[expr]int

	printer IPrinter
	logger  *logrus.Entry
	trace   bool

	depth    int
	maxDepth int
}

func (e *exec) interpret(stmts []stmt) error {
	for _, s := range stmts {
		if _, err := s.accept(e); err != nil {
			if e.trace {
				if runErr, ok := err.(*RuntimeError); ok {
					e.logger.WithFields(logrus.Fields{
						"line": runErr.Line(),
						"kind": runErr.kind.Error(),
					}).Debug("runtime error")
				}
			}
			return err
		}
	}
	return nil
}

func (e *exec) evaluate(ex expr) (interface{}, error) {
	return ex.accept(e)
}

func (e *exec) visitExprStmt(stmt *exprStmt) (R, error) {
	_, err := e.evaluate(stmt.expression)
	return nil, err
}

func (e *exec) visitPrintStmt(stmt *printStmt) (R, error) {
	value, err := e.evaluate(stmt.expression)
	if err != nil {
		return nil, err
	}
	e.printer.Println(stringify(value))
	return nil, nil
}

func (e *exec) visitVarStmt(stmt *varStmt) (R, error) {
	var val interface{}
	if stmt.initializer != nil {
		var err error
		if val, err = e.evaluate(stmt.initializer); err != nil {
			return nil, err
		}
	}
	e.env.define(stmt.name.lexeme, val)
	return nil, nil
}

func (e *exec) visitBlockStmt(stmt *blockStmt) (R, error) {
	return e.executeBlock(stmt.stmts, newEnv(e.env))
}

// executeBlock runs stmts under env and restores the previous
// environment afterwards. A non nil result is a *returnValue.
func (e *exec) executeBlock(stmts []stmt, env *env) (R, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		result, err := s.accept(e)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

func (e *exec) visitIfStmt(stmt *ifStmt) (R, error) {
	condition, err := e.evaluate(stmt.condition)
	if err != nil {
		return nil, err
	}
	if truthy(condition) {
		return stmt.thenBranch.accept(e)
	}
	if stmt.elseBranch != nil {
		return stmt.elseBranch.accept(e)
	}
	return nil, nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) (R, error) {
	for {
		condition, err := e.evaluate(stmt.condition)
		if err != nil {
			return nil, err
		}
		if !truthy(condition) {
			return nil, nil
		}
		result, err := stmt.body.accept(e)
		if err != nil || result != nil {
			return result, err
		}
	}
}

func (e *exec) visitFnStmt(stmt *fnStmt) (R, error) {
	e.env.define(stmt.name.lexeme, &loxFunction{
		declaration:   stmt,
		closure:       e.env,
		isInitializer: false,
	})
	return nil, nil
}

func (e *exec) visitReturnStmt(stmt *returnStmt) (R, error) {
	var value interface{}
	if stmt.value != nil {
		var err error
		if value, err = e.evaluate(stmt.value); err != nil {
			return nil, err
		}
	}
	return &returnValue{value: value}, nil
}

func (e *exec) visitClassStmt(stmt *classStmt) (R, error) {
	var superclass *loxClass
	if stmt.superclass != nil {
		value, err := e.evaluate(stmt.superclass)
		if err != nil {
			return nil, err
		}
		class, ok := value.(*loxClass)
		if !ok {
			return nil, runtimeErr(errNotAClass, stmt.superclass.name, "Superclass must be a class.")
		}
		superclass = class
	}

	e.env.define(stmt.name.lexeme, nil)

	methodEnv := e.env
	if superclass != nil {
		methodEnv = newEnv(e.env)
		methodEnv.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(stmt.methods))
	for _, method := range stmt.methods {
		methods[method.name.lexeme] = &loxFunction{
			declaration:   method,
			closure:       methodEnv,
			isInitializer: method.name.lexeme == "init",
		}
	}

	class := &loxClass{
		name:       stmt.name.lexeme,
		superclass: superclass,
		methods:    methods,
	}

	if e.trace {
		fields := logrus.Fields{"class": class.name, "methods": len(methods)}
		if superclass != nil {
			fields["superclass"] = superclass.name
		}
		e.logger.WithFields(fields).Debug("class declared")
	}

	e.env.define(stmt.name.lexeme, class)
	return nil, nil
}

func (e *exec) visitAssignExpr(expr *assignExpr) (R, error) {
	val, err := e.evaluate(expr.value)
	if err != nil {
		return nil, err
	}
	if e.locals == nil {
		err = e.env.assign(expr.name, val)
	} else if distance, ok := e.locals[expr]; ok {
		err = e.env.assignAt(distance, expr.name, val)
	} else {
		err = e.globals.assign(expr.name, val)
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) (R, error) {
	left, err := e.evaluate(expr.left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(expr.right)
	if err != nil {
		return nil, err
	}
	switch expr.operator.token {
	case tkEqualEqual:
		return equal(left, right), nil
	case tkBangEqual:
		return !equal(left, right), nil
	case tkPlus:
		return applyAdd(expr.operator, left, right)
	default:
		return applyNumbers(expr.operator, left, right)
	}
}

func (e *exec) visitCallExpr(expr *callExpr) (R, error) {
	callee, err := e.evaluate(expr.callee)
	if err != nil {
		return nil, err
	}

	fn, isFn := callee.(callable)
	if !isFn {
		return nil, runtimeErr(errNotCallable, expr.paren, "Can only call functions and classes.")
	}

	arguments := make([]interface{}, len(expr.arguments))
	for i := range expr.arguments {
		if arguments[i], err = e.evaluate(expr.arguments[i]); err != nil {
			return nil, err
		}
	}

	if len(arguments) != fn.arity() {
		return nil, runtimeErr(
			errArityMismatch,
			expr.paren,
			"Expected %d arguments but got %d.",
			fn.arity(),
			len(arguments),
		)
	}

	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return nil, runtimeErr(errStackOverflow, expr.paren, "Stack overflow.")
	}
	e.depth++
	defer func() {
		e.depth--
	}()

	if e.trace {
		e.logger.WithFields(logrus.Fields{
			"callee": calleeName(fn),
			"arity":  fn.arity(),
			"depth":  e.depth,
			"line":   expr.paren.line,
		}).Debug("call")
	}

	return fn.call(e, arguments)
}

func (e *exec) visitGetExpr(expr *getExpr) (R, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*loxInstance)
	if !ok {
		return nil, runtimeErr(errNotAnInstance, expr.name, "Only instances have properties.")
	}
	return instance.get(expr.name)
}

func (e *exec) visitSetExpr(expr *setExpr) (R, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*loxInstance)
	if !ok {
		return nil, runtimeErr(errNotAnInstance, expr.name, "Only instances have properties.")
	}
	value, err := e.evaluate(expr.value)
	if err != nil {
		return nil, err
	}
	instance.set(expr.name, value)
	return value, nil
}

func (e *exec) visitSuperExpr(expr *superExpr) (R, error) {
	this := syntheticToken("this", expr.keyword.line)

	var superclass, object interface{}
	var err error
	if distance, ok := e.locals[expr]; ok {
		superclass, err = e.env.getAt(distance, expr.keyword)
		if err == nil {
			// 'this' is always bound one scope below 'super'
			object, err = e.env.getAt(distance-1, this)
		}
	} else {
		superclass, err = e.env.get(expr.keyword)
		if err == nil {
			object, err = e.env.get(this)
		}
	}
	if err != nil {
		return nil, err
	}

	class, ok := superclass.(*loxClass)
	if !ok {
		return nil, runtimeErr(errNotAClass, expr.keyword, "Superclass must be a class.")
	}
	instance, ok := object.(*loxInstance)
	if !ok {
		return nil, runtimeErr(errNotAnInstance, expr.keyword, "Only instances have properties.")
	}

	method := class.findMethod(expr.method.lexeme)
	if method == nil {
		return nil, undefinedProperty(expr.method)
	}
	return method.bind(instance), nil
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) (R, error) {
	return e.evaluate(expr.expression)
}

func (e *exec) visitLiteralExpr(expr *literalExpr) (R, error) {
	return expr.value, nil
}

func (e *exec) visitLogicalExpr(expr *logicalExpr) (R, error) {
	left, err := e.evaluate(expr.left)
	if err != nil {
		return nil, err
	}

	if expr.operator.token == tkOr {
		if truthy(left) {
			return left, nil
		}
	} else if !truthy(left) {
		return left, nil
	}

	return e.evaluate(expr.right)
}

func (e *exec) visitThisExpr(expr *thisExpr) (R, error) {
	return e.lookUpVariable(expr.keyword, expr)
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) (R, error) {
	value, err := e.evaluate(expr.right)
	if err != nil {
		return nil, err
	}
	switch expr.operator.token {
	case tkBang:
		return !truthy(value), nil
	case tkMinus:
		valueNum, ok := value.(float64)
		if !ok {
			return nil, runtimeErr(errTypeMismatch, expr.operator, "Operand must be a number.")
		}
		return -valueNum, nil
	}
	return nil, runtimeErr(errTypeMismatch, expr.operator, "Unknown operator %s.", expr.operator.lexeme)
}

func (e *exec) visitVariableExpr(expr *variableExpr) (R, error) {
	return e.lookUpVariable(expr.name, expr)
}

func (e *exec) lookUpVariable(name *token, ex expr) (interface{}, error) {
	if e.locals == nil {
		return e.env.get(name)
	}
	if distance, ok := e.locals[ex]; ok {
		return e.env.getAt(distance, name)
	}
	return e.globals.get(name)
}
