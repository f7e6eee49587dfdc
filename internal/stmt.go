package internal

type stmt interface {
	accept(stmtVisitor) (R, error)
}

type stmtVisitor interface {
	visitExprStmt(stmt *exprStmt) (R, error)
	visitPrintStmt(stmt *printStmt) (R, error)
	visitVarStmt(stmt *varStmt) (R, error)
	visitBlockStmt(stmt *blockStmt) (R, error)
	visitIfStmt(stmt *ifStmt) (R, error)
	visitWhileStmt(stmt *whileStmt) (R, error)
	visitFnStmt(stmt *fnStmt) (R, error)
	visitReturnStmt(stmt *returnStmt) (R, error)
	visitClassStmt(stmt *classStmt) (R, error)
}

type exprStmt struct {
	expression expr
}

func (s *exprStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitExprStmt(s)
}

type printStmt struct {
	expression expr
}

func (s *printStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitPrintStmt(s)
}

type varStmt struct {
	name        *token
	initializer expr
}

func (s *varStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitVarStmt(s)
}

type blockStmt struct {
	stmts []stmt
}

func (s *blockStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitBlockStmt(s)
}

type ifStmt struct {
	condition  expr
	thenBranch stmt
	elseBranch stmt
}

func (s *ifStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitIfStmt(s)
}

type whileStmt struct {
	condition expr
	body      stmt
}

func (s *whileStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitWhileStmt(s)
}

type fnStmt struct {
	name   *token
	params []*token
	body   []stmt
}

func (s *fnStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitFnStmt(s)
}

type returnStmt struct {
	keyword *token
	value   expr
}

func (s *returnStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitReturnStmt(s)
}

type classStmt struct {
	name       *token
	superclass *variableExpr
	methods    []*fnStmt
}

func (s *classStmt) accept(visitor stmtVisitor) (R, error) {
	return visitor.visitClassStmt(s)
}
