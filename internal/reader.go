package internal

import (
	"fmt"
	"strings"
)

// R generic type
type R interface{}

// PrintTree parses source and prints one line per top level statement
// in prefix notation. It returns false when the source does not parse.
func PrintTree(source string, p IPrinter) bool {
	state := newInterpreterState(source)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()
	if state.PrintErrors(p) {
		return false
	}
	parser := &parser{
		state: state,
	}
	parser.parse()
	if state.PrintErrors(p) {
		return false
	}
	for _, st := range state.stmts {
		p.Println(treeString(st))
	}
	return true
}

func treeString(st stmt) string {
	out, _ := st.accept(stringVisitor{})
	return out.(string)
}

type stringVisitor struct{}

func (v stringVisitor) str(ex expr) string {
	if ex == nil {
		return "nil"
	}
	out, _ := ex.accept(v)
	return out.(string)
}

func (v stringVisitor) stmtStr(st stmt) string {
	if st == nil {
		return "nil"
	}
	out, _ := st.accept(v)
	return out.(string)
}

func (v stringVisitor) body(stmts []stmt) string {
	out := ""
	for _, st := range stmts {
		out += " " + v.stmtStr(st)
	}
	return out
}

func params(tokens []*token) string {
	names := make([]string, len(tokens))
	for i, tk := range tokens {
		names[i] = tk.lexeme
	}
	return strings.Join(names, ", ")
}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) (R, error) {
	return v.str(stmt.expression), nil
}

func (v stringVisitor) visitPrintStmt(stmt *printStmt) (R, error) {
	return fmt.Sprintf("(print %s)", v.str(stmt.expression)), nil
}

func (v stringVisitor) visitVarStmt(stmt *varStmt) (R, error) {
	return fmt.Sprintf("(var %s %s)", stmt.name.lexeme, v.str(stmt.initializer)), nil
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) (R, error) {
	return "(scope" + v.body(stmt.stmts) + ")", nil
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) (R, error) {
	if stmt.elseBranch == nil {
		return fmt.Sprintf("(if %s %s)", v.str(stmt.condition), v.stmtStr(stmt.thenBranch)), nil
	}
	return fmt.Sprintf(
		"(if %s %s %s)",
		v.str(stmt.condition),
		v.stmtStr(stmt.thenBranch),
		v.stmtStr(stmt.elseBranch),
	), nil
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) (R, error) {
	return fmt.Sprintf("(while %s %s)", v.str(stmt.condition), v.stmtStr(stmt.body)), nil
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) (R, error) {
	return "(fun " + stmt.name.lexeme + " (" + params(stmt.params) + ")" + v.body(stmt.body) + ")", nil
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) (R, error) {
	if stmt.value == nil {
		return "(return)", nil
	}
	return fmt.Sprintf("(return %s)", v.str(stmt.value)), nil
}

func (v stringVisitor) visitClassStmt(stmt *classStmt) (R, error) {
	out := "(class " + stmt.name.lexeme
	if stmt.superclass != nil {
		out += " < " + stmt.superclass.name.lexeme
	}
	for _, method := range stmt.methods {
		out += " " + v.stmtStr(method)
	}
	return out + ")", nil
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) (R, error) {
	return fmt.Sprintf("(= %s %s)", expr.name.lexeme, v.str(expr.value)), nil
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) (R, error) {
	return fmt.Sprintf("(%s %s %s)", expr.operator.lexeme, v.str(expr.left), v.str(expr.right)), nil
}

func (v stringVisitor) visitCallExpr(expr *callExpr) (R, error) {
	out := "(call " + v.str(expr.callee)
	for _, argument := range expr.arguments {
		out += " " + v.str(argument)
	}
	return out + ")", nil
}

func (v stringVisitor) visitGetExpr(expr *getExpr) (R, error) {
	return fmt.Sprintf("(. %s %s)", v.str(expr.object), expr.name.lexeme), nil
}

func (v stringVisitor) visitSetExpr(expr *setExpr) (R, error) {
	return fmt.Sprintf("(= (. %s %s) %s)", v.str(expr.object), expr.name.lexeme, v.str(expr.value)), nil
}

func (v stringVisitor) visitSuperExpr(expr *superExpr) (R, error) {
	return "(super " + expr.method.lexeme + ")", nil
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) (R, error) {
	return "(group " + v.str(expr.expression) + ")", nil
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) (R, error) {
	if s, isString := expr.value.(string); isString {
		return fmt.Sprintf("%q", s), nil
	}
	return stringify(expr.value), nil
}

func (v stringVisitor) visitLogicalExpr(expr *logicalExpr) (R, error) {
	return fmt.Sprintf("(%s %s %s)", expr.operator.lexeme, v.str(expr.left), v.str(expr.right)), nil
}

func (v stringVisitor) visitThisExpr(expr *thisExpr) (R, error) {
	return "this", nil
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) (R, error) {
	return fmt.Sprintf("(%s %s)", expr.operator.lexeme, v.str(expr.right)), nil
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) (R, error) {
	return expr.name.lexeme, nil
}
