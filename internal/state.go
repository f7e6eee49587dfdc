package internal

import (
	"errors"
	"fmt"
	"os"
)

type parseError struct {
	err   error
	line  int
	where string
}

// parseAbort unwinds the parser up to the enclosing declaration,
// where it synchronizes and continues
type parseAbort struct{}

// interpreterState stores the state of a single source run
type interpreterState struct {
	errors []parseError
	source string
	tokens []token
	stmts  []stmt
}

func newInterpreterState(source string) *interpreterState {
	return &interpreterState{source: source, errors: make([]parseError, 0)}
}

func (s *interpreterState) setError(err error, line int) {
	s.errors = append(s.errors, parseError{
		err:  err,
		line: line,
	})
}

func (s *interpreterState) tokenError(err error, tk *token) {
	s.errors = append(s.errors, parseError{
		err:   err,
		line:  tk.line,
		where: " at " + tk.String(),
	})
}

func (s *interpreterState) fatalError(err error, tk *token) {
	s.tokenError(err, tk)
	panic(parseAbort{})
}

// Valid returns true if the interpreter is in a valid states else false
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints all errors, returns true if there was any
func (s *interpreterState) PrintErrors(p IPrinter) bool {
	for _, e := range s.errors {
		p.Fprintf(os.Stderr, "[line %d] Error%s: %s\n", e.line, e.where, e.err.Error())
	}
	return !s.Valid()
}

// Lexer errors
var errIllegalChar = errors.New("Unexpected character.")
var errUnclosedString = errors.New("Unterminated string.")

// Parser errors
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errUnclosedArguments = errors.New("Expect ')' after arguments.")
var errUnclosedParams = errors.New("Expect ')' after parameters.")
var errExpectedParen = errors.New("Expect '(' after name.")
var errExpectedOpeningBrace = errors.New("Expect '{' before body.")
var errExpectedClosingBrace = errors.New("Expect '}' after block.")
var errExpectedClassBody = errors.New("Expect '{' before class body.")
var errExpectedClassEnd = errors.New("Expect '}' after class body.")
var errExpectedSuperclass = errors.New("Expect superclass name.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errExpectedSuperMethod = errors.New("Expect superclass method name.")
var errExpectedDot = errors.New("Expect '.' after 'super'.")
var errExpectedExpr = errors.New("Expect expression.")
var errExpectedSemicolon = errors.New("Expect ';' after statement.")
var errExpectedIdentifier = errors.New("Expect variable name.")
var errExpectedFunctionName = errors.New("Expect function name.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedFunctionParam = errors.New("Expect parameter name.")
var errExpectedConditionParen = errors.New("Expect '(' before condition.")
var errUnclosedCondition = errors.New("Expect ')' after condition.")
var errExpectedLoopClauses = errors.New("Expect ')' after for clauses.")
var errInvalidAssignment = errors.New("Invalid assignment target.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")

// Resolver errors
var errOwnInitializer = errors.New("Can't read local variable in its own initializer.")
var errAlreadyDeclared = errors.New("Already a variable with this name in this scope.")
var errTopLevelReturn = errors.New("Can't return from top-level code.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
var errInheritFromSelf = errors.New("A class can't inherit from itself.")

// Runtime error kinds
var errUndefinedVariable = errors.New("undefined variable")
var errTypeMismatch = errors.New("type mismatch")
var errNotCallable = errors.New("not callable")
var errArityMismatch = errors.New("arity mismatch")
var errNotAnInstance = errors.New("not an instance")
var errUndefinedProperty = errors.New("undefined property")
var errNotAClass = errors.New("not a class")
var errStackOverflow = errors.New("stack overflow")

// RuntimeError aborts the evaluation of a program. It carries the
// token where it happened so the driver can report the line.
type RuntimeError struct {
	kind    error
	message string
	token   *token
}

func runtimeErr(kind error, tk *token, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{
		kind:    kind,
		message: fmt.Sprintf(format, a...),
		token:   tk,
	}
}

func (e *RuntimeError) Error() string {
	return e.message
}

func (e *RuntimeError) Unwrap() error {
	return e.kind
}

// Line returns the source line of the offending token
func (e *RuntimeError) Line() int {
	if e.token == nil {
		return 0
	}
	return e.token.line
}

func undefinedVariable(name *token) *RuntimeError {
	return runtimeErr(errUndefinedVariable, name, "Undefined variable '%s'.", name.lexeme)
}

func undefinedProperty(name *token) *RuntimeError {
	return runtimeErr(errUndefinedProperty, name, "Undefined property '%s'.", name.lexeme)
}
