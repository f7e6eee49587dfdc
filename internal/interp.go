package internal

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// DefaultMaxCallDepth is the call depth at which a program fails with
// a stack overflow error unless configured otherwise. It sits well below
// the depth at which the Go runtime itself would abort.
const DefaultMaxCallDepth = 10000

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used to trace execution
func WithLogger(logger *logrus.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMaxCallDepth limits nested calls, 0 means no limit
func WithMaxCallDepth(depth int) Option {
	return func(in *Interpreter) {
		in.maxDepth = depth
	}
}

// WithResolver runs the static resolution pass before executing.
// Names are then bound to the scope they were written in, and
// redeclared locals or locals read in their own initializer are
// reported as errors. Without it names are looked up walking the
// environment chain at run time.
func WithResolver() Option {
	return func(in *Interpreter) {
		in.resolve = true
	}
}

// Interpreter keeps the global environment alive between runs, so a
// REPL can feed it one line at a time
type Interpreter struct {
	printer  IPrinter
	logger   *logrus.Logger
	resolve  bool
	maxDepth int

	exec *exec
}

// NewInterpreter creates an interpreter that prints through p
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	in := &Interpreter{
		printer:  p,
		logger:   defaultLogger(),
		resolve:  false,
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(in)
	}

	globals := newEnv(nil)
	defineGlobals(globals)

	in.exec = &exec{
		globals:  globals,
		env:      globals,
		printer:  p,
		logger:   in.logger.WithField("component", "exec"),
		trace:    in.logger.IsLevelEnabled(logrus.DebugLevel),
		maxDepth: in.maxDepth,
	}
	if in.resolve {
		in.exec.locals = make(map[expr]int)
	}

	return in
}

func defaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(source string, p IPrinter, opts ...Option) bool {
	return NewInterpreter(p, opts...).Run(source)
}

// Run scans, parses and executes source. Errors are reported through
// the printer and false is returned.
func (in *Interpreter) Run(source string) bool {
	state, ok := in.parse(source)
	if !ok {
		return false
	}
	return in.execute(state.stmts)
}

// Evaluate runs a single REPL entry. An entry made of one expression
// statement prints the value of the expression.
func (in *Interpreter) Evaluate(source string) bool {
	state, ok := in.parse(source)
	if !ok {
		return false
	}
	if len(state.stmts) == 1 {
		if st, isExpr := state.stmts[0].(*exprStmt); isExpr {
			value, err := in.exec.evaluate(st.expression)
			if err != nil {
				in.reportRuntimeError(err)
				return false
			}
			in.printer.Println(stringify(value))
			return true
		}
	}
	return in.execute(state.stmts)
}

func (in *Interpreter) parse(source string) (*interpreterState, bool) {
	log := in.logger.WithField("component", "frontend")

	state := newInterpreterState(source)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()
	log.WithField("tokens", len(state.tokens)).Debug("scanned")

	if state.PrintErrors(in.printer) {
		return nil, false
	}

	parser := &parser{
		state: state,
	}
	parser.parse()
	log.WithField("statements", len(state.stmts)).Debug("parsed")

	if state.PrintErrors(in.printer) {
		return nil, false
	}

	if in.resolve {
		resolver := &resolver{
			state:  state,
			locals: in.exec.locals,
		}
		resolver.resolve(state.stmts)
		log.WithField("locals", len(in.exec.locals)).Debug("resolved")

		if state.PrintErrors(in.printer) {
			return nil, false
		}
	}

	return state, true
}

func (in *Interpreter) execute(stmts []stmt) bool {
	if err := in.exec.interpret(stmts); err != nil {
		in.reportRuntimeError(err)
		return false
	}
	return true
}

func (in *Interpreter) reportRuntimeError(err error) {
	var runErr *RuntimeError
	if errors.As(err, &runErr) {
		in.printer.Fprintf(os.Stderr, "%s\n[line %d]\n", runErr.Error(), runErr.Line())
		return
	}
	in.printer.Fprintln(os.Stderr, err)
}
