package internal

import "fmt"

type callable interface {
	arity() int
	call(exec *exec, arguments []interface{}) (interface{}, error)
}

// returnValue is the signal a return statement sends up to the
// function call that encloses it. It is not an error.
type returnValue struct {
	value interface{}
}

type loxFunction struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

type nativeFn struct {
	name       string
	arityValue int
	callFn     func(exec *exec, arguments []interface{}) (interface{}, error)
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []interface{}) (interface{}, error) {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}

// calleeName names a callable in traces, where the display forms
// would not tell natives apart
func calleeName(c callable) string {
	switch fn := c.(type) {
	case *nativeFn:
		return fn.name
	case *loxFunction:
		return fn.declaration.name.lexeme
	case *loxClass:
		return fn.name
	}
	return "?"
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

func (f *loxFunction) call(exec *exec, arguments []interface{}) (interface{}, error) {
	env := newEnv(f.closure)
	for i := range f.declaration.params {
		env.define(f.declaration.params[i].lexeme, arguments[i])
	}

	result, err := exec.executeBlock(f.declaration.body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.values["this"], nil
	}
	if ret, isReturn := result.(*returnValue); isReturn {
		return ret.value, nil
	}
	return nil, nil
}

func (f *loxFunction) bind(object *loxInstance) *loxFunction {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &loxFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}
