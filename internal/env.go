package internal

type env struct {
	enclosing *env
	values    map[string]interface{}
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) (interface{}, error) {
	if value, ok := e.values[name.lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, undefinedVariable(name)
}

func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

func (e *env) assign(name *token, value interface{}) error {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return undefinedVariable(name)
}

// ancestor returns the environment distance hops up the chain
func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance && environment != nil; i++ {
		environment = environment.enclosing
	}
	return environment
}

func (e *env) getAt(distance int, name *token) (interface{}, error) {
	if environment := e.ancestor(distance); environment != nil {
		if value, ok := environment.values[name.lexeme]; ok {
			return value, nil
		}
	}
	return nil, undefinedVariable(name)
}

func (e *env) assignAt(distance int, name *token, value interface{}) error {
	environment := e.ancestor(distance)
	if environment == nil {
		return undefinedVariable(name)
	}
	if _, ok := environment.values[name.lexeme]; !ok {
		return undefinedVariable(name)
	}
	environment.values[name.lexeme] = value
	return nil
}
