package internal

type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

// findMethod looks the method up on the class first and then on its
// ancestors, the nearest definition wins
func (c *loxClass) findMethod(name string) *loxFunction {
	for class := c; class != nil; class = class.superclass {
		if method, ok := class.methods[name]; ok {
			return method
		}
	}
	return nil
}

func (c *loxClass) arity() int {
	if initializer := c.findMethod("init"); initializer != nil {
		return initializer.arity()
	}
	return 0
}

func (c *loxClass) call(exec *exec, arguments []interface{}) (interface{}, error) {
	obj := &loxInstance{class: c, fields: make(map[string]interface{})}
	if initializer := c.findMethod("init"); initializer != nil {
		if _, err := initializer.bind(obj).call(exec, arguments); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c *loxClass) String() string {
	return c.name
}
