package internal

type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

// get returns the field with the given name, or a method bound to the
// instance when no field shadows it
func (o *loxInstance) get(tk *token) (interface{}, error) {
	if val, ok := o.fields[tk.lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(tk.lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, undefinedProperty(tk)
}

func (o *loxInstance) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *loxInstance) String() string {
	return o.class.name + " instance"
}
