package internal

type numberOperation func(x, y float64) interface{}

// numberOperations holds the binary operators that only accept numbers.
// '+' is not here because it also concatenates strings.
var numberOperations = map[tokenType]numberOperation{
	tkMinus: func(x, y float64) interface{} {
		return x - y
	},
	tkStar: func(x, y float64) interface{} {
		return x * y
	},
	tkSlash: func(x, y float64) interface{} {
		return x / y
	},
	tkGreater: func(x, y float64) interface{} {
		return x > y
	},
	tkGreaterEqual: func(x, y float64) interface{} {
		return x >= y
	},
	tkLess: func(x, y float64) interface{} {
		return x < y
	},
	tkLessEqual: func(x, y float64) interface{} {
		return x <= y
	},
}

func applyAdd(operator *token, left, right interface{}) (interface{}, error) {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l + r, nil
		}
	case string:
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	}
	return nil, runtimeErr(errTypeMismatch, operator, "Operands must be two numbers or two strings.")
}

func applyNumbers(operator *token, left, right interface{}) (interface{}, error) {
	apply, ok := numberOperations[operator.token]
	if !ok {
		return nil, runtimeErr(errTypeMismatch, operator, "Unknown operator %s.", operator.lexeme)
	}
	leftNum, ok := left.(float64)
	if !ok {
		return nil, runtimeErr(errTypeMismatch, operator, "Operands must be numbers.")
	}
	rightNum, ok := right.(float64)
	if !ok {
		return nil, runtimeErr(errTypeMismatch, operator, "Operands must be numbers.")
	}
	return apply(leftNum, rightNum), nil
}
