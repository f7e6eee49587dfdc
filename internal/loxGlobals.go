package internal

import (
	"time"
)

func defineGlobals(e *env) {
	defineClock(e)
	defineStr(e)
	defineType(e)
}

func defineClock(e *env) {
	e.define("clock", &nativeFn{
		name:       "clock",
		arityValue: 0,
		callFn: func(exec *exec, arguments []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}

func defineStr(e *env) {
	e.define("str", &nativeFn{
		name:       "str",
		arityValue: 1,
		callFn: func(exec *exec, arguments []interface{}) (interface{}, error) {
			return stringify(arguments[0]), nil
		},
	})
}

func defineType(e *env) {
	e.define("type", &nativeFn{
		name:       "type",
		arityValue: 1,
		callFn: func(exec *exec, arguments []interface{}) (interface{}, error) {
			return typeName(arguments[0]), nil
		},
	})
}
