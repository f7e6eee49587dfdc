package internal

import (
	"math"
	"strconv"
)

// Runtime values are plain Go values: nil, bool, float64, string,
// a callable (*loxFunction, *loxClass, *nativeFn) or *loxInstance.

func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if valueBool, isBool := value.(bool); isBool {
		return valueBool
	}
	return true
}

// equal never fails. Values of different kinds are never equal and
// reference kinds compare by identity.
func equal(a, b interface{}) bool {
	return a == b
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case interface{ String() string }:
		return v.String()
	}
	return "<unknown>"
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.Abs(n) >= 1e21:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func typeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case *loxClass:
		return "class"
	case *loxFunction, *nativeFn:
		return "function"
	case *loxInstance:
		return "instance"
	}
	return "unknown"
}
