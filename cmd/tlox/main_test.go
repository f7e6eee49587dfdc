package main

import (
	"testing"
)

func TestOpenDelimiters(t *testing.T) {
	tests := []struct {
		src   string
		depth int
	}{
		{"print 1;", 0},
		{"fun f() {", 1},
		{"fun f() {\n  if (a) {", 2},
		{"fun f() {\n}", 0},
		{`print "{";`, 0},
		{"print (1 +", 1},
		{"print 1; // {", 0},
		{"fun f() { // }", 1},
		{"fun f() { // }\n}", 0},
		{`print "//"; {`, 1},
		{"print 4 / 2; {", 1},
	}
	for _, test := range tests {
		if depth := openDelimiters(test.src); depth != test.depth {
			t.Errorf("%q: expected %d, got %d", test.src, test.depth, depth)
		}
	}
}

func TestWithSemicolon(t *testing.T) {
	tests := map[string]string{
		"1 + 2":          "1 + 2;",
		"print 1;":       "print 1;",
		"fun f() {}":     "fun f() {}",
		"var a = 1;  \n": "var a = 1;  \n",
	}
	for in, out := range tests {
		if got := withSemicolon(in); got != out {
			t.Errorf("%q: expected %q, got %q", in, out, got)
		}
	}
}
