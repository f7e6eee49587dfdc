package internal

import (
	"testing"
)

func TestResolverErrors(t *testing.T) {
	// Return outside a function
	checkStaticErrors(t, "return 1;", "[line 1] Error at 'return': Can't return from top-level code.\n", WithResolver())

	// this outside a class
	checkStaticErrors(t, "print this;", "[line 1] Error at 'this': Can't use 'this' outside of a class.\n", WithResolver())
	checkStaticErrors(
		t,
		"fun f() { return this; }",
		"[line 1] Error at 'this': Can't use 'this' outside of a class.\n",
		WithResolver(),
	)

	// super outside a class
	checkStaticErrors(t, "super.m();", "[line 1] Error at 'super': Can't use 'super' outside of a class.\n", WithResolver())

	// super without a superclass
	checkStaticErrors(
		t,
		"class A { m() { super.m(); } }",
		"[line 1] Error at 'super': Can't use 'super' in a class with no superclass.\n",
		WithResolver(),
	)

	// Inheriting from itself
	checkStaticErrors(t, "class A < A {}", "[line 1] Error at 'A': A class can't inherit from itself.\n", WithResolver())

	// Reading a local in its own initializer
	checkStaticErrors(
		t,
		"{ var a = 1; { var a = a; } }",
		"[line 1] Error at 'a': Can't read local variable in its own initializer.\n",
		WithResolver(),
	)

	// Redeclaring a local
	checkStaticErrors(
		t,
		"{\n var a = 1;\n var a = 2;\n}",
		"[line 3] Error at 'a': Already a variable with this name in this scope.\n",
		WithResolver(),
	)
	checkStaticErrors(
		t,
		"fun f(a, a) {}",
		"[line 1] Error at 'a': Already a variable with this name in this scope.\n",
		WithResolver(),
	)

	// Every error is reported
	checkStaticErrors(
		t,
		"return;\nprint this;",
		"[line 1] Error at 'return': Can't return from top-level code.\n"+
			"[line 2] Error at 'this': Can't use 'this' outside of a class.\n",
		WithResolver(),
	)
}

func TestResolverAllows(t *testing.T) {
	// Globals may be redeclared and read in their own initializer
	checkStatements(t, "var a = 1; var a = a + 1;", "a", "2", WithResolver())

	// A bare return is fine inside init
	checkStatements(t, "class A { init() { return; } }", "A()", "A instance", WithResolver())

	// Shadowing in a nested scope is not a redeclaration
	checkStatements(t, `
	var result;
	{
		var a = 1;
		{
			var a = 2;
			result = a;
		}
	}
	`, "result", "2", WithResolver())
}

func TestResolverSkipped(t *testing.T) {
	// Without the static pass these are only found at run time, if ever
	checkOutput(t, "{ var a = 1; var a = 2; print a; }", "2\n")
	checkErrorMsg(t, "print this;", "Undefined variable 'this'.", 1)
	checkErrorMsg(t, "fun f() { return this; } f();", "Undefined variable 'this'.", 1)
}

func TestResolverDistances(t *testing.T) {
	source := `
	var g = 0;
	{
		var a = 1;
		{
			print a;
			print g;
		}
		fun f(b) {
			print b;
			print a;
		}
	}
	`
	state := newInterpreterState(source)
	(&lexer{line: 1, state: state}).scan()
	(&parser{state: state}).parse()
	if !state.Valid() {
		t.Fatalf("source does not parse")
	}

	locals := make(map[expr]int)
	(&resolver{state: state, locals: locals}).resolve(state.stmts)
	if !state.Valid() {
		t.Fatalf("source does not resolve")
	}

	outer := state.stmts[1].(*blockStmt)
	inner := outer.stmts[1].(*blockStmt)
	fn := outer.stmts[2].(*fnStmt)

	variable := func(st stmt) expr {
		return st.(*printStmt).expression
	}

	tests := []struct {
		name     string
		ex       expr
		distance int
		global   bool
	}{
		{name: "a from inner block", ex: variable(inner.stmts[0]), distance: 1},
		{name: "g from inner block", ex: variable(inner.stmts[1]), global: true},
		{name: "parameter", ex: variable(fn.body[0]), distance: 0},
		{name: "a from function", ex: variable(fn.body[1]), distance: 1},
	}

	for _, test := range tests {
		distance, ok := locals[test.ex]
		if test.global {
			if ok {
				t.Errorf("%s: expected a global, got distance %d", test.name, distance)
			}
			continue
		}
		if !ok || distance != test.distance {
			t.Errorf("%s: expected distance %d, got %d (resolved %v)", test.name, test.distance, distance, ok)
		}
	}
}
