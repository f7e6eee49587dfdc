package internal

import (
	"testing"
)

func checkTree(t *testing.T, source string, tree string) {
	t.Helper()
	tp := &testPrinter{}
	if !PrintTree(source, tp) {
		t.Errorf("%s: unexpected parse failure %s", source, tp.printed)
		return
	}
	if !tp.Equals(tree) {
		t.Errorf("%s:\n\texpected %s\n\tfound    %s", source, tree, tp.printed)
	}
}

func checkStaticErrors(t *testing.T, source string, expected string, opts ...Option) {
	t.Helper()
	tp := &testPrinter{}
	if RunSourceWithPrinter(source, tp, opts...) {
		t.Errorf("\nSource:\n----\n%s\n----\nshould have failed", source)
	}
	if tp.printed != expected {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----",
			source,
			expected,
			tp.printed,
		)
	}
}

func TestParseTree(t *testing.T) {
	checkTree(t, "var a;", "(var a nil)")
	checkTree(t, "var a = 1 + 2 * 3;", "(var a (+ 1 (* 2 3)))")
	checkTree(t, "1 - 2 - 3;", "(- (- 1 2) 3)")
	checkTree(t, "(1 + 2) * 3;", "(* (group (+ 1 2)) 3)")
	checkTree(t, "!-x;", "(! (- x))")
	checkTree(t, "a == b < c;", "(== a (< b c))")
	checkTree(t, "a or b and c;", "(or a (and b c))")
	checkTree(t, `print "hi";`, `(print "hi")`)
	checkTree(t, "print 1.5;", "(print 1.5)")
	checkTree(t, "print true == nil;", "(print (== true nil))")
	checkTree(t, "a = b = 1;", "(= a (= b 1))")
	checkTree(t, "f(1, 2)(3);", "(call (call f 1 2) 3)")
	checkTree(t, "a.b.c = 1;", "(= (. (. a b) c) 1)")
	checkTree(t, "a.b().c;", "(. (call (. a b)) c)")
	checkTree(t, "{ var a = 1; print a; }", "(scope (var a 1) (print a))")
	checkTree(t, "if (a) print 1; else print 2;", "(if a (print 1) (print 2))")
	checkTree(t, "if (a) if (b) print 1; else print 2;", "(if a (if b (print 1) (print 2)))")
	checkTree(t, "while (a < 3) a = a + 1;", "(while (< a 3) (= a (+ a 1)))")
	checkTree(t, "fun add(a, b) { return a + b; }", "(fun add (a, b) (return (+ a b)))")
	checkTree(t, "fun f() { return; }", "(fun f () (return))")
	checkTree(t, "class A {}", "(class A)")
	checkTree(
		t,
		"class B < A { init(x) { this.x = x; } m() { return super.m(); } }",
		"(class B < A (fun init (x) (= (. this x) x)) (fun m () (return (call (super m)))))",
	)

	// Multiple statements print one per line
	checkTree(t, "var a = 1;\nprint a;", "(var a 1)\n(print a)")
}

func TestForDesugaring(t *testing.T) {
	checkTree(
		t,
		"for (var i = 0; i < 3; i = i + 1) print i;",
		"(scope (var i 0) (while (< i 3) (scope (print i) (= i (+ i 1)))))",
	)
	checkTree(t, "for (;;) print 1;", "(while true (print 1))")
	checkTree(t, "for (i = 0; i < 1;) {}", "(scope (= i 0) (while (< i 1) (scope)))")
}

func TestSyntaxErrors(t *testing.T) {
	// Lexical errors
	checkStaticErrors(t, "print 1 @ 2;", "[line 1] Error: Unexpected character.\n")
	checkStaticErrors(t, "print \"open;\n", "[line 2] Error: Unterminated string.\n")

	// Missing semicolon
	checkStaticErrors(t, "print 1", "[line 1] Error at end: Expect ';' after statement.\n")

	// Missing expression
	checkStaticErrors(t, "print ;", "[line 1] Error at ';': Expect expression.\n")

	// Missing variable name
	checkStaticErrors(t, "var 1 = 2;", "[line 1] Error at '1': Expect variable name.\n")

	// Unclosed group
	checkStaticErrors(t, "print (1 + 2;", "[line 1] Error at ';': Expect ')' after expression.\n")

	// Invalid assignment target
	checkStaticErrors(t, "1 = 2;", "[line 1] Error at '=': Invalid assignment target.\n")
	checkStaticErrors(t, "a + b = c;", "[line 1] Error at '=': Invalid assignment target.\n")

	// Bad property access
	checkStaticErrors(t, "a.1;", "[line 1] Error at '1': Expect property name after '.'.\n")

	// super needs a method
	checkStaticErrors(t, "super;", "[line 1] Error at ';': Expect '.' after 'super'.\n")

	// Unclosed block
	checkStaticErrors(t, "{ print 1;", "[line 1] Error at end: Expect '}' after block.\n")

	// Class syntax
	checkStaticErrors(t, "class { }", "[line 1] Error at '{': Expect class name.\n")
	checkStaticErrors(t, "class A < { }", "[line 1] Error at '{': Expect superclass name.\n")

	// Error recovery keeps reporting after synchronizing
	checkStaticErrors(
		t,
		"print ;\nvar ok = 1;\nprint ;",
		"[line 1] Error at ';': Expect expression.\n[line 3] Error at ';': Expect expression.\n",
	)

	// Nothing runs when the source has errors
	checkStaticErrors(t, "print \"ran\";\nprint 1", "[line 2] Error at end: Expect ';' after statement.\n")
}

func TestArgumentLimit(t *testing.T) {
	args := "0"
	names := "a0"
	for i := 1; i <= maxFunctionParams; i++ {
		args += ", 0"
		names += ", a" + formatNumber(float64(i))
	}

	checkStaticErrors(t, "f("+args+");", "[line 1] Error at '0': Can't have more than 255 arguments.\n")
	checkStaticErrors(
		t,
		"fun f("+names+") {}",
		"[line 1] Error at 'a255': Can't have more than 255 parameters.\n",
	)
}
