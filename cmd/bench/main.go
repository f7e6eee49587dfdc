package main

import (
	"fmt"
	"io"
	"time"

	"tlox/internal"
)

var source = `
var a = 1;
while (a < 10000000) {
    a = a + 1;
}

fun fib(n) {
    if (n < 2) return n;
    return fib(n - 1) + fib(n - 2);
}
print fib(25);
`

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(w, a...)
}

func main() {
	for _, resolve := range []bool{true, false} {
		var opts []internal.Option
		if resolve {
			opts = append(opts, internal.WithResolver())
		}
		start := time.Now()
		internal.RunSourceWithPrinter(source, stdPrinter{}, opts...)
		fmt.Printf("resolver=%v time elapsed is: %s\n", resolve, time.Since(start))
	}
}
