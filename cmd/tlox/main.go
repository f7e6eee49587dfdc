package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"tlox/internal"
	"tlox/internal/config"
)

const historyFile = ".tlox_history"

const banner = "tlox REPL, Ctrl-D to exit"

type stdPrinter struct {
	color *color.Color
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

// Fprintf colors whatever goes to stderr, that is diagnostics
func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	msg := fmt.Sprintf(format, a...)
	if w == os.Stderr {
		msg = s.color.Red(msg)
	}
	return fmt.Fprint(w, msg)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return s.Fprintf(w, "%s\n", fmt.Sprint(a...))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tlox", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "trace execution at debug level")
	noColor := fs.Bool("no-color", false, "disable colored diagnostics")
	configPath := fs.String("config", "", "path to "+config.FileName+" (searched upwards from the script by default)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: tlox [flags] [/path/to/script.lox]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	var script string
	startDir, _ := os.Getwd()
	if fs.NArg() == 1 {
		absPath, err := filepath.Abs(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		script = absPath
		startDir = filepath.Dir(absPath)
	}

	cfg, err := loadConfig(*configPath, startDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, _ := cfg.LogLevel()
	if *verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	printer := stdPrinter{color: color.New()}
	if *noColor || !cfg.ColorEnabled() {
		printer.color.Disable()
	}

	opts := []internal.Option{
		internal.WithLogger(logger),
		internal.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
	}
	if cfg.ResolveEnabled() {
		opts = append(opts, internal.WithResolver())
	}

	if script == "" {
		return repl(internal.NewInterpreter(printer, opts...))
	}

	b, err := os.ReadFile(script)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.WithField("script", script).Debug("running")

	if !internal.RunSourceWithPrinter(string(b), printer, opts...) {
		return 1
	}
	return 0
}

func loadConfig(path, startDir string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.FindAndLoad(startDir)
	return cfg, err
}

func repl(in *internal.Interpreter) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Println(banner)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readEntry(ln, "> ", ". ")
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		in.Evaluate(withSemicolon(code))
	}
}

// readEntry keeps prompting while braces or parentheses are left open
func readEntry(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the current entry
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openDelimiters(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openDelimiters counts braces and parentheses left open, ignoring
// those inside strings and line comments
func openDelimiters(src string) int {
	depth := 0
	inString := false
	inComment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inComment:
			inComment = c != '\n'
		case c == '"':
			inString = !inString
		case inString:
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			inComment = true
		case c == '{' || c == '(':
			depth++
		case c == '}' || c == ')':
			depth--
		}
	}
	return depth
}

// withSemicolon lets a bare expression be typed without the trailing ';'
func withSemicolon(code string) string {
	trimmed := strings.TrimSpace(code)
	if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
		return code
	}
	return code + ";"
}
