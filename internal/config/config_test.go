package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, path, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		// a tlox.toml above the temp dir would be picked up
		t.Skipf("found unrelated config at %s", path)
	}
	if cfg.Interpreter.MaxCallDepth != 10000 {
		t.Errorf("expected default depth 10000, got %d", cfg.Interpreter.MaxCallDepth)
	}
	if cfg.ResolveEnabled() {
		t.Errorf("resolver should be off by default")
	}
	if !cfg.ColorEnabled() {
		t.Errorf("color should be on by default")
	}
	if level, _ := cfg.LogLevel(); level != logrus.WarnLevel {
		t.Errorf("expected warn level, got %v", level)
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[interpreter]
max_call_depth = 50
resolve = true

[log]
level = "debug"

[output]
color = false
`)
	nested := filepath.Join(root, "scripts", "lox")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, FileName) {
		t.Errorf("unexpected config path %s", path)
	}
	if cfg.Interpreter.MaxCallDepth != 50 {
		t.Errorf("expected depth 50, got %d", cfg.Interpreter.MaxCallDepth)
	}
	if !cfg.ResolveEnabled() {
		t.Errorf("resolver should be on")
	}
	if cfg.ColorEnabled() {
		t.Errorf("color should be off")
	}
	if level, _ := cfg.LogLevel(); level != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", level)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[log]
level = "info"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interpreter.MaxCallDepth != 10000 {
		t.Errorf("expected default depth, got %d", cfg.Interpreter.MaxCallDepth)
	}
	if cfg.ResolveEnabled() {
		t.Errorf("resolver should stay off")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"negative depth", "[interpreter]\nmax_call_depth = -1\n", "max_call_depth"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "loud"},
		{"bad toml", "[interpreter\n", "loading"},
		{"wrong type", "[interpreter]\nresolve = \"yes\"\n", "loading"},
	}

	for _, test := range tests {
		path := writeConfig(t, t.TempDir(), test.content)
		_, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: %q does not mention %q", test.name, err.Error(), test.msg)
		}
	}
}
