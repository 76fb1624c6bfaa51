package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, c *Config)
	}{
		{"empty document", "", func(t *testing.T, c *Config) {
			if c.Prompt != "> " || c.ContinuationPrompt != ". " || !c.Color || c.MaxCallDepth != defaultMaxCallDepth {
				t.Errorf("defaults not applied: %+v", c)
			}
		}},
		{"all fields", `
prompt: "lox> "
continuation_prompt: "...  "
history_file: /tmp/hist
color: false
print_ast: Infix
max_call_depth: 100
`, func(t *testing.T, c *Config) {
			if c.Prompt != "lox> " || c.ContinuationPrompt != "...  " || c.HistoryFile != "/tmp/hist" {
				t.Errorf("strings: %+v", c)
			}
			if c.Color {
				t.Errorf("color should be off")
			}
			if c.PrintAST != "infix" || c.MaxCallDepth != 100 {
				t.Errorf("got %+v", c)
			}
		}},
		{"color defaults on", "prompt: x\n", func(t *testing.T, c *Config) {
			if !c.Color {
				t.Errorf("color should default to true")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, c)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "prompt: x\nbogus: 1\n"},
		{"bad type", "max_call_depth: lots\n"},
		{"negative depth", "max_call_depth: -1\n"},
		{"bad strategy", "print_ast: sideways\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	_, err := Decode(strings.NewReader("max_call_depth: -3\nprint_ast: nope\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("got issues %v", verr.Issues)
	}
	if !strings.Contains(verr.Issues[0], "must not be negative") {
		t.Errorf("got issue %q", verr.Issues[0])
	}
}

func TestZeroDepthUsesDefault(t *testing.T) {
	c, err := Decode(strings.NewReader("max_call_depth: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxCallDepth != defaultMaxCallDepth {
		t.Errorf("got %d, want %d", c.MaxCallDepth, defaultMaxCallDepth)
	}
}

func TestLoadAndFind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lox.yml")
	if err := os.WriteFile(path, []byte("prompt: \"$ \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Prompt != "$ " || c.Path != path {
		t.Errorf("got %+v", c)
	}

	t.Setenv(EnvVar, path)
	c, err = Find("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Prompt != "$ " {
		t.Errorf("env config not used: %+v", c)
	}

	if _, err := Find(filepath.Join(dir, "missing.yml")); err == nil {
		t.Errorf("explicit missing path should fail")
	}
}

func TestFindDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	c, err := Find("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Path != "" || c.Prompt != "> " {
		t.Errorf("got %+v", c)
	}
}
