package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lox/internal/astprint"
)

const (
	// EnvVar names a config file used when no -c flag is given.
	EnvVar = "LOX_CONFIG"
	// LocalFile is picked up from the working directory as a last resort.
	LocalFile = ".loxrc.yml"

	defaultMaxCallDepth = 4096
)

// Config drives the lox command. Zero fields take their defaults.
type Config struct {
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	Color              bool
	// PrintAST is a strategy name (prefix, infix, postfix); empty disables it.
	PrintAST     string
	MaxCallDepth int

	// Path is the file the config was read from, empty for defaults.
	Path string
}

type configFile struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	Color              *bool  `yaml:"color"`
	PrintAST           string `yaml:"print_ast"`
	MaxCallDepth       int    `yaml:"max_call_depth"`
}

func Default() *Config {
	c := &Config{Color: true}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.ContinuationPrompt == "" {
		c.ContinuationPrompt = ". "
	}
	if c.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, ".lox_history")
		}
	}
	if c.MaxCallDepth == 0 {
		c.MaxCallDepth = defaultMaxCallDepth
	}
	c.PrintAST = strings.ToLower(strings.TrimSpace(c.PrintAST))
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must not be negative, got %d", c.MaxCallDepth))
	}
	if c.PrintAST != "" {
		if _, err := astprint.ParseStrategy(c.PrintAST); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("print_ast: %v", err))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Decode parses a config document. An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg := &Config{
		Prompt:             raw.Prompt,
		ContinuationPrompt: raw.ContinuationPrompt,
		HistoryFile:        raw.HistoryFile,
		Color:              true,
		PrintAST:           raw.PrintAST,
		MaxCallDepth:       raw.MaxCallDepth,
	}
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Find picks the config to use: flagPath if set, then $LOX_CONFIG, then
// .loxrc.yml in the working directory. With none of them present it returns
// the defaults.
func Find(flagPath string) (*Config, error) {
	if flagPath != "" {
		return Load(flagPath)
	}
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		return Load(env)
	}
	info, err := os.Stat(LocalFile)
	if err == nil && !info.IsDir() {
		return Load(LocalFile)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Default(), nil
}
