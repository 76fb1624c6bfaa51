package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"lox/internal/astprint"
	"lox/internal/config"
	"lox/internal/lexer"
	"lox/internal/runtime"
	"lox/internal/session"
	"lox/internal/utils"
)

const (
	exitUsage    = 64
	exitData     = 65
	exitSoftware = 70
)

const usage = `usage: lox [options] [script]

options:
  -c FILE      read configuration from FILE
  -a STRATEGY  print the AST before running (prefix, infix, postfix)
  -n           disable colored output
  -h           show this help
`

func main() {
	os.Exit(run())
}

func run() int {
	opts, optind, err := getopt.Getopts(os.Args, "c:a:nh")
	if err != nil {
		utils.Error(err.Error())
		fmt.Fprint(os.Stderr, usage)
		return exitUsage
	}

	var configPath, strategy string
	noColor := false
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'a':
			strategy = opt.Value
		case 'n':
			noColor = true
		case 'h':
			fmt.Print(usage)
			return 0
		}
	}

	cfg, err := config.Find(configPath)
	if err != nil {
		utils.Warning(fmt.Sprintf("%v; using defaults", err))
		cfg = config.Default()
	}
	if noColor || !cfg.Color {
		color.NoColor = true
	}
	if strategy == "" {
		strategy = cfg.PrintAST
	}

	var printer *astprint.Printer
	if strategy != "" {
		s, err := astprint.ParseStrategy(strategy)
		if err != nil {
			utils.Error(err.Error())
			return exitUsage
		}
		printer = astprint.New(s)
	}

	sess := session.New(session.Options{
		Stdout:       os.Stdout,
		Reporter:     utils.NewConsoleReporter(os.Stderr, !color.NoColor),
		MaxCallDepth: cfg.MaxCallDepth,
		Printer:      printer,
	})

	args := os.Args[optind:]
	switch len(args) {
	case 0:
		return runPrompt(sess, cfg)
	case 1:
		return runFile(sess, args[0])
	}
	fmt.Fprint(os.Stderr, usage)
	return exitUsage
}

func runFile(sess *session.Session, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		utils.Error(fmt.Sprintf("Error reading file: %v", err))
		return exitUsage
	}

	sess.Run(string(src))
	if sess.HadError.IsSet() {
		return exitData
	}
	if sess.HadRuntimeError.IsSet() {
		return exitSoftware
	}
	return 0
}

func runPrompt(sess *session.Session, cfg *config.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	echo := color.New(color.FgCyan)
	for {
		src, ok := readUnit(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":globals":
				fmt.Println(strings.Join(sess.Interpreter().Globals().Names(), " "))
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		res, err := sess.Run(src)
		sess.ResetError()
		if errors.Is(err, runtime.ErrStackOverflow) {
			return exitSoftware
		}
		if err == nil && res.Expression {
			echo.Println(res.Value.String())
		}
	}
}

// readUnit reads lines until brackets balance and no string is left open.
// Ctrl-C discards the pending input; EOF ends the session.
func readUnit(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if complete(b.String()) {
			return b.String(), true
		}
	}
}

func complete(src string) bool {
	lx := lexer.New(src)
	depth := 0
	for _, tok := range lx.ScanTokens() {
		switch tok.Type {
		case lexer.LEFT_BRACE, lexer.LEFT_PAREN:
			depth++
		case lexer.RIGHT_BRACE, lexer.RIGHT_PAREN:
			depth--
		}
	}
	for _, d := range lx.Errors() {
		if d.Message == "Unterminated string." {
			return false
		}
	}
	return depth <= 0
}
