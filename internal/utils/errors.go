package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Diagnostic is a static (scan, parse or resolve) error keyed by source line.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Where, d.Message)
}

// Reporter is the sink for every error the pipeline produces.
type Reporter interface {
	Report(line int, where, message string)
	ReportRuntime(line int, message string)
}

// ConsoleReporter writes diagnostics to a terminal-like writer.
type ConsoleReporter struct {
	w       io.Writer
	errTag  *color.Color
	lineTag *color.Color
}

func NewConsoleReporter(w io.Writer, useColor bool) *ConsoleReporter {
	if w == nil {
		w = os.Stderr
	}
	r := &ConsoleReporter{
		w:       w,
		errTag:  color.New(color.FgRed, color.Bold),
		lineTag: color.New(color.FgHiBlack),
	}
	if !useColor {
		r.errTag.DisableColor()
		r.lineTag.DisableColor()
	}
	return r
}

func (r *ConsoleReporter) Report(line int, where, message string) {
	r.lineTag.Fprintf(r.w, "[line %d] ", line)
	if where == "" {
		r.errTag.Fprint(r.w, "Error")
	} else {
		r.errTag.Fprintf(r.w, "Error %s", where)
	}
	fmt.Fprintf(r.w, ": %s\n", message)
}

func (r *ConsoleReporter) ReportRuntime(line int, message string) {
	r.errTag.Fprintln(r.w, message)
	r.lineTag.Fprintf(r.w, "[line %d]\n", line)
}

// RuntimeReport is a runtime error captured by a Collector.
type RuntimeReport struct {
	Line    int
	Message string
}

// Collector keeps everything reported to it in memory.
type Collector struct {
	Static  []Diagnostic
	Runtime []RuntimeReport
}

func (c *Collector) Report(line int, where, message string) {
	c.Static = append(c.Static, Diagnostic{Line: line, Where: where, Message: message})
}

func (c *Collector) ReportRuntime(line int, message string) {
	c.Runtime = append(c.Runtime, RuntimeReport{Line: line, Message: message})
}

// Flush sends diags to r in order.
func Flush(r Reporter, diags []Diagnostic) {
	for _, d := range diags {
		r.Report(d.Line, d.Where, d.Message)
	}
}

func Error(msg string) {
	color.New(color.FgRed).Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, msg)
}

func Warning(msg string) {
	color.New(color.FgYellow).Fprint(os.Stderr, "warning: ")
	fmt.Fprintln(os.Stderr, msg)
}
