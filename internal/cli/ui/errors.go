package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
)

// Level is the severity of a notice
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Notice is a terminal message: a headline, an optional paragraph below it,
// close matches for a mistyped name and commands to run next.
//
//	❌ CONFIGURATION ERROR: api_endpoint and access_token must be set
//	   api_endpoint and access_token must be set
//
//	   → Create a config file: mozaik init
type Notice struct {
	Level Level
	// Title is upper-cased and put in front of Message when set
	Title   string
	Message string
	Detail  string
	Similar []string
	Next    []string
}

// paint returns a color, plain when noColor is set
func paint(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

func (l Level) style() (symbol string, fg color.Attribute) {
	switch l {
	case LevelWarning:
		return "⚠️", color.FgYellow
	case LevelInfo:
		return "ℹ️", color.FgCyan
	default:
		return "❌", color.FgRed
	}
}

// Render formats the notice
func (n Notice) Render(noColor bool) string {
	symbol, fg := n.Level.style()
	strong := paint(noColor, fg, color.Bold)
	plain := paint(noColor, fg)

	var b strings.Builder
	if n.Title == "" {
		strong.Fprintf(&b, "%s %s\n", symbol, n.Message)
	} else {
		strong.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(n.Title), n.Message)
		plain.Fprintf(&b, "   %s\n", n.Message)
	}

	if n.Detail != "" {
		plain.Fprintf(&b, "\n   %s\n", n.Detail)
	}
	if len(n.Similar) > 0 {
		paint(noColor, color.FgYellow).Fprintf(&b, "\n   Did you mean: %s?\n", strings.Join(n.Similar, ", "))
	}
	if len(n.Next) > 0 {
		b.WriteString("\n")
		next := paint(noColor, color.FgCyan)
		for _, command := range n.Next {
			next.Fprintf(&b, "   → %s\n", command)
		}
	}
	return b.String()
}

// WriteSuccess writes a green check line to w
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, paint(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message))
}

// CompileErrors renders compiler errors against the schema source. The
// errors themselves are not modified.
func CompileErrors(errs cerrors.ErrorList, file, source string, noColor bool) string {
	lines := strings.Split(source, "\n")

	var b strings.Builder
	paint(noColor, color.FgRed, color.Bold).Fprintf(&b, "❌ SCHEMA COMPILATION FAILED: %d error(s) in %s\n\n", len(errs), file)
	for i, e := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		located := *e
		b.WriteString(located.WithFile(file).WithSource(lines).Format())
	}
	return b.String()
}

// ConfigError renders a configuration problem
func ConfigError(message string, noColor bool) string {
	return Notice{
		Title:   "configuration error",
		Message: message,
		Next:    []string{"Create a config file: mozaik init", "Get help: mozaik --help"},
	}.Render(noColor)
}

// BackendError renders a failed backend operation
func BackendError(operation string, err error, noColor bool) string {
	return Notice{
		Title:   operation + " failed",
		Message: err.Error(),
		Next: []string{
			"Check api_endpoint and access_token in mozaik.yaml",
			"Run again with --verbose for request details",
		},
	}.Render(noColor)
}

// ApplyError renders a failed apply run. Steps before the failure stay
// applied.
func ApplyError(err error, runID string, applied int, noColor bool) string {
	return Notice{
		Title:   "apply failed",
		Message: err.Error(),
		Detail:  fmt.Sprintf("%d step(s) were applied before the failure and have not been rolled back.", applied),
		Next:    []string{"Inspect the run: mozaik journal " + runID},
	}.Render(noColor)
}

func Warning(message string, similar []string, noColor bool) string {
	return Notice{Level: LevelWarning, Message: message, Similar: similar}.Render(noColor)
}

// Info renders a single informational line without the trailing newline
func Info(message string, noColor bool) string {
	return strings.TrimSuffix(Notice{Level: LevelInfo, Message: message}.Render(noColor), "\n")
}
