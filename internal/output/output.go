// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode. Max-diff lines, failures and
// the final verdict are printed even in quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Quiet reports whether quiet mode is enabled.
func (w *Writer) Quiet() bool {
	return w.quiet
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// ErrorPrefix prints an error message with the westcheck prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swestcheck:%s %s", red, reset, msg)
	} else {
		w.Errorln("westcheck: %s", msg)
	}
}

// MaxDiff prints the maximum absolute difference found for one compared
// observable. The line is printed whether the comparison passes or not.
func (w *Writer) MaxDiff(label string, diff float64) {
	w.Println("%s max diff: %v", label, diff)
}

// CheckHeading prints the heading of a check, e.g. "pdep_eigen" becomes
// "=== Pdep Eigen ===".
func (w *Writer) CheckHeading(check string) {
	if w.quiet {
		return
	}
	w.Println("")
	title := Heading(check)
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// Heading turns a snake_case identifier into a title-cased heading.
func Heading(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// CaseStart prints the start of a (check, test directory) case.
func (w *Writer) CaseStart(check, testDir string) {
	if w.quiet {
		return
	}
	label := fmt.Sprintf("─── [%s] %s ───", check, testDir)
	if w.color {
		w.Println("%s%s%s", bold+cyan, label, reset)
	} else {
		w.Println("%s", label)
	}
}

// CasePassed prints a passing case.
func (w *Writer) CasePassed(check, testDir string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s[%s]%s %s %s✓%s", green, check, reset, testDir, green, reset)
	} else {
		w.Println("[%s] %s passed", check, testDir)
	}
}

// CaseFailed prints a failing or erroring case to stderr.
func (w *Writer) CaseFailed(check, testDir string, err error) {
	if w.color {
		w.Errorln("%s[%s] %s failed:%s %v", red, check, testDir, reset, err)
	} else {
		w.Errorln("[%s] %s failed: %v", check, testDir, err)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	w.Println("%s", joinCells(headers, widths))

	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	w.Println("%s", strings.Join(sep, "  "))

	for _, row := range rows {
		w.Println("%s", joinCells(row, widths))
	}
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i == len(cells)-1 || i == len(widths)-1 {
			parts = append(parts, cell)
			continue
		}
		parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
	}
	return strings.Join(parts, "  ")
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed items summary.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, green, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, red, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryCase prints one case of a detailed summary with a status marker
// and, for failures, the error message.
func (w *Writer) SummaryCase(name string, success bool, errMsg string) {
	if w.color {
		if success {
			w.Print("    %s✓%s %s", green, reset, name)
		} else {
			w.Print("    %s✗%s %s", red, reset, name)
		}
		if !success && errMsg != "" {
			w.Print("  %s(%s)%s", dim, errMsg, reset)
		}
	} else {
		if success {
			w.Print("    + %s", name)
		} else {
			w.Print("    x %s", name)
		}
		if !success && errMsg != "" {
			w.Print("  (%s)", errMsg)
		}
	}
	w.Print("\n")
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", green, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", red, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
