package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Color output helpers
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
)

// NoColor turns the escape codes off. It starts true when NO_COLOR is set.
var NoColor = os.Getenv("NO_COLOR") != ""

func printLine(w io.Writer, color, mark, msg string, args ...any) {
	line := mark + " " + fmt.Sprintf(msg, args...)
	if NoColor {
		fmt.Fprintln(w, line)
		return
	}
	fmt.Fprintln(w, color+line+ColorReset)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, msg string, args ...any) {
	printLine(w, ColorGreen, "✓", msg, args...)
}

// PrintError prints an error message
func PrintError(w io.Writer, msg string, args ...any) {
	printLine(w, ColorRed, "✗", msg, args...)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, msg string, args ...any) {
	printLine(w, ColorCyan, "ℹ", msg, args...)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, msg string, args ...any) {
	printLine(w, ColorYellow, "⚠", msg, args...)
}

// PrintHeader prints a title between two rules.
func PrintHeader(w io.Writer, title string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// PrintTable writes tab-aligned rows under a header.
func PrintTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// DirExists checks if a directory exists
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
