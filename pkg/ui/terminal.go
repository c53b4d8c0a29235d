package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Banner printed at the top of a run
const Banner = `
    ╔═══════════════════════════════════════════════╗
    ║   IGFOLLOWCHECK · offline follow-back checker   ║
    ╚═══════════════════════════════════════════════╝
`

var (
	out          io.Writer = os.Stdout
	errOut       io.Writer = os.Stderr
	colorEnabled           = term.IsTerminal(int(os.Stdout.Fd()))
	quietMode    bool
)

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes when
// colour output is enabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		if !colorEnabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// SetOutput redirects normal and error output, mostly for tests
func SetOutput(stdout, stderr io.Writer) {
	out = stdout
	errOut = stderr
}

// SetColor enables or disables ANSI colours
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(quiet bool) {
	quietMode = quiet
}

// PrintBanner prints the banner
func PrintBanner() {
	if quietMode {
		return
	}
	fmt.Fprint(out, Cyan(Banner))
}

// PrintError prints an error message in red to stderr
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(errOut, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(errOut, Red(msg))
	}
}

// PrintHint prints an indented hint line to stderr
func PrintHint(line string) {
	fmt.Fprintln(errOut, Dim("  "+line))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if quietMode {
		return
	}
	fmt.Fprintln(out, Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if quietMode {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow to stderr
func PrintWarning(msg string, args ...interface{}) {
	if quietMode {
		return
	}
	if len(args) > 0 {
		fmt.Fprintln(errOut, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(errOut, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if quietMode {
		return
	}
	fmt.Fprintln(out, Magenta(msg))
}

// Println prints a plain line
func Println(a ...interface{}) {
	if quietMode {
		return
	}
	fmt.Fprintln(out, a...)
}
