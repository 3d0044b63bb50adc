package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	return ConfirmFrom(os.Stdin, prompt, defaultYes)
}

// ConfirmFrom is Confirm reading the answer from r. --yes answers every
// prompt with yes; an empty answer takes the default.
func ConfirmFrom(r io.Reader, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(os.Stderr, prompt+suffix)

	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// status is one kind of status line: a glyph and colour on terminals, a
// plain prefix with --no-color
type status struct {
	glyph  string
	plain  string
	style  lipgloss.Style
	stderr bool
	always bool
}

var (
	statusSuccess = status{glyph: "✓", plain: "OK:", style: lipgloss.NewStyle().Foreground(lipgloss.Color("42"))}
	statusInfo    = status{glyph: "ℹ", plain: "INFO:", style: lipgloss.NewStyle().Foreground(lipgloss.Color("39"))}
	statusWarning = status{glyph: "⚠", plain: "WARNING:", style: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), stderr: true, always: true}
	statusError   = status{glyph: "✗", plain: "ERROR:", style: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), stderr: true, always: true}
)

func (s status) print(format string, args ...interface{}) {
	if quiet && !s.always {
		return
	}
	w := io.Writer(os.Stdout)
	if s.stderr {
		w = os.Stderr
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "%s %s\n", s.plain, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", s.style.Render(s.glyph), msg)
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) { statusSuccess.print(format, args...) }

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) { statusInfo.print(format, args...) }

// PrintWarning prints a warning to stderr, even in quiet mode
func PrintWarning(format string, args ...interface{}) { statusWarning.print(format, args...) }

// PrintError prints an error to stderr, even in quiet mode
func PrintError(format string, args ...interface{}) { statusError.print(format, args...) }

// Global flags (set from the root command)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// NoColor reports whether --no-color is in effect
func NoColor() bool {
	return noColor
}
