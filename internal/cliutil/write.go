// Package cliutil provides checked write helpers for CLI output.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported to
// stderr rather than returned, since command output has no caller to
// hand the error to.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		reportWriteError(err)
	}
}

// Writeln writes s followed by a newline to w, with the same error
// handling as Writef.
func Writeln(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		reportWriteError(err)
	}
}

func reportWriteError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
}
