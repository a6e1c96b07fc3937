// Package diag is the fatal-diagnostic primitive the rest of the module is
// built against. A violated invariant reports a styled message on stderr and
// panics; nothing in this module ever recovers from such a panic.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/muesli/termenv"
)

var (
	output     = termenv.NewOutput(os.Stderr)
	panicColor = output.Color("#FF5050")
)

// Panicf writes a [PANIC] diagnostic carrying the caller's position to
// stderr and panics with the formatted message.
func Panicf(format string, args ...any) {
	fail(2, fmt.Sprintf(format, args...))
}

// Assert panics via Panicf when cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		fail(2, "assertion failed: "+msg)
	}
}

// Assertf is Assert with a formatted message.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		fail(2, "assertion failed: "+fmt.Sprintf(format, args...))
	}
}

func fail(skip int, msg string) {
	file, line := "???", 0
	if _, f, l, ok := runtime.Caller(skip); ok {
		file, line = filepath.Base(f), l
	}
	styled := output.String(fmt.Sprintf("[PANIC] (%s:%d) %s", file, line, msg)).
		Foreground(panicColor)
	fmt.Fprintln(output, styled)
	panic(msg)
}
