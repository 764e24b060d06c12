// Package errors formats command failures consistently for the terminal.
package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/pulsecheck/pulse/internal/logger"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Format prefixes err with "Error: ". A nil error formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a message built from format and args.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. It does
// nothing when err is nil.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}

// Fatalf is Fatal for a formatted message.
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(stderr, Formatf(format, args...))
	exit(1)
}
