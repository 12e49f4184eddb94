// Package logger provides verbose logging for zirar.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr describing each job as it loads, runs and ends.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write serialises output so concurrent jobs do not interleave lines.
func write(level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("DEBUG", "", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("INFO", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write("WARN", "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scope tags every message with a fixed label, such as a job ID.
type Scope struct {
	prefix string
}

// For returns a scope labelled with name.
func For(name string) Scope {
	if name == "" {
		return Scope{}
	}
	return Scope{prefix: name + ": "}
}

// Debug prints a scoped debug message.
func (s Scope) Debug(format string, args ...any) {
	write("DEBUG", s.prefix, format, args...)
}

// Info prints a scoped informational message.
func (s Scope) Info(format string, args ...any) {
	write("INFO", s.prefix, format, args...)
}

// Warn prints a scoped warning.
func (s Scope) Warn(format string, args ...any) {
	write("WARN", s.prefix, format, args...)
}
