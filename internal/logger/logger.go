// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger writes diagnostic output to stderr. Debug lines appear only
// in verbose mode; warnings and failures are always written and are colored
// when the output is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for all log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Output returns the current log writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints a status line.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, format+"\n", args...)
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	warnColor.Fprintf(output, "warning: "+format+"\n", args...)
}

// Fail prints a failure line for one item of a batch.
func Fail(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	failColor.Fprintf(output, "failed:  "+format+"\n", args...)
}
