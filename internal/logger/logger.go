// Package logger builds the zap loggers used across the application.
//
// The MCP server speaks its protocol on stdout, so every logger produced
// here writes to stderr only.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger writing to stderr. verbose enables debug-level
// output and a development-friendly console encoder; otherwise the logger
// emits info-level JSON.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// Must is like New but exits the process on error. Intended for command
// entry points where there is no caller to report to.
func Must(verbose bool) *zap.Logger {
	l, err := New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return l
}
