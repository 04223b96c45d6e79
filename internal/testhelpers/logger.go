// Package testhelpers provides shared utilities for tests.
package testhelpers

import "github.com/jonesrussell/gotools/internal/logger"

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
