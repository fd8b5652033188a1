package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Local environments get the
// human-readable development config at debug level; everything else
// gets production JSON output.
func NewLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
