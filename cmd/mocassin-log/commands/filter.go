package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

// RunFilter copies the events matching filter into a new log file and
// returns the number of copied events.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Close()
			return 0, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	if err := logger.Err(); err != nil {
		logger.Close()
		return 0, fmt.Errorf("failed to write event: %w", err)
	}
	if err := logger.Close(); err != nil {
		return 0, err
	}
	return logger.Written(), nil
}
