// Package logging sets up the process-wide zerolog logger. The terminal
// belongs to the UI, so output goes to a rotating file only.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init points the global logger at path and returns a cleanup function that
// closes the file.
func Init(path, level string) (func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", level, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		LocalTime:  true,
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(lj).Level(lvl).With().Timestamp().Logger()

	cleanup := func() {
		if err := lj.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "logmap: close log: %v\n", err)
		}
	}
	return cleanup, nil
}
