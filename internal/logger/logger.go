package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger. Debug output is enabled when verbose is set.
func New(verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, verbose)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(w).With().Timestamp().Str("service", "ticketdesk").Logger()
	if verbose {
		return l.Level(zerolog.DebugLevel)
	}
	return l.Level(zerolog.InfoLevel)
}
