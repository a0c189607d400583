// Package logging sets up the structured logger of the ldapname command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Log levels accepted by New.
const (
	LevelNone  = "none"
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// Log formats accepted by New.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// New returns a logger writing to w in the given format that drops
// messages below the given level. Every record carries a timestamp and the
// caller.
func New(w io.Writer, logLevel, format string) (log.Logger, error) {
	var logger log.Logger

	switch strings.ToLower(format) {
	case FormatLogfmt, "":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case FormatJSON:
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("invalid log format: %q (valid: logfmt, json)", format)
	}

	option, err := levelOption(logLevel)
	if err != nil {
		return nil, err
	}
	logger = level.NewFilter(logger, option)

	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}

// Nop returns a logger that discards everything.
func Nop() log.Logger {
	return log.NewNopLogger()
}

func levelOption(logLevel string) (level.Option, error) {
	switch strings.ToLower(logLevel) {
	case LevelNone:
		return level.AllowNone(), nil
	case LevelError:
		return level.AllowError(), nil
	case LevelWarn, "":
		return level.AllowWarn(), nil
	case LevelInfo:
		return level.AllowInfo(), nil
	case LevelDebug:
		return level.AllowDebug(), nil
	default:
		return nil, fmt.Errorf("invalid log level: %q (valid: none, error, warn, info, debug)", logLevel)
	}
}
