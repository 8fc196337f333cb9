// Package logging is a thin leveled wrapper around the standard library's
// log package, gated by the BICYCLE_LOG environment variable in the style
// of RUST_LOG: debug, info, warn, or error, defaulting to info.
package logging

import (
	"log"
	"os"
	"strings"
)

// Level orders the four verbosity tiers gated by BICYCLE_LOG.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	case "info", "":
		return Info
	default:
		return Info
	}
}

var current = parseLevel(os.Getenv("BICYCLE_LOG"))

// Enabled reports whether a line at level would be printed.
func Enabled(level Level) bool {
	return level >= current
}

func logf(level Level, format string, args ...interface{}) {
	if !Enabled(level) {
		return
	}
	log.Printf("["+level.String()+"] "+format, args...)
}

func Debugf(format string, args ...interface{}) { logf(Debug, format, args...) }
func Infof(format string, args ...interface{})  { logf(Info, format, args...) }
func Warnf(format string, args ...interface{})  { logf(Warn, format, args...) }
func Errorf(format string, args ...interface{}) { logf(Error, format, args...) }

// Fatalf logs an error line and terminates the process with a non-zero
// status, matching the CLI binaries' "single error line" exit contract.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf("[error] "+format, args...)
}
