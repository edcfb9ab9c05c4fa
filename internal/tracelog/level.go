package tracelog

import (
	"fmt"
	"strings"
)

// Level is the severity of a captured record. Higher values are more severe.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// Levels returns every level from least to most severe.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}

func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts level names case-insensitively ("warning" is an alias for warn).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown level %q", s)
}

// AtLeast reports whether l is as severe as threshold or more.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold
}
