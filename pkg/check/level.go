package check

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a diagnostic.
// Values are spaced so that hosts can slot custom levels between them.
type Level int

const (
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

// Levels lists the known levels from most to least severe.
//
//nolint:gochecknoglobals // Fixed lookup table
var Levels = []Level{LevelCritical, LevelError, LevelWarning, LevelInfo, LevelDebug}

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Validate checks if the level is one of the known levels.
func (l Level) Validate() error {
	for _, known := range Levels {
		if l == known {
			return nil
		}
	}

	return fmt.Errorf("invalid level: %d", int(l))
}

// MarshalText encodes the level by name for JSON and YAML output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// ParseLevel parses a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	for _, known := range Levels {
		if strings.EqualFold(s, known.String()) {
			return known, nil
		}
	}

	return 0, fmt.Errorf("invalid level: %q (must be one of: CRITICAL, ERROR, WARNING, INFO, DEBUG)", s)
}
