package check

import (
	"fmt"
	"strings"
)

// Labeler is implemented by objects that have a dotted label, such as models.
type Labeler interface {
	Label() string
}

// Diagnostic is a single finding produced by a check.
// Values are treated as immutable once returned by a check.
type Diagnostic struct {
	// Level is the severity of the finding
	Level Level

	// Msg is the human-readable description of the problem
	Msg string

	// Hint optionally suggests how to fix the problem
	Hint string

	// Obj is the offending object, if any
	Obj any

	// ID is the stable identifier of the finding (e.g., "fields.W162")
	ID string
}

// New creates a diagnostic at the given level.
func New(level Level, id string, msg string, obj any) Diagnostic {
	return Diagnostic{
		Level: level,
		Msg:   msg,
		Obj:   obj,
		ID:    id,
	}
}

func NewDebug(id string, msg string, obj any) Diagnostic {
	return New(LevelDebug, id, msg, obj)
}

func NewInfo(id string, msg string, obj any) Diagnostic {
	return New(LevelInfo, id, msg, obj)
}

func NewWarning(id string, msg string, obj any) Diagnostic {
	return New(LevelWarning, id, msg, obj)
}

func NewError(id string, msg string, obj any) Diagnostic {
	return New(LevelError, id, msg, obj)
}

func NewCritical(id string, msg string, obj any) Diagnostic {
	return New(LevelCritical, id, msg, obj)
}

// WithHint returns a copy of the diagnostic carrying the given hint.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint

	return d
}

// IsSerious reports whether the diagnostic is at or above the given level.
// With no argument the threshold is LevelError.
func (d Diagnostic) IsSerious(level ...Level) bool {
	threshold := LevelError
	if len(level) > 0 {
		threshold = level[0]
	}

	return d.Level >= threshold
}

// IsSilenced reports whether the diagnostic id is in the silenced list.
func (d Diagnostic) IsSilenced(silenced []string) bool {
	for _, id := range silenced {
		if id == d.ID {
			return true
		}
	}

	return false
}

// ObjectLabel renders the offending object, or "?" when there is none.
func (d Diagnostic) ObjectLabel() string {
	switch obj := d.Obj.(type) {
	case nil:
		return "?"
	case Labeler:
		return obj.Label()
	case fmt.Stringer:
		return obj.String()
	case string:
		return obj
	default:
		return fmt.Sprintf("%v", obj)
	}
}

// String formats the diagnostic as "<obj>: (<id>) <msg>" followed by an
// indented hint line when a hint is present.
func (d Diagnostic) String() string {
	var sb strings.Builder

	sb.WriteString(d.ObjectLabel())
	sb.WriteString(": ")

	if d.ID != "" {
		sb.WriteString("(")
		sb.WriteString(d.ID)
		sb.WriteString(") ")
	}

	sb.WriteString(d.Msg)

	if d.Hint != "" {
		sb.WriteString("\n\tHINT: ")
		sb.WriteString(d.Hint)
	}

	return sb.String()
}
