package check

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

const (
	headerIssues = "System check identified some issues:"
)

// SystemCheckError is returned when a report contains findings at or above
// the fail level.
type SystemCheckError struct {
	Serious int
	Level   Level
}

func (e *SystemCheckError) Error() string {
	return fmt.Sprintf("SystemCheckError: %d issue(s) at or above %s", e.Serious, e.Level)
}

// Report summarizes the diagnostics of a check run.
type Report struct {
	visible   []Diagnostic
	silenced  int
	failLevel Level
}

// NewReport splits diagnostics into visible and silenced ones.
// Diagnostics whose id is listed in silenced are counted but not shown.
func NewReport(diagnostics []Diagnostic, silenced []string, failLevel Level) *Report {
	r := &Report{
		visible:   make([]Diagnostic, 0, len(diagnostics)),
		failLevel: failLevel,
	}

	for _, d := range diagnostics {
		if d.IsSilenced(silenced) {
			r.silenced++

			continue
		}

		r.visible = append(r.visible, d)
	}

	return r
}

// Visible returns the non-silenced diagnostics in run order.
func (r *Report) Visible() []Diagnostic {
	return r.visible
}

// Silenced returns how many diagnostics were silenced.
func (r *Report) Silenced() int {
	return r.silenced
}

// ByLevel returns the visible diagnostics at exactly the given level.
func (r *Report) ByLevel(level Level) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.visible {
		if d.Level == level {
			out = append(out, d)
		}
	}

	return out
}

// Err returns a *SystemCheckError when any visible diagnostic reaches the
// fail level, nil otherwise.
func (r *Report) Err() error {
	serious := 0
	for _, d := range r.visible {
		if d.IsSerious(r.failLevel) {
			serious++
		}
	}

	if serious == 0 {
		return nil
	}

	return &SystemCheckError{Serious: serious, Level: r.failLevel}
}

// Summary returns the closing line, e.g. "System check identified 2 issues (1 silenced)."
func (r *Report) Summary() string {
	var issues string

	switch n := len(r.visible); n {
	case 0:
		issues = "no issues"
	case 1:
		issues = "1 issue"
	default:
		issues = fmt.Sprintf("%d issues", n)
	}

	return fmt.Sprintf("System check identified %s (%d silenced).", issues, r.silenced)
}

// WriteText writes the report grouped by level, most severe first.
// Entries within a group are sorted by their formatted text.
func (r *Report) WriteText(out io.Writer, colorize bool) {
	if len(r.visible) > 0 {
		_, _ = fmt.Fprintln(out, headerIssues)
	}

	for _, level := range Levels {
		group := r.ByLevel(level)
		if len(group) == 0 {
			continue
		}

		c := levelColor(level)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		lines := make([]string, len(group))
		for i, d := range group {
			lines[i] = d.String()
		}

		sort.Strings(lines)

		_, _ = fmt.Fprintf(out, "\n%sS:\n", level)
		for _, line := range lines {
			_, _ = fmt.Fprintln(out, c.Sprint(line))
		}
	}

	if len(r.visible) > 0 {
		_, _ = fmt.Fprintln(out)
	}

	_, _ = fmt.Fprintln(out, r.Summary())
}

func levelColor(level Level) *color.Color {
	switch {
	case level >= LevelError:
		return color.New(color.FgRed, color.Bold)
	case level == LevelWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}
