package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/appkit-dev/syscheck/pkg/check"
	"github.com/appkit-dev/syscheck/pkg/printer/table"
)

// Run executes the selected checks and prints the report. It returns a
// *check.SystemCheckError when findings reach the fail level.
func (o *Options) Run(ctx context.Context) error {
	if o.ListTags {
		for _, tag := range o.Registry.TagsAvailable(o.Deploy) {
			_, _ = fmt.Fprintln(o.Out, tag)
		}

		return nil
	}

	if o.ListChecks != "" {
		return o.listChecks()
	}

	opts := []check.RunOption{
		check.WithDeploymentChecks(o.Deploy),
		check.WithDatabases(o.Databases...),
		check.WithParallelism(o.Parallelism),
		check.WithLogger(o.logger),
	}

	if len(o.AppLabels) > 0 {
		opts = append(opts, check.WithAppLabels(o.AppLabels...))
	}

	for _, tag := range o.Tags {
		opts = append(opts, check.WithTags(check.Tag(tag)))
	}

	diagnostics, err := o.Registry.RunChecks(ctx, opts...)
	if err != nil {
		return err
	}

	report := check.NewReport(diagnostics, o.settings.SilencedSystemChecks, o.failLevel)

	if err := o.output(report); err != nil {
		return err
	}

	return report.Err()
}

func (o *Options) listChecks() error {
	checks, err := o.Registry.ListByPattern(o.ListChecks, o.Deploy)
	if err != nil {
		return err
	}

	for _, c := range checks {
		tags := make([]string, len(c.Tags))
		for i, tag := range c.Tags {
			tags[i] = string(tag)
		}

		_, _ = fmt.Fprintf(o.Out, "%s\t%s\n", c.Name, strings.Join(tags, ","))
	}

	return nil
}

func (o *Options) output(report *check.Report) error {
	switch o.OutputFormat {
	case OutputFormatText:
		report.WriteText(o.Out, o.colorize())

		return nil
	case OutputFormatTable:
		return outputTable(o.Out, report)
	case OutputFormatJSON:
		return outputJSON(o.Out, report)
	case OutputFormatYAML:
		return outputYAML(o.Out, report)
	default:
		return fmt.Errorf("unsupported output format: %s", o.OutputFormat)
	}
}

// DiagnosticOutput is a diagnostic as printed in JSON/YAML/table output.
type DiagnosticOutput struct {
	Level   string `json:"level"`
	ID      string `json:"id,omitempty"`
	Object  string `json:"object"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// ReportOutput is the full JSON/YAML document.
type ReportOutput struct {
	Diagnostics []DiagnosticOutput `json:"diagnostics"`
	Summary     Summary            `json:"summary"`
}

// Summary counts visible diagnostics, overall and per level.
type Summary struct {
	Total    int            `json:"total"`
	Silenced int            `json:"silenced"`
	Levels   map[string]int `json:"levels,omitempty"`
}

func convertToOutputFormat(report *check.Report) *ReportOutput {
	out := &ReportOutput{
		Diagnostics: make([]DiagnosticOutput, 0, len(report.Visible())),
	}

	for _, d := range report.Visible() {
		out.Diagnostics = append(out.Diagnostics, DiagnosticOutput{
			Level:   d.Level.String(),
			ID:      d.ID,
			Object:  d.ObjectLabel(),
			Message: d.Msg,
			Hint:    d.Hint,
		})
	}

	out.Summary = computeSummary(report)

	return out
}

func computeSummary(report *check.Report) Summary {
	summary := Summary{
		Total:    len(report.Visible()),
		Silenced: report.Silenced(),
	}

	for _, level := range check.Levels {
		if n := len(report.ByLevel(level)); n > 0 {
			if summary.Levels == nil {
				summary.Levels = make(map[string]int)
			}

			summary.Levels[level.String()] = n
		}
	}

	return summary
}

// messageQuery renders the message cell of a DiagnosticOutput row with its
// hint on a second line.
const messageQuery = `.message + (if .hint then "\nHINT: " + .hint else "" end)`

func outputTable(out io.Writer, report *check.Report) error {
	renderer := table.NewWithColumns[DiagnosticOutput](out,
		table.NewColumn("Level"),
		table.NewColumn("ID"),
		table.NewColumn("Object"),
		table.NewColumn("Message").Query(messageQuery),
	)

	if err := renderer.AppendAll(convertToOutputFormat(report).Diagnostics); err != nil {
		return err
	}

	if err := renderer.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, report.Summary())

	return nil
}

func outputJSON(out io.Writer, report *check.Report) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(convertToOutputFormat(report)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

func outputYAML(out io.Writer, report *check.Report) error {
	data, err := yaml.Marshal(convertToOutputFormat(report))
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	_, _ = fmt.Fprint(out, string(data))

	return nil
}
