package table_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appkit-dev/syscheck/pkg/printer/table"

	. "github.com/onsi/gomega"
)

type findingRow struct {
	Level  string
	ID     string
	Object string
}

type findingWithDetails struct {
	ID      string
	Tags    []string
	Details map[string]any
}

func TestRendererWithSliceInput(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewRenderer[[]any](
		table.WithWriter[[]any](&buf),
		table.WithHeaders[[]any]("ID", "Count"),
	)

	g.Expect(renderer.Append([]any{"fields.W162", 3})).To(Succeed())
	g.Expect(renderer.Render()).To(Succeed())

	output := buf.String()
	g.Expect(output).To(ContainSubstring("fields.W162"))
	g.Expect(output).To(ContainSubstring("3"))
}

func TestRendererWithStructInput(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewRenderer[findingRow](
		table.WithWriter[findingRow](&buf),
		table.WithHeaders[findingRow]("level", "ID", "OBJECT"),
	)

	g.Expect(renderer.Append(findingRow{Level: "ERROR", ID: "signals.E001", Object: "shop.handlers"})).To(Succeed())
	g.Expect(renderer.Render()).To(Succeed())

	output := buf.String()
	g.Expect(output).To(ContainSubstring("ERROR"))
	g.Expect(output).To(ContainSubstring("signals.E001"))
	g.Expect(output).To(ContainSubstring("shop.handlers"))
}

func TestRendererWithChainedFormatters(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewWithColumns[findingRow](&buf,
		table.NewColumn("ID").JQ(".").Fn(func(v any) any {
			return strings.ToUpper(v.(string))
		}).Fn(func(v any) any {
			return "[" + v.(string) + "]"
		}),
	)

	g.Expect(renderer.Append(findingRow{ID: "fields.w162"})).To(Succeed())
	g.Expect(renderer.Render()).To(Succeed())

	g.Expect(buf.String()).To(ContainSubstring("[FIELDS.W162]"))
}

func TestRendererWithJQFormatter(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewRenderer[findingWithDetails](
		table.WithWriter[findingWithDetails](&buf),
		table.WithHeaders[findingWithDetails]("ID", "Tags", "Details"),
		table.WithFormatter[findingWithDetails]("Tags", table.JQFormatter(`. | join(",")`)),
		table.WithFormatter[findingWithDetails]("Details", table.JQFormatter(`.signal // "none"`)),
	)

	err := renderer.AppendAll([]findingWithDetails{
		{ID: "signals.E001", Tags: []string{"models", "signals"}, Details: map[string]any{"signal": "post_save"}},
		{ID: "fields.W162", Tags: []string{"models"}},
	})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(renderer.Render()).To(Succeed())

	output := buf.String()
	g.Expect(output).To(ContainSubstring("models,signals"))
	g.Expect(output).To(ContainSubstring("post_save"))
	g.Expect(output).To(ContainSubstring("none"))
}

func TestRendererUnsupportedRowType(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewRenderer[int](
		table.WithWriter[int](&buf),
		table.WithHeaders[int]("Value"),
	)

	g.Expect(renderer.Append(1)).ToNot(Succeed())
}

func TestRendererWithRowQuery(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewWithColumns[findingWithDetails](&buf,
		table.NewColumn("ID"),
		table.NewColumn("Signal").Query(`.Details.signal // "-"`).Fn(func(v any) any {
			return strings.ToUpper(v.(string))
		}),
		table.NewColumn("Summary").Query(`.ID + " [" + (.Tags | join(",")) + "]"`),
	)

	err := renderer.AppendAll([]findingWithDetails{
		{ID: "signals.E001", Tags: []string{"models", "signals"}, Details: map[string]any{"signal": "post_save"}},
		{ID: "fields.W162", Tags: []string{"models"}},
	})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(renderer.Render()).To(Succeed())

	output := buf.String()
	g.Expect(output).To(ContainSubstring("POST_SAVE"))
	g.Expect(output).To(ContainSubstring("signals.E001 [models,signals]"))
	g.Expect(output).To(ContainSubstring("fields.W162 [models]"))
}

func TestRendererRowQueryError(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	renderer := table.NewWithColumns[findingRow](&buf,
		table.NewColumn("Broken").Query(".["),
	)

	g.Expect(renderer.Append(findingRow{ID: "x"})).To(MatchError(ContainSubstring("column Broken")))
}
