package table

import (
	"io"

	"github.com/appkit-dev/syscheck/pkg/util/jq"
)

// Column describes one table column: where its cell comes from and how the
// cell is formatted.
type Column struct {
	name       string
	query      string
	formatters []ColumnFormatter
}

// NewColumn creates a column whose cell is the row field or map key named
// like the header.
func NewColumn(name string) Column {
	return Column{name: name}
}

// Query makes the cell the result of a jq query run against the whole row
// instead of the same-named field.
func (c Column) Query(query string) Column {
	c.query = query

	return c
}

// JQ appends a jq formatter applied to the cell.
func (c Column) JQ(query string) Column {
	c.formatters = append(c.formatters, JQFormatter(query))

	return c
}

func (c Column) Fn(formatter ColumnFormatter) Column {
	c.formatters = append(c.formatters, formatter)

	return c
}

func (c Column) formatter() (ColumnFormatter, bool) {
	switch len(c.formatters) {
	case 0:
		return nil, false
	case 1:
		return c.formatters[0], true
	default:
		return ChainFormatters(c.formatters...), true
	}
}

// NewWithColumns creates a renderer from column definitions, e.g.
//
//	table.NewWithColumns[row](os.Stdout,
//	    table.NewColumn("ID"),
//	    table.NewColumn("Message").Query(`.message + " (" + .id + ")"`),
//	    table.NewColumn("Object").Fn(shorten),
//	)
func NewWithColumns[T any](writer io.Writer, columns ...Column) *Renderer[T] {
	headers := make([]string, 0, len(columns))
	options := []Option[T]{WithWriter[T](writer)}

	for _, col := range columns {
		headers = append(headers, col.name)

		if col.query != "" {
			query := col.query
			options = append(options, WithExtractor[T](col.name, func(row T) (any, error) {
				return jq.Query[any](row, query)
			}))
		}

		if f, ok := col.formatter(); ok {
			options = append(options, WithFormatter[T](col.name, f))
		}
	}

	return NewRenderer[T](append(options, WithHeaders[T](headers...))...)
}
