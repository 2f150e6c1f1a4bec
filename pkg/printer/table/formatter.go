package table

import (
	"fmt"

	"github.com/appkit-dev/syscheck/pkg/util/jq"
)

// ColumnFormatter transforms a raw column value before it is printed.
type ColumnFormatter func(value any) any

// JQFormatter returns a formatter that evaluates query against the value.
// Query errors are rendered in the cell instead of failing the table.
func JQFormatter(query string) ColumnFormatter {
	return func(value any) any {
		result, err := jq.Query[any](value, query)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}

		return result
	}
}

// ChainFormatters applies formatters in sequence.
func ChainFormatters(formatters ...ColumnFormatter) ColumnFormatter {
	return func(value any) any {
		for _, f := range formatters {
			value = f(value)
		}

		return value
	}
}
