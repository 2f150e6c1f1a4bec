package table

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/appkit-dev/syscheck/pkg/util"
)

// RendererConfig holds the configuration of a Renderer.
type RendererConfig[T any] struct {
	writer     io.Writer
	headers    []string
	formatters map[string]ColumnFormatter
	extractors map[string]func(row T) (any, error)
}

type Option[T any] = util.Option[RendererConfig[T]]

func WithWriter[T any](w io.Writer) Option[T] {
	return util.FunctionalOption[RendererConfig[T]](func(cfg *RendererConfig[T]) {
		cfg.writer = w
	})
}

func WithHeaders[T any](headers ...string) Option[T] {
	return util.FunctionalOption[RendererConfig[T]](func(cfg *RendererConfig[T]) {
		cfg.headers = headers
	})
}

// WithFormatter sets the formatter of the column named header.
func WithFormatter[T any](header string, formatter ColumnFormatter) Option[T] {
	return util.FunctionalOption[RendererConfig[T]](func(cfg *RendererConfig[T]) {
		cfg.formatters[strings.ToLower(header)] = formatter
	})
}

// WithExtractor sets how the cell of the column named header is read from a
// row, replacing the field lookup.
func WithExtractor[T any](header string, extract func(row T) (any, error)) Option[T] {
	return util.FunctionalOption[RendererConfig[T]](func(cfg *RendererConfig[T]) {
		cfg.extractors[strings.ToLower(header)] = extract
	})
}

// Renderer prints values of type T as table rows. Struct fields and map keys
// are matched to headers case-insensitively; slices are read positionally.
type Renderer[T any] struct {
	cfg   RendererConfig[T]
	table *tablewriter.Table
}

func NewRenderer[T any](opts ...Option[T]) *Renderer[T] {
	cfg := RendererConfig[T]{
		writer:     os.Stdout,
		formatters: make(map[string]ColumnFormatter),
		extractors: make(map[string]func(row T) (any, error)),
	}

	util.ApplyOptions(&cfg, opts...)

	t := tablewriter.NewWriter(cfg.writer)
	t.Header(cfg.headers)

	return &Renderer[T]{
		cfg:   cfg,
		table: t,
	}
}

// Append adds one row.
func (r *Renderer[T]) Append(value T) error {
	row := make([]string, len(r.cfg.headers))

	for i, header := range r.cfg.headers {
		extract := r.extract
		if custom, ok := r.cfg.extractors[strings.ToLower(header)]; ok {
			extract = func(row T, _ int, _ string) (any, error) {
				return custom(row)
			}
		}

		cell, err := extract(value, i, header)
		if err != nil {
			return fmt.Errorf("column %s: %w", header, err)
		}

		if f, ok := r.cfg.formatters[strings.ToLower(header)]; ok {
			cell = f(cell)
		}

		row[i] = toString(cell)
	}

	if err := r.table.Append(row); err != nil {
		return fmt.Errorf("appending row: %w", err)
	}

	return nil
}

// AppendAll adds one row per value.
func (r *Renderer[T]) AppendAll(values []T) error {
	for _, v := range values {
		if err := r.Append(v); err != nil {
			return err
		}
	}

	return nil
}

// Render writes the table.
func (r *Renderer[T]) Render() error {
	if err := r.table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

func (r *Renderer[T]) extract(value T, index int, header string) (any, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if index >= rv.Len() {
			return nil, nil
		}

		return rv.Index(index).Interface(), nil
	case reflect.Struct:
		field := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, header)
		})
		if !field.IsValid() || !field.CanInterface() {
			return nil, nil
		}

		return field.Interface(), nil
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if key.Kind() == reflect.String && strings.EqualFold(key.String(), header) {
				return rv.MapIndex(key).Interface(), nil
			}
		}

		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported row type %T", value)
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
