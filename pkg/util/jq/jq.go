package jq

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/itchyny/gojq"
)

// normalize turns a Go value into the map/slice/scalar shapes gojq accepts.
// String-keyed maps and non-byte slices are walked; everything else goes through JSON.
func normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		if m, ok := value.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for k, v := range m {
				elem, err := normalize(v)
				if err != nil {
					return nil, err
				}

				out[k] = elem
			}

			return out, nil
		}
	case reflect.Slice:
		if _, isBytes := value.([]byte); !isBytes {
			slice := make([]any, rv.Len())
			for i := range rv.Len() {
				elem, err := normalize(rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}

				slice[i] = elem
			}

			return slice, nil
		}
	default:
	}

	var normalized any

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return normalized, nil
}

// Query executes a JQ query against value and returns the first result cast to T.
// A null or empty result yields the zero value of T.
func Query[T any](value any, jqQuery string) (T, error) {
	var zero T

	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return zero, fmt.Errorf("failed to parse jq query: %w", err)
	}

	normalized, err := normalize(value)
	if err != nil {
		return zero, err
	}

	iter := query.Run(normalized)

	result, ok := iter.Next()
	if !ok {
		return zero, nil
	}

	if err, isErr := result.(error); isErr {
		return zero, fmt.Errorf("jq query error: %w", err)
	}

	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("query result type mismatch: expected %T, got %T (value: %v)",
			zero, result, result)
	}

	return typed, nil
}
