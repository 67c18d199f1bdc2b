package sqloutput

import (
	"fmt"
	"math"
	"time"

	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
)

// shapeRow flattens one row into a JSON object, rewriting labels per the
// naming mode. Any column failure is fatal for the whole query.
func shapeRow(row Row, naming NamingMode) (map[string]any, error) {
	object := make(map[string]any, len(row))
	for _, col := range row {
		value, err := columnValue(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Label, err)
		}
		object[transformLabel(col.Label, naming)] = value
	}
	return object, nil
}

// columnValue maps one native value onto its JSON counterpart. A nil native
// value is JSON null for every kind.
func columnValue(col Column) (any, error) {
	if col.Value == nil {
		return nil, nil
	}

	switch col.Kind {
	case KindInteger:
		return integerValue(col.Value)
	case KindFloat:
		return floatValue(col.Value)
	case KindBoolean:
		b, ok := col.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", col.Value)
		}
		return b, nil
	case KindText:
		return textValue(col.Value)
	case KindTemporal:
		t, ok := col.Value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time, got %T", col.Value)
		}
		return t.UTC().Format(time.RFC3339Nano), nil
	case KindOpaque:
		return opaqueValue(col.Value), nil
	default:
		return nil, fmt.Errorf("unknown value kind %v", col.Kind)
	}
}

func integerValue(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// floatValue maps NaN (and the infinities, which JSON cannot carry either)
// to null.
func floatValue(v any) (any, error) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil, fmt.Errorf("expected floating point, got %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	return f, nil
}

func textValue(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return nil, fmt.Errorf("expected text, got %T", v)
	}
}

// opaqueValue handles values outside the closed kind set: already-decoded
// JSON composites pass through, textual values are attempted as embedded
// JSON, and everything else falls back to a JSON string of its textual
// representation.
func opaqueValue(v any) any {
	switch o := v.(type) {
	case map[string]any, []any:
		return o
	case string:
		return parseEmbeddedJSON(o)
	case []byte:
		return parseEmbeddedJSON(string(o))
	default:
		return parseEmbeddedJSON(fmt.Sprint(o))
	}
}

func parseEmbeddedJSON(text string) any {
	var embedded any
	if err := jsoncodec.Unmarshal([]byte(text), &embedded); err != nil {
		return text
	}
	return embedded
}
