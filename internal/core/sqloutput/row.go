package sqloutput

import (
	errspkg "github.com/streamforge/enrichkit/internal/core/errors"
)

// ValueKind is the closed variant of native value categories a row source
// exposes. Anything a source cannot classify is Opaque and handled by the
// embedded-JSON fallback during shaping.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindFloat
	KindBoolean
	KindText
	KindTemporal
	KindOpaque
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	case KindTemporal:
		return "temporal"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Column is one (label, value, kind) triple read from a tabular record. A nil
// Value represents SQL NULL regardless of kind.
type Column struct {
	Label string
	Value any
	Kind  ValueKind
}

// Row is an ordered column sequence read from one tabular record. Consumed
// once, never mutated.
type Row []Column

// RowSource is the sequential pull interface over one query's result rows.
// Next returns (row, true, nil) while rows remain, then (nil, false, err)
// where err carries any terminal read failure.
type RowSource interface {
	Next() (Row, bool, error)
	Close() error
}

// Collect drains a source to exhaustion in order and closes it. Any read
// failure aborts the whole collection; a torn row set cannot be meaningfully
// enveloped.
func Collect(src RowSource) ([]Row, error) {
	if src == nil {
		return nil, errspkg.ErrRowSourceRequired
	}
	defer src.Close()

	var rows []Row
	for {
		row, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}
