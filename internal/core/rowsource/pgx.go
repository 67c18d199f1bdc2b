// Package rowsource adapts PostgreSQL query results into the converter's row
// stream. The adapter owns no connection lifecycle; it only walks the rows it
// is handed.
package rowsource

import (
	"time"

	"github.com/jackc/pgx/v5"

	sqloutputpkg "github.com/streamforge/enrichkit/internal/core/sqloutput"
)

// PgxSource wraps pgx.Rows as a sqloutput.RowSource.
type PgxSource struct {
	rows pgx.Rows
}

// FromPgx builds a row source over the result of one query. The caller keeps
// ownership of the surrounding connection; closing the source closes only
// the rows.
func FromPgx(rows pgx.Rows) *PgxSource {
	return &PgxSource{rows: rows}
}

// Next pulls one row, classifying each column value into the converter's
// closed kind set.
func (s *PgxSource) Next() (sqloutputpkg.Row, bool, error) {
	if !s.rows.Next() {
		return nil, false, s.rows.Err()
	}

	values, err := s.rows.Values()
	if err != nil {
		return nil, false, err
	}

	fields := s.rows.FieldDescriptions()
	row := make(sqloutputpkg.Row, len(values))
	for i, value := range values {
		row[i] = sqloutputpkg.Column{
			Label: fields[i].Name,
			Value: value,
			Kind:  classifyValue(value),
		}
	}
	return row, true, nil
}

// Close releases the underlying rows and surfaces any deferred read error.
func (s *PgxSource) Close() error {
	s.rows.Close()
	return s.rows.Err()
}

// classifyValue maps the Go value pgx decoded onto a ValueKind. Values with
// no scalar category (numerics, uuids, json documents, arrays) are opaque and
// go through the converter's embedded-JSON fallback.
func classifyValue(v any) sqloutputpkg.ValueKind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return sqloutputpkg.KindInteger
	case float32, float64:
		return sqloutputpkg.KindFloat
	case bool:
		return sqloutputpkg.KindBoolean
	case string:
		return sqloutputpkg.KindText
	case time.Time:
		return sqloutputpkg.KindTemporal
	default:
		return sqloutputpkg.KindOpaque
	}
}
