package sqloutput

import (
	"errors"
	"fmt"

	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// ErrInvalidRowCount is the sentinel every InvalidRowCountError matches
// through errors.Is.
var ErrInvalidRowCount = errors.New("enrichkit: row count outside expected range")

// InvalidRowCountError rejects a row set whose size falls outside the
// configured policy. This is a recoverable, per-event failure; the calling
// enrichment turns it into an event-level rejection.
type InvalidRowCountError struct {
	Mode  RowCountMode
	Count int
}

func (e *InvalidRowCountError) Error() string {
	return fmt.Sprintf("enrichkit: expected %s rows, got %d", e.Mode, e.Count)
}

func (e *InvalidRowCountError) Is(target error) bool {
	if target == ErrInvalidRowCount {
		return true
	}
	_, ok := target.(*InvalidRowCountError)
	return ok
}

// Convert shapes the rows, enforces the row-count policy, and wraps the
// result per the describe mode. A shaping failure aborts the whole
// conversion; a row-count rejection comes back as *InvalidRowCountError.
func Convert(rows []Row, spec Spec) ([]selfdescpkg.Document, error) {
	shaped := make([]map[string]any, len(rows))
	for i, row := range rows {
		object, err := shapeRow(row, spec.PropertyNames)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		shaped[i] = object
	}

	if !spec.ExpectedRows.accepts(len(shaped)) {
		return nil, &InvalidRowCountError{Mode: spec.ExpectedRows, Count: len(shaped)}
	}

	return envelope(shaped, spec)
}

// ConvertSource drains the source and converts the collected rows. Source
// read failures are fatal for the query, never per-row.
func ConvertSource(src RowSource, spec Spec) ([]selfdescpkg.Document, error) {
	rows, err := Collect(src)
	if err != nil {
		return nil, err
	}
	return Convert(rows, spec)
}

// envelope applies the describe mode to an accepted row set.
//
// AllRows with a one-or-zero policy wraps the single object (or yields no
// context at all for an empty set). AllRows with a many policy always yields
// exactly one context wrapping the array, empty included. EveryRow yields
// one context per row, all under the same schema.
func envelope(shaped []map[string]any, spec Spec) ([]selfdescpkg.Document, error) {
	switch spec.Describe {
	case DescribeAllRows:
		if spec.ExpectedRows.singular() {
			if len(shaped) == 0 {
				return nil, nil
			}
			doc, err := wrap(spec.Schema, shaped[0])
			if err != nil {
				return nil, err
			}
			return []selfdescpkg.Document{doc}, nil
		}

		doc, err := wrap(spec.Schema, shaped)
		if err != nil {
			return nil, err
		}
		return []selfdescpkg.Document{doc}, nil

	case DescribeEveryRow:
		docs := make([]selfdescpkg.Document, 0, len(shaped))
		for _, object := range shaped {
			doc, err := wrap(spec.Schema, object)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil

	default:
		return nil, fmt.Errorf("enrichkit: unknown describe mode %v", spec.Describe)
	}
}

func wrap(schema selfdescpkg.SchemaKey, value any) (selfdescpkg.Document, error) {
	data, err := jsoncodec.Marshal(value)
	if err != nil {
		return selfdescpkg.Document{}, err
	}
	return selfdescpkg.Document{Schema: schema, Data: data}, nil
}
