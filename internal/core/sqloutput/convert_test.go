package sqloutput

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

var testSchema = selfdescpkg.MustParseSchemaKey("iglu:com.acme/user_profile/jsonschema/1-0-0")

func testSpec(describe DescribeMode, rows RowCountMode, naming NamingMode) Spec {
	return Spec{
		Schema:        testSchema,
		Describe:      describe,
		ExpectedRows:  rows,
		PropertyNames: naming,
	}
}

func simpleRow(n int) Row {
	return Row{
		{Label: "user_id", Value: int64(n), Kind: KindInteger},
		{Label: "is_new", Value: true, Kind: KindBoolean},
	}
}

func dataOf(t *testing.T, doc selfdescpkg.Document) any {
	t.Helper()
	var v any
	require.NoError(t, jsoncodec.Unmarshal(doc.Data, &v))
	return v
}

func TestConvert_RowCountMatrix(t *testing.T) {
	tests := []struct {
		mode    RowCountMode
		count   int
		accepts bool
	}{
		{ExactlyOne, 0, false},
		{ExactlyOne, 1, true},
		{ExactlyOne, 2, false},
		{AtMostOne, 0, true},
		{AtMostOne, 1, true},
		{AtMostOne, 2, false},
		{AtLeastOne, 0, false},
		{AtLeastOne, 1, true},
		{AtLeastOne, 2, true},
		{AtLeastZero, 0, true},
		{AtLeastZero, 1, true},
		{AtLeastZero, 2, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.mode, tt.count), func(t *testing.T) {
			rows := make([]Row, tt.count)
			for i := range rows {
				rows[i] = simpleRow(i)
			}

			_, err := Convert(rows, testSpec(DescribeEveryRow, tt.mode, NamingAsIs))
			if tt.accepts {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrInvalidRowCount)

			var rowCountErr *InvalidRowCountError
			require.ErrorAs(t, err, &rowCountErr)
			assert.Equal(t, tt.mode, rowCountErr.Mode)
			assert.Equal(t, tt.count, rowCountErr.Count)
		})
	}
}

func TestConvert_CamelCaseExample(t *testing.T) {
	rows := []Row{{
		{Label: "user_id", Value: 42, Kind: KindInteger},
		{Label: "is_new", Value: true, Kind: KindBoolean},
	}}

	docs, err := Convert(rows, testSpec(DescribeAllRows, ExactlyOne, NamingCamelCase))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, testSchema, docs[0].Schema)
	assert.JSONEq(t, `{"userId":42,"isNew":true}`, string(docs[0].Data))
}

func TestConvert_AllRowsSingularWrapsObject(t *testing.T) {
	docs, err := Convert([]Row{simpleRow(1)}, testSpec(DescribeAllRows, ExactlyOne, NamingAsIs))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// A single object, not a one-element array.
	_, isObject := dataOf(t, docs[0]).(map[string]any)
	assert.True(t, isObject)
}

func TestConvert_AtMostOneEmptyYieldsNoContext(t *testing.T) {
	docs, err := Convert(nil, testSpec(DescribeAllRows, AtMostOne, NamingAsIs))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestConvert_AllRowsManyWrapsArray(t *testing.T) {
	docs, err := Convert([]Row{simpleRow(1), simpleRow(2)}, testSpec(DescribeAllRows, AtLeastOne, NamingAsIs))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	arr, isArray := dataOf(t, docs[0]).([]any)
	require.True(t, isArray)
	assert.Len(t, arr, 2)
}

func TestConvert_AtLeastZeroEmptyWrapsEmptyArray(t *testing.T) {
	// One document wrapping an empty array, never zero documents.
	docs, err := Convert(nil, testSpec(DescribeAllRows, AtLeastZero, NamingAsIs))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `[]`, string(docs[0].Data))
}

func TestConvert_EveryRowOneDocumentPerRow(t *testing.T) {
	rows := []Row{simpleRow(0), simpleRow(1), simpleRow(2)}

	docs, err := Convert(rows, testSpec(DescribeEveryRow, AtLeastOne, NamingCamelCase))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	for i, doc := range docs {
		assert.Equal(t, testSchema, doc.Schema)
		assert.JSONEq(t, fmt.Sprintf(`{"userId":%d,"isNew":true}`, i), string(doc.Data))
	}
}

func TestConvert_ShapingFailureIsFatal(t *testing.T) {
	rows := []Row{
		simpleRow(0),
		{{Label: "user_id", Value: "not an int", Kind: KindInteger}},
	}

	_, err := Convert(rows, testSpec(DescribeEveryRow, AtLeastZero, NamingAsIs))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRowCount)
	assert.Contains(t, err.Error(), "user_id")
}

func TestColumnValue(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		col  Column
		want any
	}{
		{"null", Column{Label: "x", Value: nil, Kind: KindInteger}, nil},
		{"integer", Column{Label: "x", Value: int32(7), Kind: KindInteger}, int64(7)},
		{"float", Column{Label: "x", Value: 2.5, Kind: KindFloat}, 2.5},
		{"nan becomes null", Column{Label: "x", Value: math.NaN(), Kind: KindFloat}, nil},
		{"boolean", Column{Label: "x", Value: false, Kind: KindBoolean}, false},
		{"text", Column{Label: "x", Value: "hello", Kind: KindText}, "hello"},
		{"bytes as text", Column{Label: "x", Value: []byte("raw"), Kind: KindText}, "raw"},
		{"temporal", Column{Label: "x", Value: when, Kind: KindTemporal}, "2025-06-01T12:30:00Z"},
		{"opaque embedded json", Column{Label: "x", Value: `{"a":1}`, Kind: KindOpaque}, map[string]any{"a": float64(1)}},
		{"opaque plain text", Column{Label: "x", Value: "not json", Kind: KindOpaque}, "not json"},
		{"opaque composite passthrough", Column{Label: "x", Value: []any{"a", "b"}, Kind: KindOpaque}, []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := columnValue(tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnValue_KindMismatch(t *testing.T) {
	_, err := columnValue(Column{Label: "x", Value: "text", Kind: KindBoolean})
	assert.Error(t, err)

	_, err = columnValue(Column{Label: "x", Value: 3, Kind: KindTemporal})
	assert.Error(t, err)
}

type stubSource struct {
	rows []Row
	idx  int
	err  error

	closed bool
}

func (s *stubSource) Next() (Row, bool, error) {
	if s.idx >= len(s.rows) {
		return nil, false, s.err
	}
	row := s.rows[s.idx]
	s.idx++
	return row, true, nil
}

func (s *stubSource) Close() error {
	s.closed = true
	return nil
}

func TestConvertSource(t *testing.T) {
	src := &stubSource{rows: []Row{simpleRow(0), simpleRow(1)}}

	docs, err := ConvertSource(src, testSpec(DescribeEveryRow, AtLeastOne, NamingAsIs))
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.True(t, src.closed)
}

func TestConvertSource_ReadFailureAborts(t *testing.T) {
	readErr := errors.New("connection reset")
	src := &stubSource{rows: []Row{simpleRow(0)}, err: readErr}

	_, err := ConvertSource(src, testSpec(DescribeEveryRow, AtLeastZero, NamingAsIs))
	assert.ErrorIs(t, err, readErr)
	assert.True(t, src.closed)
}
