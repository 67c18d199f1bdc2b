package sqloutput

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricspkg "github.com/streamforge/enrichkit/internal/core/metrics"
)

func TestConverter_Convert(t *testing.T) {
	c := NewConverter(testSpec(DescribeEveryRow, AtLeastOne, NamingCamelCase))

	docs, err := c.Convert([]Row{simpleRow(1)})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestConverter_RecordsOutcomes(t *testing.T) {
	m := metricspkg.NewValidationMetrics(prometheus.NewRegistry())
	require.NoError(t, m.Register())
	c := NewConverter(testSpec(DescribeEveryRow, ExactlyOne, NamingAsIs), WithMetrics(m))

	_, err := c.Convert(nil)
	assert.ErrorIs(t, err, ErrInvalidRowCount)

	_, err = c.Convert([]Row{simpleRow(1)})
	assert.NoError(t, err)
}

func TestConverter_ConvertSource(t *testing.T) {
	c := NewConverter(testSpec(DescribeAllRows, AtLeastZero, NamingAsIs))
	src := &stubSource{rows: []Row{simpleRow(1), simpleRow(2)}}

	docs, err := c.ConvertSource(src)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, src.closed)
}
