package sqloutput

import (
	"errors"

	loggingpkg "github.com/streamforge/enrichkit/internal/core/logging"
	metricspkg "github.com/streamforge/enrichkit/internal/core/metrics"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// Converter binds a conversion spec to its supporting infrastructure. The
// underlying Convert stays a pure function; the Converter only adds
// observability around it. Safe for concurrent use across events.
type Converter struct {
	spec    Spec
	logger  loggingpkg.ServiceLogger
	metrics *metricspkg.ValidationMetrics
}

// ConverterOption customises a Converter.
type ConverterOption func(*Converter)

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger loggingpkg.ServiceLogger) ConverterOption {
	return func(c *Converter) { c.logger = logger }
}

// WithMetrics attaches conversion metrics.
func WithMetrics(m *metricspkg.ValidationMetrics) ConverterOption {
	return func(c *Converter) { c.metrics = m }
}

// NewConverter builds a Converter for one configured output.
func NewConverter(spec Spec, opts ...ConverterOption) *Converter {
	c := &Converter{spec: spec, logger: loggingpkg.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Spec returns the immutable conversion spec.
func (c *Converter) Spec() Spec { return c.spec }

// Convert converts one query's rows, recording the outcome.
func (c *Converter) Convert(rows []Row) ([]selfdescpkg.Document, error) {
	docs, err := Convert(rows, c.spec)

	switch {
	case err == nil:
		c.observe("ok")
	case errors.Is(err, ErrInvalidRowCount):
		c.observe("invalid_row_count")
		c.logger.Debug("row count outside expected range", loggingpkg.LogFields{
			"mode": c.spec.ExpectedRows.String(),
			"rows": len(rows),
		})
	default:
		c.observe("shaping_error")
		c.logger.Error("row shaping failed", err, loggingpkg.LogFields{
			"schema": c.spec.Schema.String(),
		})
	}
	return docs, err
}

// ConvertSource drains the source and converts the collected rows.
func (c *Converter) ConvertSource(src RowSource) ([]selfdescpkg.Document, error) {
	rows, err := Collect(src)
	if err != nil {
		c.observe("source_error")
		c.logger.Error("row source read failed", err, loggingpkg.LogFields{
			"schema": c.spec.Schema.String(),
		})
		return nil, err
	}
	return c.Convert(rows)
}

func (c *Converter) observe(outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveConversion(c.spec.ExpectedRows.String(), outcome)
}
