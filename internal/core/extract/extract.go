// Package extract implements the schema-validation orchestrator: it pulls the
// self-describing attachments off an incoming event, checks them against the
// schema registry, and reports every rejection as a structured diagnostic
// record instead of failing the event outright.
package extract

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	badrowspkg "github.com/streamforge/enrichkit/internal/core/badrows"
	errspkg "github.com/streamforge/enrichkit/internal/core/errors"
	loggingpkg "github.com/streamforge/enrichkit/internal/core/logging"
	metricspkg "github.com/streamforge/enrichkit/internal/core/metrics"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
	validationpkg "github.com/streamforge/enrichkit/internal/core/validation"
)

// Raw attachment field names, used when reporting parse failures.
const (
	FieldContexts      = "contexts"
	FieldUnstructEvent = "unstruct_event"
)

// Default envelope criteria: attachments must arrive wrapped in the
// pipeline's own contexts / unstruct_event envelopes, major version 1.
var (
	DefaultContextsCriterion = selfdescpkg.NewCriterion(
		"com.streamforge.pipeline", "contexts", "jsonschema", 1)

	DefaultUnstructEventCriterion = selfdescpkg.NewCriterion(
		"com.streamforge.pipeline", "unstruct_event", "jsonschema", 1)
)

// Input holds the raw attachment slots of one incoming event. Empty slots are
// legitimate; an event may carry neither attachment.
type Input struct {
	Contexts      string
	UnstructEvent string
}

// Result is the terminal artifact of extraction for one event. ValidationInfo
// and Failures are themselves self-describing records (superseded-version
// notices and violation reports), so the enrichment manager can attach them
// as derived contexts directly.
type Result struct {
	Contexts       []selfdescpkg.Document
	UnstructEvent  *selfdescpkg.Document
	ValidationInfo []selfdescpkg.Document
	Failures       []selfdescpkg.Document
}

// Extractor orchestrates attachment extraction and registry validation. Safe
// for concurrent use; it holds no per-event state.
type Extractor struct {
	registry          validationpkg.RegistryClient
	contextsCriterion selfdescpkg.Criterion
	unstructCriterion selfdescpkg.Criterion
	logger            loggingpkg.ServiceLogger
	metrics           *metricspkg.ValidationMetrics
	tracer            trace.Tracer
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger loggingpkg.ServiceLogger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// WithMetrics attaches validation metrics.
func WithMetrics(m *metricspkg.ValidationMetrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// WithContextsCriterion overrides the expected contexts-envelope family.
func WithContextsCriterion(c selfdescpkg.Criterion) Option {
	return func(e *Extractor) { e.contextsCriterion = c }
}

// WithUnstructEventCriterion overrides the expected unstruct-event envelope
// family.
func WithUnstructEventCriterion(c selfdescpkg.Criterion) Option {
	return func(e *Extractor) { e.unstructCriterion = c }
}

// NewExtractor builds an Extractor around the given registry client.
func NewExtractor(registry validationpkg.RegistryClient, opts ...Option) (*Extractor, error) {
	if registry == nil {
		return nil, errspkg.ErrRegistryRequired
	}

	e := &Extractor{
		registry:          registry,
		contextsCriterion: DefaultContextsCriterion,
		unstructCriterion: DefaultUnstructEventCriterion,
		logger:            loggingpkg.Nop(),
		tracer:            otel.Tracer("enrichkit/extract"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ExtractAndValidate runs context extraction and unstruct-event extraction
// and merges their outcomes. It never fails as a whole: absent attachments
// yield an empty result, invalid attachments yield failure records. The two
// slots are independent, so their registry checks run concurrently; merged
// lists keep source order (contexts first, then the unstruct event).
func (e *Extractor) ExtractAndValidate(ctx context.Context, input Input) Result {
	ctx, span := e.tracer.Start(ctx, "ExtractAndValidate")
	defer span.End()

	var (
		wg       sync.WaitGroup
		contexts slotResult
		unstruct slotResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		contexts = e.extractContexts(ctx, input.Contexts)
	}()
	go func() {
		defer wg.Done()
		unstruct = e.extractUnstructEvent(ctx, input.UnstructEvent)
	}()
	wg.Wait()

	result := Result{}
	for _, acc := range contexts.accepted {
		result.Contexts = append(result.Contexts, acc.Document)
	}
	if len(unstruct.accepted) > 0 {
		doc := unstruct.accepted[0].Document
		result.UnstructEvent = &doc
	}

	for _, acc := range append(contexts.accepted, unstruct.accepted...) {
		if acc.SupersededBy != nil {
			result.ValidationInfo = append(result.ValidationInfo,
				badrowspkg.SupersededRecord(acc.original, *acc.SupersededBy))
		}
	}
	for _, violation := range append(contexts.violations, unstruct.violations...) {
		result.Failures = append(result.Failures, badrowspkg.ViolationRecord(violation))
		e.observeViolation(violation)
	}
	e.observeSlot(FieldContexts, input.Contexts, contexts)
	e.observeSlot(FieldUnstructEvent, input.UnstructEvent, unstruct)

	span.SetAttributes(
		attribute.Int("extract.contexts", len(result.Contexts)),
		attribute.Int("extract.failures", len(result.Failures)),
	)
	if len(result.Failures) > 0 {
		e.logger.Debug("attachment validation rejected documents", loggingpkg.LogFields{
			"failures": len(result.Failures),
			"accepted": len(result.Contexts),
		})
	}
	return result
}

// ValidateBatch checks enrichment-produced contexts against the registry.
// Unlike extraction this is all-or-nothing: any invalid document rejects the
// whole batch with the complete, order-preserving violation list, because
// these documents are internally generated and a violation indicates a
// pipeline bug rather than noisy user data.
func (e *Extractor) ValidateBatch(ctx context.Context, docs []selfdescpkg.Document) error {
	ctx, span := e.tracer.Start(ctx, "ValidateBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(docs))))
	defer span.End()

	_, err := validationpkg.ValidateBatch(ctx, e.registry, docs)
	if err != nil {
		e.logger.Error("enrichment context batch rejected", err, loggingpkg.LogFields{
			"documents": len(docs),
		})
	}
	return err
}

func (e *Extractor) observeSlot(slot, raw string, res slotResult) {
	if e.metrics == nil {
		return
	}
	switch {
	case raw == "":
		e.metrics.ObserveAttachment(slot, "absent")
	case len(res.violations) > 0:
		e.metrics.ObserveAttachment(slot, "rejected")
	default:
		e.metrics.ObserveAttachment(slot, "accepted")
	}
}

func (e *Extractor) observeViolation(violation error) {
	if e.metrics == nil {
		return
	}
	if kind, ok := validationpkg.Classify(violation); ok {
		e.metrics.ObserveViolation(kind.String())
	}
}
