package extract

import (
	"context"
	"encoding/json"
	"sync"

	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
	validationpkg "github.com/streamforge/enrichkit/internal/core/validation"
)

// accepted is a validated document plus the schema it originally declared.
// The original version survives only in the superseded-version notice.
type accepted struct {
	validationpkg.Validated
	original selfdescpkg.SchemaKey
}

// slotResult accumulates one attachment slot's outcomes in source order.
type slotResult struct {
	accepted   []accepted
	violations []error
}

// outcome is one element's result before partitioning. Exactly one field is
// set.
type outcome struct {
	acc *accepted
	err error
}

// extractContexts extracts the contexts slot: envelope checks first, then
// each element of the envelope's data array independently. One bad element
// does not invalidate the others.
func (e *Extractor) extractContexts(ctx context.Context, raw string) slotResult {
	if raw == "" {
		return slotResult{}
	}

	envelope, err := e.parseEnvelope(ctx, FieldContexts, raw, e.contextsCriterion)
	if err != nil {
		return slotResult{violations: []error{err}}
	}

	var elements []json.RawMessage
	if err := jsoncodec.Unmarshal(envelope.Data, &elements); err != nil {
		return slotResult{violations: []error{
			&validationpkg.NotSelfDescribingError{Raw: envelope.Data, Cause: err},
		}}
	}

	outcomes := make([]outcome, len(elements))
	var wg sync.WaitGroup
	for i, element := range elements {
		wg.Add(1)
		go func(i int, element json.RawMessage) {
			defer wg.Done()
			outcomes[i] = e.validateElement(ctx, element)
		}(i, element)
	}
	wg.Wait()

	return partitionOutcomes(outcomes)
}

// extractUnstructEvent extracts the unstruct-event slot: same envelope checks
// as contexts, but the envelope's data is a single self-describing document.
func (e *Extractor) extractUnstructEvent(ctx context.Context, raw string) slotResult {
	if raw == "" {
		return slotResult{}
	}

	envelope, err := e.parseEnvelope(ctx, FieldUnstructEvent, raw, e.unstructCriterion)
	if err != nil {
		return slotResult{violations: []error{err}}
	}

	out := e.validateElement(ctx, envelope.Data)
	return partitionOutcomes([]outcome{out})
}

// parseEnvelope runs the outer-document checks in defect-precedence order:
// JSON parse, self-describing parse, criterion match, registry check. Only
// the first defect is reported.
func (e *Extractor) parseEnvelope(ctx context.Context, field, raw string, criterion selfdescpkg.Criterion) (selfdescpkg.Document, error) {
	var probe any
	if err := jsoncodec.Unmarshal([]byte(raw), &probe); err != nil {
		return selfdescpkg.Document{}, &validationpkg.NotJSONError{Field: field, Raw: raw, Cause: err}
	}

	envelope, err := selfdescpkg.ParseDocument([]byte(raw))
	if err != nil {
		return selfdescpkg.Document{}, &validationpkg.NotSelfDescribingError{Raw: json.RawMessage(raw), Cause: err}
	}

	if !criterion.Matches(envelope.Schema) {
		return selfdescpkg.Document{}, &validationpkg.CriterionMismatchError{
			Actual:   envelope.Schema,
			Expected: criterion,
		}
	}

	if _, err := e.registry.Check(ctx, envelope); err != nil {
		return selfdescpkg.Document{}, &validationpkg.RegistryFailure{Schema: envelope.Schema, Cause: err}
	}

	return envelope, nil
}

// validateElement parses and registry-checks one inner document.
func (e *Extractor) validateElement(ctx context.Context, raw json.RawMessage) outcome {
	doc, err := selfdescpkg.ParseDocument(raw)
	if err != nil {
		return outcome{err: &validationpkg.NotSelfDescribingError{Raw: raw, Cause: err}}
	}

	validated, err := validationpkg.ValidateDocument(ctx, e.registry, doc)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{acc: &accepted{Validated: validated, original: doc.Schema}}
}

// partitionOutcomes folds a heterogeneous outcome sequence into separate
// success and violation lists, both preserving original index order.
func partitionOutcomes(outcomes []outcome) slotResult {
	var result slotResult
	for _, out := range outcomes {
		switch {
		case out.err != nil:
			result.violations = append(result.violations, out.err)
		case out.acc != nil:
			result.accepted = append(result.accepted, *out.acc)
		}
	}
	return result
}
