package validation

import (
	"context"
	"fmt"

	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// RegistryClient is the consumed schema-registry capability. Implementations
// handle schema resolution, caching, and network retries; this module only
// depends on the check itself.
type RegistryClient interface {
	// Check validates the document's data against its declared schema. On
	// success it may return a newer compatible version the registry holds
	// for the same schema; nil means the declared version is current.
	Check(ctx context.Context, doc selfdescpkg.Document) (*selfdescpkg.SchemaVer, error)
}

// Validated is an accepted document. When the registry reported a newer
// compatible revision, the document's schema has already been rewritten to it
// and SupersededBy records the replacement; the original version is only kept
// by the caller's diagnostic record.
type Validated struct {
	Document     selfdescpkg.Document
	SupersededBy *selfdescpkg.SchemaVer
}

// ValidateDocument submits a single document to the registry. A registry
// refusal or lookup failure comes back as a *RegistryFailure. On supersede
// the returned document points at the newer version.
func ValidateDocument(ctx context.Context, registry RegistryClient, doc selfdescpkg.Document) (Validated, error) {
	superseding, err := registry.Check(ctx, doc)
	if err != nil {
		return Validated{}, &RegistryFailure{Schema: doc.Schema, Cause: err}
	}

	validated := Validated{Document: doc}
	if superseding != nil && *superseding != doc.Schema.Version {
		validated.Document.Schema = doc.Schema.WithVersion(*superseding)
		validated.SupersededBy = superseding
	}
	return validated, nil
}

// BatchViolation pairs a violation with the schema of the document that
// caused it, in batch input order.
type BatchViolation struct {
	Schema selfdescpkg.SchemaKey
	Err    error
}

// BatchError rejects a whole batch of internally-produced documents. Any
// single violation fails the batch, because these documents come from
// enrichments rather than user input and a violation indicates a pipeline
// bug.
type BatchError struct {
	Violations []BatchViolation
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("enrichkit: %d of batch documents failed validation", len(e.Violations))
}

// ValidateBatch checks every document and fails the whole batch if any of
// them is invalid. The violation list preserves input order and is complete:
// validation does not stop at the first bad document.
func ValidateBatch(ctx context.Context, registry RegistryClient, docs []selfdescpkg.Document) ([]Validated, error) {
	validated := make([]Validated, 0, len(docs))
	var violations []BatchViolation

	for _, doc := range docs {
		v, err := ValidateDocument(ctx, registry, doc)
		if err != nil {
			violations = append(violations, BatchViolation{Schema: doc.Schema, Err: err})
			continue
		}
		validated = append(validated, v)
	}

	if len(violations) > 0 {
		return nil, &BatchError{Violations: violations}
	}
	return validated, nil
}
