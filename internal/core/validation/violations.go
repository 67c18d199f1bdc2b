// Package validation defines the schema-violation taxonomy and the registry
// check that every self-describing document must pass before it is allowed
// into the enrichment pipeline.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// Violation sentinels. Each structured violation type below matches its
// sentinel through errors.Is, so callers can branch on the family without
// unpacking the concrete type.
var (
	// ErrNotJSON signals a raw attachment that is not parseable JSON.
	ErrNotJSON = errors.New("enrichkit: payload is not valid JSON")

	// ErrNotSelfDescribing signals JSON that is not a self-describing
	// document (schema or data missing or malformed).
	ErrNotSelfDescribing = errors.New("enrichkit: payload is not a self-describing document")

	// ErrCriterionMismatch signals a document whose schema falls outside the
	// expected schema family.
	ErrCriterionMismatch = errors.New("enrichkit: schema does not match expected criterion")

	// ErrRegistry signals a registry-side structural validation failure.
	ErrRegistry = errors.New("enrichkit: schema registry rejected document")
)

// Kind is a closed enumeration of violation categories, in defect-precedence
// order: a document with several defects reports only the first one here.
type Kind int

const (
	KindNotJSON Kind = iota
	KindNotSelfDescribing
	KindCriterionMismatch
	KindRegistry
)

func (k Kind) String() string {
	switch k {
	case KindNotJSON:
		return "not_json"
	case KindNotSelfDescribing:
		return "not_self_describing"
	case KindCriterionMismatch:
		return "criterion_mismatch"
	case KindRegistry:
		return "registry_error"
	default:
		return "unknown"
	}
}

// NotJSONError reports a raw field whose content failed JSON parsing.
type NotJSONError struct {
	Field string
	Raw   string
	Cause error
}

func (e *NotJSONError) Error() string {
	return fmt.Sprintf("enrichkit: field %q is not valid JSON: %v", e.Field, e.Cause)
}

func (e *NotJSONError) Unwrap() error { return e.Cause }

func (e *NotJSONError) Is(target error) bool {
	if target == ErrNotJSON {
		return true
	}
	_, ok := target.(*NotJSONError)
	return ok
}

// NotSelfDescribingError reports JSON that parsed but is not a well-formed
// self-describing document.
type NotSelfDescribingError struct {
	Raw   json.RawMessage
	Cause error
}

func (e *NotSelfDescribingError) Error() string {
	return fmt.Sprintf("enrichkit: not a self-describing document: %v", e.Cause)
}

func (e *NotSelfDescribingError) Unwrap() error { return e.Cause }

func (e *NotSelfDescribingError) Is(target error) bool {
	if target == ErrNotSelfDescribing {
		return true
	}
	_, ok := target.(*NotSelfDescribingError)
	return ok
}

// CriterionMismatchError reports a document whose declared schema does not
// belong to the expected schema family.
type CriterionMismatchError struct {
	Actual   selfdescpkg.SchemaKey
	Expected selfdescpkg.Criterion
}

func (e *CriterionMismatchError) Error() string {
	return fmt.Sprintf("enrichkit: schema %s does not match criterion %s", e.Actual, e.Expected)
}

func (e *CriterionMismatchError) Is(target error) bool {
	if target == ErrCriterionMismatch {
		return true
	}
	_, ok := target.(*CriterionMismatchError)
	return ok
}

// RegistryFailure reports a document the registry refused, or a registry
// lookup that failed outright.
type RegistryFailure struct {
	Schema selfdescpkg.SchemaKey
	Cause  error
}

func (e *RegistryFailure) Error() string {
	return fmt.Sprintf("enrichkit: registry check failed for %s: %v", e.Schema, e.Cause)
}

func (e *RegistryFailure) Unwrap() error { return e.Cause }

func (e *RegistryFailure) Is(target error) bool {
	if target == ErrRegistry {
		return true
	}
	_, ok := target.(*RegistryFailure)
	return ok
}

// Classify maps an error onto its violation kind. The second return is false
// when the error is not a known violation.
func Classify(err error) (Kind, bool) {
	switch {
	case errors.Is(err, ErrNotJSON):
		return KindNotJSON, true
	case errors.Is(err, ErrNotSelfDescribing):
		return KindNotSelfDescribing, true
	case errors.Is(err, ErrCriterionMismatch):
		return KindCriterionMismatch, true
	case errors.Is(err, ErrRegistry):
		return KindRegistry, true
	default:
		return 0, false
	}
}
