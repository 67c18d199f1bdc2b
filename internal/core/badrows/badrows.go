// Package badrows builds the self-describing diagnostic records that report
// validation failures and schema-superseding notices. Downstream consumers
// attach them to the event as derived contexts, so rejections never need a
// separate reporting channel.
package badrows

import (
	"time"

	idspkg "github.com/streamforge/enrichkit/internal/core/ids"
	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
	validationpkg "github.com/streamforge/enrichkit/internal/core/validation"
)

// Schemas of the diagnostic records themselves.
var (
	ValidationErrorSchema = selfdescpkg.MustParseSchemaKey(
		"iglu:com.streamforge.pipeline/validation_error/jsonschema/1-0-0")

	SchemaSupersededSchema = selfdescpkg.MustParseSchemaKey(
		"iglu:com.streamforge.pipeline/schema_superseded/jsonschema/1-0-0")
)

type violationPayload struct {
	ReportID  string `json:"reportId"`
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind,omitempty"`
	Field     string `json:"field,omitempty"`
	Schema    string `json:"schema,omitempty"`
	Message   string `json:"message"`
}

type supersededPayload struct {
	ReportID        string `json:"reportId"`
	Timestamp       string `json:"timestamp"`
	OriginalSchema  string `json:"originalSchema"`
	ReplacedVersion string `json:"replacedVersion"`
}

// ViolationRecord wraps a schema violation into a self-describing diagnostic
// document. Unknown errors are reported with an empty kind rather than
// dropped; a rejection must always leave a trace.
func ViolationRecord(violation error) selfdescpkg.Document {
	payload := violationPayload{
		ReportID:  idspkg.NewID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Message:   violation.Error(),
	}

	if kind, ok := validationpkg.Classify(violation); ok {
		payload.Kind = kind.String()
	}

	switch v := violation.(type) {
	case *validationpkg.NotJSONError:
		payload.Field = v.Field
	case *validationpkg.CriterionMismatchError:
		payload.Schema = v.Actual.String()
	case *validationpkg.RegistryFailure:
		payload.Schema = v.Schema.String()
	}

	return mustDocument(ValidationErrorSchema, payload)
}

// SupersededRecord reports that a document declared originalSchema but was
// accepted under the newer compatible version the registry holds. The record
// is the only place the original version survives.
func SupersededRecord(originalSchema selfdescpkg.SchemaKey, replacement selfdescpkg.SchemaVer) selfdescpkg.Document {
	payload := supersededPayload{
		ReportID:        idspkg.NewID(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339Nano),
		OriginalSchema:  originalSchema.String(),
		ReplacedVersion: replacement.String(),
	}
	return mustDocument(SchemaSupersededSchema, payload)
}

func mustDocument(schema selfdescpkg.SchemaKey, payload any) selfdescpkg.Document {
	data, err := jsoncodec.Marshal(payload)
	if err != nil {
		// The payload structs above only hold strings.
		panic(err)
	}
	return selfdescpkg.Document{Schema: schema, Data: data}
}
