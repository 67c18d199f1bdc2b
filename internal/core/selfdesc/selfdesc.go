// Package selfdesc implements the self-describing JSON vocabulary used
// throughout the enrichment pipeline: schema keys, partial-match criteria,
// and documents pairing a schema key with an arbitrary JSON payload.
package selfdesc

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
)

// URIPrefix is the scheme every schema URI must carry.
const URIPrefix = "iglu:"

var (
	// ErrBadSchemaURI indicates a schema URI that does not follow the
	// vendor/name/format/model-revision-addition layout.
	ErrBadSchemaURI = errors.New("enrichkit: malformed schema URI")

	// ErrMissingSchemaField indicates a JSON object without a "schema" field.
	ErrMissingSchemaField = errors.New("enrichkit: missing schema field")

	// ErrMissingDataField indicates a JSON object without a "data" field.
	ErrMissingDataField = errors.New("enrichkit: missing data field")
)

var schemaURIPattern = regexp.MustCompile(
	`^iglu:([a-zA-Z0-9\-_.]+)/([a-zA-Z0-9\-_]+)/([a-zA-Z0-9\-_]+)/([1-9][0-9]*)-(0|[1-9][0-9]*)-(0|[1-9][0-9]*)$`)

// SchemaVer is a three-part schema version: model-revision-addition.
// Model changes break compatibility, revisions may, additions never do.
type SchemaVer struct {
	Model    int
	Revision int
	Addition int
}

func (v SchemaVer) String() string {
	return fmt.Sprintf("%d-%d-%d", v.Model, v.Revision, v.Addition)
}

// Before reports whether v precedes other in version order.
func (v SchemaVer) Before(other SchemaVer) bool {
	if v.Model != other.Model {
		return v.Model < other.Model
	}
	if v.Revision != other.Revision {
		return v.Revision < other.Revision
	}
	return v.Addition < other.Addition
}

// SchemaKey is a fully-qualified schema identifier parsed from a URI of the
// form "iglu:com.acme/click/jsonschema/1-0-2".
type SchemaKey struct {
	Vendor  string
	Name    string
	Format  string
	Version SchemaVer
}

// ParseSchemaKey parses a schema URI. The URI must be complete; partial
// references are expressed as a Criterion instead.
func ParseSchemaKey(uri string) (SchemaKey, error) {
	m := schemaURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return SchemaKey{}, fmt.Errorf("%w: %q", ErrBadSchemaURI, uri)
	}

	model, _ := strconv.Atoi(m[4])
	revision, _ := strconv.Atoi(m[5])
	addition, _ := strconv.Atoi(m[6])

	return SchemaKey{
		Vendor: m[1],
		Name:   m[2],
		Format: m[3],
		Version: SchemaVer{
			Model:    model,
			Revision: revision,
			Addition: addition,
		},
	}, nil
}

// MustParseSchemaKey parses a schema URI and panics on failure. Intended for
// package-level schema constants only.
func MustParseSchemaKey(uri string) SchemaKey {
	key, err := ParseSchemaKey(uri)
	if err != nil {
		panic(err)
	}
	return key
}

func (k SchemaKey) String() string {
	return fmt.Sprintf("%s%s/%s/%s/%s", URIPrefix, k.Vendor, k.Name, k.Format, k.Version)
}

// WithVersion returns a copy of the key pointing at a different version.
func (k SchemaKey) WithVersion(v SchemaVer) SchemaKey {
	k.Version = v
	return k
}

// Criterion is a partial schema pattern. Vendor, name, format, and model must
// match exactly; revision and addition, when set, are lower bounds, matching
// the registry's "at least this version" resolution semantics.
type Criterion struct {
	Vendor string
	Name   string
	Format string
	Model  int

	// Revision and Addition are optional; nil matches any value.
	Revision *int
	Addition *int
}

// NewCriterion builds a criterion pinning vendor, name, format, and model.
func NewCriterion(vendor, name, format string, model int) Criterion {
	return Criterion{Vendor: vendor, Name: name, Format: format, Model: model}
}

// Matches reports whether the key belongs to the schema family described by
// the criterion.
func (c Criterion) Matches(key SchemaKey) bool {
	if key.Vendor != c.Vendor || key.Name != c.Name || key.Format != c.Format {
		return false
	}
	if key.Version.Model != c.Model {
		return false
	}
	if c.Revision != nil && key.Version.Revision < *c.Revision {
		return false
	}
	if c.Addition != nil && key.Version.Addition < *c.Addition {
		return false
	}
	return true
}

func (c Criterion) String() string {
	revision, addition := "*", "*"
	if c.Revision != nil {
		revision = strconv.Itoa(*c.Revision)
	}
	if c.Addition != nil {
		addition = strconv.Itoa(*c.Addition)
	}
	return fmt.Sprintf("%s%s/%s/%s/%d-%s-%s", URIPrefix, c.Vendor, c.Name, c.Format, c.Model, revision, addition)
}

// Document is an immutable self-describing JSON value: a schema key plus the
// raw payload it describes.
type Document struct {
	Schema SchemaKey
	Data   json.RawMessage
}

type documentWire struct {
	Schema *string         `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// ParseDocument decodes raw JSON into a Document. The input must be a JSON
// object carrying both a "schema" string and a "data" field.
func ParseDocument(raw []byte) (Document, error) {
	var wire documentWire
	if err := jsoncodec.Unmarshal(raw, &wire); err != nil {
		return Document{}, err
	}
	if wire.Schema == nil {
		return Document{}, ErrMissingSchemaField
	}
	if wire.Data == nil {
		return Document{}, ErrMissingDataField
	}

	key, err := ParseSchemaKey(*wire.Schema)
	if err != nil {
		return Document{}, err
	}

	return Document{Schema: key, Data: wire.Data}, nil
}

// MarshalJSON renders the document in {schema, data} envelope form.
func (d Document) MarshalJSON() ([]byte, error) {
	uri := d.Schema.String()
	return jsoncodec.Marshal(documentWire{Schema: &uri, Data: d.Data})
}

// UnmarshalJSON implements json.Unmarshaler via ParseDocument.
func (d *Document) UnmarshalJSON(raw []byte) error {
	parsed, err := ParseDocument(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
