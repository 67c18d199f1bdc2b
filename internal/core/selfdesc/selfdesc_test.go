package selfdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemaKey(t *testing.T) {
	key, err := ParseSchemaKey("iglu:com.acme/checkout_step/jsonschema/2-1-3")
	require.NoError(t, err)

	assert.Equal(t, "com.acme", key.Vendor)
	assert.Equal(t, "checkout_step", key.Name)
	assert.Equal(t, "jsonschema", key.Format)
	assert.Equal(t, SchemaVer{Model: 2, Revision: 1, Addition: 3}, key.Version)
	assert.Equal(t, "iglu:com.acme/checkout_step/jsonschema/2-1-3", key.String())
}

func TestParseSchemaKey_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"com.acme/checkout_step/jsonschema/2-1-3",
		"iglu:com.acme/checkout_step/jsonschema",
		"iglu:com.acme/checkout_step/jsonschema/0-0-0",
		"iglu:com.acme/checkout_step/jsonschema/2-1",
		"iglu:com.acme/checkout step/jsonschema/1-0-0",
		"iglu:/name/jsonschema/1-0-0",
	}

	for _, uri := range malformed {
		_, err := ParseSchemaKey(uri)
		assert.ErrorIs(t, err, ErrBadSchemaURI, "uri %q", uri)
	}
}

func TestSchemaVer_Before(t *testing.T) {
	assert.True(t, SchemaVer{1, 0, 0}.Before(SchemaVer{2, 0, 0}))
	assert.True(t, SchemaVer{1, 0, 0}.Before(SchemaVer{1, 1, 0}))
	assert.True(t, SchemaVer{1, 0, 0}.Before(SchemaVer{1, 0, 1}))
	assert.False(t, SchemaVer{1, 0, 1}.Before(SchemaVer{1, 0, 0}))
	assert.False(t, SchemaVer{1, 0, 0}.Before(SchemaVer{1, 0, 0}))
}

func TestCriterion_Matches(t *testing.T) {
	key := MustParseSchemaKey("iglu:com.acme/checkout_step/jsonschema/1-2-1")

	tests := []struct {
		name      string
		criterion Criterion
		matches   bool
	}{
		{
			name:      "family match",
			criterion: NewCriterion("com.acme", "checkout_step", "jsonschema", 1),
			matches:   true,
		},
		{
			name:      "wrong vendor",
			criterion: NewCriterion("com.other", "checkout_step", "jsonschema", 1),
			matches:   false,
		},
		{
			name:      "wrong name",
			criterion: NewCriterion("com.acme", "checkout", "jsonschema", 1),
			matches:   false,
		},
		{
			name:      "wrong model",
			criterion: NewCriterion("com.acme", "checkout_step", "jsonschema", 2),
			matches:   false,
		},
		{
			name: "revision at least",
			criterion: func() Criterion {
				c := NewCriterion("com.acme", "checkout_step", "jsonschema", 1)
				rev := 1
				c.Revision = &rev
				return c
			}(),
			matches: true,
		},
		{
			name: "revision too new",
			criterion: func() Criterion {
				c := NewCriterion("com.acme", "checkout_step", "jsonschema", 1)
				rev := 3
				c.Revision = &rev
				return c
			}(),
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.criterion.Matches(key))
		})
	}
}

func TestCriterion_String(t *testing.T) {
	c := NewCriterion("com.acme", "checkout_step", "jsonschema", 1)
	assert.Equal(t, "iglu:com.acme/checkout_step/jsonschema/1-*-*", c.String())

	rev := 2
	c.Revision = &rev
	assert.Equal(t, "iglu:com.acme/checkout_step/jsonschema/1-2-*", c.String())
}

func TestParseDocument(t *testing.T) {
	raw := []byte(`{"schema":"iglu:com.acme/click/jsonschema/1-0-0","data":{"x":1}}`)

	doc, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "iglu:com.acme/click/jsonschema/1-0-0", doc.Schema.String())
	assert.JSONEq(t, `{"x":1}`, string(doc.Data))
}

func TestParseDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{
			name: "missing schema",
			raw:  `{"data":{"x":1}}`,
			want: ErrMissingSchemaField,
		},
		{
			name: "missing data",
			raw:  `{"schema":"iglu:com.acme/click/jsonschema/1-0-0"}`,
			want: ErrMissingDataField,
		},
		{
			name: "bad schema uri",
			raw:  `{"schema":"not-a-uri","data":{}}`,
			want: ErrBadSchemaURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDocument_MarshalRoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"schema":"iglu:com.acme/click/jsonschema/1-0-0","data":[1,2,3]}`))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema":"iglu:com.acme/click/jsonschema/1-0-0","data":[1,2,3]}`, string(out))
}

func TestSchemaKey_WithVersion(t *testing.T) {
	key := MustParseSchemaKey("iglu:com.acme/click/jsonschema/1-0-0")
	newer := key.WithVersion(SchemaVer{Model: 1, Revision: 0, Addition: 2})

	assert.Equal(t, "iglu:com.acme/click/jsonschema/1-0-2", newer.String())
	// Original key is untouched.
	assert.Equal(t, "iglu:com.acme/click/jsonschema/1-0-0", key.String())
}
