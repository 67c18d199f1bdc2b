package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqloutputpkg "github.com/streamforge/enrichkit/internal/core/sqloutput"
)

func validOutput() OutputConfig {
	return OutputConfig{
		Schema:        "iglu:com.acme/user_profile/jsonschema/1-0-0",
		Describe:      "ALL_ROWS",
		ExpectedRows:  "EXACTLY_ONE",
		PropertyNames: "CAMEL_CASE",
	}
}

func TestOutputConfig_Validate(t *testing.T) {
	assert.NoError(t, validOutput().Validate())
}

func TestOutputConfig_Validate_CollectsAllProblems(t *testing.T) {
	cfg := OutputConfig{
		Schema:        "not-a-uri",
		Describe:      "SOME_ROWS",
		ExpectedRows:  "A_FEW",
		PropertyNames: "KEBAB_CASE",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
	assert.Contains(t, err.Error(), "SOME_ROWS")
	assert.Contains(t, err.Error(), "A_FEW")
	assert.Contains(t, err.Error(), "KEBAB_CASE")
}

func TestOutputConfig_BuildSpec(t *testing.T) {
	spec, err := validOutput().BuildSpec()
	require.NoError(t, err)

	assert.Equal(t, "iglu:com.acme/user_profile/jsonschema/1-0-0", spec.Schema.String())
	assert.Equal(t, sqloutputpkg.DescribeAllRows, spec.Describe)
	assert.Equal(t, sqloutputpkg.ExactlyOne, spec.ExpectedRows)
	assert.Equal(t, sqloutputpkg.NamingCamelCase, spec.PropertyNames)
}

func TestOutputConfig_BuildSpec_UnknownModeFailsFast(t *testing.T) {
	cfg := validOutput()
	cfg.ExpectedRows = "WHATEVER"

	_, err := cfg.BuildSpec()
	assert.Error(t, err)
}

func TestConfig_BuildSpecs(t *testing.T) {
	cfg := &Config{
		FailureTopic: "bad-rows",
		Outputs:      []OutputConfig{validOutput(), validOutput()},
	}

	require.NoError(t, cfg.Validate())

	specs, err := cfg.BuildSpecs()
	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestConfig_Validate_ReportsOutputIndex(t *testing.T) {
	bad := validOutput()
	bad.Describe = "SOME_ROWS"
	cfg := &Config{Outputs: []OutputConfig{validOutput(), bad}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output 1")
}
