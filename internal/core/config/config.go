// Package config holds the load-time configuration for the validation and
// conversion components. All enum values are resolved here, fail-fast: an
// unrecognised mode is a startup error, never a per-event runtime error.
package config

import (
	"errors"
	"fmt"

	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
	sqloutputpkg "github.com/streamforge/enrichkit/internal/core/sqloutput"
)

// OutputConfig describes one tabular output: which schema its contexts carry
// and how rows are shaped and enveloped.
type OutputConfig struct {
	// Schema is the full schema URI the produced contexts declare.
	Schema string

	// Describe selects the enveloping rule: "ALL_ROWS" or "EVERY_ROW".
	Describe string

	// ExpectedRows is the row-count policy: "EXACTLY_ONE", "AT_MOST_ONE",
	// "AT_LEAST_ONE", or "AT_LEAST_ZERO".
	ExpectedRows string

	// PropertyNames is the column-label rewrite: "AS_IS", "CAMEL_CASE",
	// "PASCAL_CASE", "SNAKE_CASE", "LOWER_CASE", or "UPPER_CASE".
	PropertyNames string
}

// Validate collects every problem with the output configuration.
func (c OutputConfig) Validate() error {
	var errs []error

	if _, err := selfdescpkg.ParseSchemaKey(c.Schema); err != nil {
		errs = append(errs, fmt.Errorf("output schema: %w", err))
	}
	if _, err := sqloutputpkg.ParseDescribeMode(c.Describe); err != nil {
		errs = append(errs, err)
	}
	if _, err := sqloutputpkg.ParseRowCountMode(c.ExpectedRows); err != nil {
		errs = append(errs, err)
	}
	if _, err := sqloutputpkg.ParseNamingMode(c.PropertyNames); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// BuildSpec resolves the configuration into the immutable conversion spec.
func (c OutputConfig) BuildSpec() (sqloutputpkg.Spec, error) {
	schema, err := selfdescpkg.ParseSchemaKey(c.Schema)
	if err != nil {
		return sqloutputpkg.Spec{}, fmt.Errorf("output schema: %w", err)
	}
	describe, err := sqloutputpkg.ParseDescribeMode(c.Describe)
	if err != nil {
		return sqloutputpkg.Spec{}, err
	}
	rows, err := sqloutputpkg.ParseRowCountMode(c.ExpectedRows)
	if err != nil {
		return sqloutputpkg.Spec{}, err
	}
	naming, err := sqloutputpkg.ParseNamingMode(c.PropertyNames)
	if err != nil {
		return sqloutputpkg.Spec{}, err
	}

	return sqloutputpkg.Spec{
		Schema:        schema,
		Describe:      describe,
		ExpectedRows:  rows,
		PropertyNames: naming,
	}, nil
}

// Config groups the load-time settings of the validation core.
type Config struct {
	// FailureTopic is the topic failure records are published to. Empty
	// disables the failure sink.
	FailureTopic string

	// Outputs lists the configured tabular outputs.
	Outputs []OutputConfig
}

// Validate checks the whole configuration, joining every problem found.
func (c *Config) Validate() error {
	var errs []error
	for i, out := range c.Outputs {
		if err := out.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// BuildSpecs resolves every configured output into its conversion spec,
// preserving order.
func (c *Config) BuildSpecs() ([]sqloutputpkg.Spec, error) {
	specs := make([]sqloutputpkg.Spec, 0, len(c.Outputs))
	for i, out := range c.Outputs {
		spec, err := out.BuildSpec()
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
