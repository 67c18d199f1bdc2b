// Package sqloutput converts tabular query results into self-describing JSON
// contexts: rows are shaped into flat JSON objects, checked against a
// row-count policy, and wrapped per the configured describe mode.
package sqloutput

import (
	"fmt"

	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// DescribeMode controls how many contexts a row set collapses into.
type DescribeMode int

const (
	// DescribeAllRows wraps the whole row set in a single context.
	DescribeAllRows DescribeMode = iota

	// DescribeEveryRow wraps each row in its own context.
	DescribeEveryRow
)

func (m DescribeMode) String() string {
	switch m {
	case DescribeAllRows:
		return "ALL_ROWS"
	case DescribeEveryRow:
		return "EVERY_ROW"
	default:
		return fmt.Sprintf("DescribeMode(%d)", int(m))
	}
}

// ParseDescribeMode maps a configuration string onto a DescribeMode. Unknown
// values are a configuration error, reported at load time.
func ParseDescribeMode(s string) (DescribeMode, error) {
	switch s {
	case "ALL_ROWS":
		return DescribeAllRows, nil
	case "EVERY_ROW":
		return DescribeEveryRow, nil
	default:
		return 0, fmt.Errorf("enrichkit: unknown describe mode %q", s)
	}
}

// RowCountMode is the acceptance rule for how many rows a query may return.
type RowCountMode int

const (
	ExactlyOne RowCountMode = iota
	AtMostOne
	AtLeastOne
	AtLeastZero
)

func (m RowCountMode) String() string {
	switch m {
	case ExactlyOne:
		return "EXACTLY_ONE"
	case AtMostOne:
		return "AT_MOST_ONE"
	case AtLeastOne:
		return "AT_LEAST_ONE"
	case AtLeastZero:
		return "AT_LEAST_ZERO"
	default:
		return fmt.Sprintf("RowCountMode(%d)", int(m))
	}
}

// ParseRowCountMode maps a configuration string onto a RowCountMode.
func ParseRowCountMode(s string) (RowCountMode, error) {
	switch s {
	case "EXACTLY_ONE":
		return ExactlyOne, nil
	case "AT_MOST_ONE":
		return AtMostOne, nil
	case "AT_LEAST_ONE":
		return AtLeastOne, nil
	case "AT_LEAST_ZERO":
		return AtLeastZero, nil
	default:
		return 0, fmt.Errorf("enrichkit: unknown row count mode %q", s)
	}
}

// accepts reports whether a row count satisfies the policy.
func (m RowCountMode) accepts(count int) bool {
	switch m {
	case ExactlyOne:
		return count == 1
	case AtMostOne:
		return count <= 1
	case AtLeastOne:
		return count >= 1
	default:
		return true
	}
}

// singular reports whether the policy admits at most one row, which switches
// the AllRows envelope from an array to a single object.
func (m RowCountMode) singular() bool {
	return m == ExactlyOne || m == AtMostOne
}

// NamingMode rewrites column labels into JSON property names.
type NamingMode int

const (
	NamingAsIs NamingMode = iota
	NamingCamelCase
	NamingPascalCase
	NamingSnakeCase
	NamingLowerCase
	NamingUpperCase
)

func (m NamingMode) String() string {
	switch m {
	case NamingAsIs:
		return "AS_IS"
	case NamingCamelCase:
		return "CAMEL_CASE"
	case NamingPascalCase:
		return "PASCAL_CASE"
	case NamingSnakeCase:
		return "SNAKE_CASE"
	case NamingLowerCase:
		return "LOWER_CASE"
	case NamingUpperCase:
		return "UPPER_CASE"
	default:
		return fmt.Sprintf("NamingMode(%d)", int(m))
	}
}

// ParseNamingMode maps a configuration string onto a NamingMode.
func ParseNamingMode(s string) (NamingMode, error) {
	switch s {
	case "AS_IS":
		return NamingAsIs, nil
	case "CAMEL_CASE":
		return NamingCamelCase, nil
	case "PASCAL_CASE":
		return NamingPascalCase, nil
	case "SNAKE_CASE":
		return NamingSnakeCase, nil
	case "LOWER_CASE":
		return NamingLowerCase, nil
	case "UPPER_CASE":
		return NamingUpperCase, nil
	default:
		return 0, fmt.Errorf("enrichkit: unknown property naming mode %q", s)
	}
}

// Spec is the immutable conversion configuration, built once at
// enrichment-configuration load time and reused across events.
type Spec struct {
	Schema        selfdescpkg.SchemaKey
	Describe      DescribeMode
	ExpectedRows  RowCountMode
	PropertyNames NamingMode
}
