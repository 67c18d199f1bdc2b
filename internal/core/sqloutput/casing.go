package sqloutput

import (
	"strings"
	"unicode"
)

// transformLabel rewrites a column label per the naming mode. Input labels
// are assumed snake_case (for the camel/pascal modes) or PascalCase (for the
// snake mode).
func transformLabel(label string, mode NamingMode) string {
	switch mode {
	case NamingCamelCase:
		return toCamelCase(label)
	case NamingPascalCase:
		return toPascalCase(label)
	case NamingSnakeCase:
		return toSnakeCase(label)
	case NamingLowerCase:
		return strings.ToLower(label)
	case NamingUpperCase:
		return strings.ToUpper(label)
	default:
		return label
	}
}

// toCamelCase collapses each "_x" into an uppercase "x". The leading
// character is left unchanged.
func toCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upperNext := false
	for i, r := range s {
		if r == '_' && i > 0 {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toPascalCase is camel case with the first character uppercased.
func toPascalCase(s string) string {
	camel := toCamelCase(s)
	if camel == "" {
		return camel
	}
	runes := []rune(camel)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// toSnakeCase rewrites each uppercase-or-digit boundary "X" into "_x". No
// underscore is inserted before the first character.
func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
