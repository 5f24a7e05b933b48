// Package naming derives the identifier family used by generated modules.
package naming

import (
	"regexp"
	"strings"
)

// InterfacePrefix is prepended to TypeName to form InterfaceName.
const InterfacePrefix = "I"

// wordStart matches the first word character at the start of the string or
// right after a whitespace rune, including vertical tab, no-break and other
// Unicode space separators, BOM and line/paragraph separators. The whitespace
// is consumed by the match.
var wordStart = regexp.MustCompile(`(?:^|[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}])(\w)`)

// IdentifierSet is the identifier family derived from one raw module name.
type IdentifierSet struct {
	// TypeName is the PascalCase form, e.g. "OrderItem".
	TypeName string `json:"typeName"`

	// InstanceName is the camelCase form, e.g. "orderItem".
	InstanceName string `json:"instanceName"`

	// InterfaceName is TypeName with InterfacePrefix, e.g. "IOrderItem".
	InterfaceName string `json:"interfaceName"`
}

// Derive computes the IdentifierSet for a raw, free-text module name.
// It never fails; empty input yields empty names and the bare prefix.
func Derive(raw string) IdentifierSet {
	typeName := PascalCase(raw)
	return IdentifierSet{
		TypeName:      typeName,
		InstanceName:  CamelCase(raw),
		InterfaceName: InterfacePrefix + typeName,
	}
}

// PascalCase upper-cases each word-initial character and drops the single
// whitespace rune in front of it. All other characters are kept as is.
func PascalCase(raw string) string {
	return replaceWordStarts(raw, func(int) bool { return true })
}

// CamelCase behaves like PascalCase, except a match starting at offset 0 is
// lower-cased.
func CamelCase(raw string) string {
	return replaceWordStarts(raw, func(offset int) bool { return offset != 0 })
}

func replaceWordStarts(raw string, upper func(offset int) bool) string {
	matches := wordStart.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		char := raw[m[2]:m[3]]

		b.WriteString(raw[last:start])
		if upper(start) {
			b.WriteString(strings.ToUpper(char))
		} else {
			b.WriteString(strings.ToLower(char))
		}
		last = end
	}
	b.WriteString(raw[last:])

	return b.String()
}
