package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ServiceAttr returns the name of a pre-wired host service for the tool,
// `<tool>_service`.
func ServiceAttr(tool string) string {
	return tool + "_service"
}

// FactoryName returns the name of the zero-argument factory for the tool,
// `get_<tool>_service`.
func FactoryName(tool string) string {
	return "get_" + tool + "_service"
}

// TypeName returns the service type name for the tool:
// words separated by `_` are capitalized, concatenated and suffixed with `Service`.
// For example, `data_warehouse` is `DataWarehouseService`.
func TypeName(tool string) string {
	var b strings.Builder
	for _, word := range strings.Split(tool, "_") {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(word[size:]))
	}
	b.WriteString("Service")
	return b.String()
}
