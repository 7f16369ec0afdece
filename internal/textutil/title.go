package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayLabel formats a stored classification label for human-facing output.
// Underscores and dashes are treated as word separators.
func DisplayLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	label = strings.NewReplacer("_", " ", "-", " ").Replace(label)
	return titleCaser.String(label)
}
