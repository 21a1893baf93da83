package mailer

import (
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Render substitutes every {{key}} placeholder in the template with the
// matching value from data. Whitespace around the key is tolerated. Unknown
// keys are kept as the literal placeholder so missing data stays visible in
// the delivered message instead of silently disappearing.
func Render(template string, data map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-2])
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}
