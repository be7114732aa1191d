// Package sanitize strips brand names and self-referential phrasing from
// model output before it reaches the user.
package sanitize

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order. Replacements must not re-introduce any pattern,
// which keeps Clean idempotent.
var rules = []rule{
	{regexp.MustCompile(`(?i)nexa\s+bank`), "banks"},
	{regexp.MustCompile(`(?i)abc\s+bank`), "banks"},
	{regexp.MustCompile(`(?i)xyz\s+bank`), "banks"},
	{regexp.MustCompile(`(?i)our\s+bank`), "banks"},
	{regexp.MustCompile(`(?i)we\s+offer`), "banks"},
}

// Clean applies every rule to text. It never fails and is idempotent:
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return text
	}
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
