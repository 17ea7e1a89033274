// Package normalize turns free-text item names into slugs used for identity
// matching.
//
// Non-ASCII letters are kept as-is; there is no transliteration, so "café"
// and "cafe" produce different slugs.
package normalize

import (
	"regexp"
	"strings"
)

type synonym struct {
	pattern *regexp.Regexp
	repl    string
}

// synonyms expand common abbreviations. Keys match whole words only and no
// replacement contains a key as a word, which keeps Slugify idempotent.
var synonyms = []synonym{
	word("auth", "authentication"),
	word("authn", "authentication"),
	word("authz", "authorization"),
	word("db", "database"),
	word("js", "javascript"),
	word("ts", "typescript"),
	word("algo", "algorithm"),
	word("algos", "algorithms"),
	word("ds", "data structures"),
	word("oop", "object oriented"),
	word("regex", "regular expression"),
	word("config", "configuration"),
	word("impl", "implementation"),
}

func word(key, repl string) synonym {
	return synonym{pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`), repl: repl}
}

var (
	nonWord   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s-]+`)
	separator = regexp.MustCompile(`[\s-]+`)
)

// Slugify lowercases and trims text, drops punctuation, expands the fixed
// synonym table, and joins the remaining words with single hyphens.
// Whitespace-only input yields "", which callers must reject.
//
// Punctuation is stripped before synonyms are applied so that removing a
// character can never form a new abbreviation on a second pass.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return ""
	}
	s = nonWord.ReplaceAllString(s, "")
	for _, syn := range synonyms {
		s = syn.pattern.ReplaceAllString(s, syn.repl)
	}
	s = separator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
