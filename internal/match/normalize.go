package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds a name for fuzzy comparison. CamelCase is split, every
// token is lower-cased and separators are dropped, so "pubDate", "pub-date"
// and "PubDate" all normalize to "pubdate". XML prefixes ("atom:link") and
// package paths ("example/zoo.Dog") keep only their local part.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(LocalName(s)), "")
}

// LocalName strips a namespace prefix or package qualifier from s.
func LocalName(s string) string {
	if i := strings.LastIndexAny(s, ":./"); i >= 0 && i < len(s)-1 {
		return s[i+1:]
	}

	return s
}

// TokenizeIdent splits an identifier into lower-case tokens.
//   - "pubDate" -> ["pub", "date"]
//   - "XMLName" -> ["xml", "name"]
//   - "is_perma-link" -> ["is", "perma", "link"]
func TokenizeIdent(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new token begins at runes[i]: on a lower to
// upper transition, or at the last capital of an acronym followed by lower case.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
