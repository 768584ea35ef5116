package filter

import (
	"regexp"
	"strconv"
	"strings"
)

var tokenRegex = regexp.MustCompile(`\[amazon(.*?)\]`)

// Token is one [amazon...] marker found in a text
type Token struct {
	Raw  string
	ASIN string
	Type string
	// MaxAge is the per-token cache lifetime in seconds, -1 when not given
	MaxAge int
}

// ParseToken reads the inside of a marker. [amazon:ASIN:type:maxage] is
// split on colons, the legacy [amazon ASIN type maxage] on whitespace.
func ParseToken(raw string, inner string) (Token, bool) {
	var params []string
	if strings.HasPrefix(inner, ":") {
		params = strings.Split(strings.TrimPrefix(inner, ":"), ":")
	} else {
		params = strings.Fields(inner)
	}
	if len(params) < 2 {
		return Token{}, false
	}

	t := Token{
		Raw:    raw,
		ASIN:   strings.TrimSpace(params[0]),
		Type:   strings.ToLower(strings.TrimSpace(params[1])),
		MaxAge: -1,
	}
	if t.ASIN == "" || t.Type == "" {
		return Token{}, false
	}
	if len(params) > 2 {
		if age, err := strconv.Atoi(strings.TrimSpace(params[2])); err == nil && age >= 0 {
			t.MaxAge = age
		}
	}
	return t, true
}

// ParseTokens returns the well formed markers of text in order of appearance,
// repeated markers once
func ParseTokens(text string) []Token {
	tokens := make([]Token, 0)
	seen := make(map[string]bool)
	for _, m := range tokenRegex.FindAllStringSubmatch(text, -1) {
		if seen[m[0]] {
			continue
		}
		seen[m[0]] = true
		if t, ok := ParseToken(m[0], m[1]); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
