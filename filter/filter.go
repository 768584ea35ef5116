package filter

import (
	"context"
	"log"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

// Lookuper resolves ASINs to items
type Lookuper interface {
	Lookup(ctx context.Context, locale types.Locale, ids []string) (map[string]*types.ProductItem, error)
}

// Filter replaces [amazon...] markers in text with item markup
type Filter struct {
	lookup        Lookuper
	locale        types.Locale
	defaultMaxAge int
}

// Result is the processed text and how long it may be cached, in seconds
type Result struct {
	Text   string `json:"text"`
	MaxAge int    `json:"max_age"`
}

func New(lookup Lookuper, locale types.Locale, defaultMaxAge int) *Filter {
	return &Filter{lookup: lookup, locale: locale, defaultMaxAge: defaultMaxAge}
}

// Process renders every marker it can. Markers of unknown types, or whose
// item could not be fetched, are left as they are. The lookup error, if
// any, is returned with a usable Result.
func (f *Filter) Process(ctx context.Context, text string) (*Result, error) {
	res := &Result{Text: text, MaxAge: f.defaultMaxAge}
	tokens := ParseTokens(text)
	if len(tokens) == 0 {
		return res, nil
	}

	asins := make([]string, 0, len(tokens))
	seen := make(map[string]bool)
	for _, t := range tokens {
		if age := t.MaxAge; age >= 0 && age < res.MaxAge {
			res.MaxAge = age
		}
		if KnownType(t.Type) && !seen[t.ASIN] {
			seen[t.ASIN] = true
			asins = append(asins, t.ASIN)
		}
	}
	if len(asins) == 0 {
		return res, nil
	}

	items, err := f.lookup.Lookup(ctx, f.locale, asins)
	if err != nil {
		log.Printf("FILTER_LOOKUP_ERR: Locale: %s, ASINs: %v, Error: %v\n", f.locale, asins, err)
	}

	replacements := make(map[string]string)
	for _, t := range tokens {
		if markup, ok := Render(t.Type, items[t.ASIN]); ok {
			replacements[t.Raw] = markup
		}
	}
	res.Text = tokenRegex.ReplaceAllStringFunc(text, func(raw string) string {
		if markup, ok := replacements[raw]; ok {
			return markup
		}
		return raw
	})
	return res, err
}
