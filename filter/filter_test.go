package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	calls [][]string
	items map[string]*types.ProductItem
	err   error
}

func (f *fakeLookup) Lookup(ctx context.Context, locale types.Locale, ids []string) (map[string]*types.ProductItem, error) {
	f.calls = append(f.calls, ids)
	res := make(map[string]*types.ProductItem)
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			res[id] = item
		}
	}
	return res, f.err
}

func intPtr(i int) *int { return &i }

func widget() *types.ProductItem {
	item := types.NewProductItem("B00NIYOOMA")
	item.Title = "Example <Widget>"
	item.DetailPageURL = "https://www.amazon.com/dp/B00NIYOOMA?tag=mytag-20&linkCode=xm2"
	item.ImageSets["mediumimage"] = types.Image{URL: "https://images.example/m.jpg", Height: intPtr(160), Width: intPtr(120)}
	item.LowestNewPrice = &types.Price{FormattedPrice: "$9.99"}
	item.AddParticipant("Author", "A. Writer")
	return item
}

func TestParseTokens(t *testing.T) {
	tokens := ParseTokens("a [amazon:B00NIYOOMA:inline:3600] b [amazon 0679722769 medium] [amazon B00NIYOOMA] [amazon:B00NIYOOMA:inline:3600]")
	require.Len(t, tokens, 2)

	assert.Equal(t, "[amazon:B00NIYOOMA:inline:3600]", tokens[0].Raw)
	assert.Equal(t, "B00NIYOOMA", tokens[0].ASIN)
	assert.Equal(t, "inline", tokens[0].Type)
	assert.Equal(t, 3600, tokens[0].MaxAge)

	assert.Equal(t, "0679722769", tokens[1].ASIN)
	assert.Equal(t, "medium", tokens[1].Type)
	assert.Equal(t, -1, tokens[1].MaxAge)

	tok, ok := ParseToken("[amazon B00NIYOOMA Details notanumber]", " B00NIYOOMA Details notanumber")
	require.True(t, ok)
	assert.Equal(t, "details", tok.Type)
	assert.Equal(t, -1, tok.MaxAge)
}

func TestProcessReplacesTokens(t *testing.T) {
	lookup := &fakeLookup{items: map[string]*types.ProductItem{"B00NIYOOMA": widget()}}
	f := New(lookup, types.LocaleUnitedStates, 86400)

	text := "See [amazon:B00NIYOOMA:inline] and [amazon B00NIYOOMA medium 600] or [amazon:B000MISSIN:inline] [amazon:B00NIYOOMA:bogus]"
	res, err := f.Process(context.Background(), text)
	require.NoError(t, err)

	require.Len(t, lookup.calls, 1)
	assert.ElementsMatch(t, []string{"B00NIYOOMA", "B000MISSIN"}, lookup.calls[0])

	assert.Contains(t, res.Text, `<a href="https://www.amazon.com/dp/B00NIYOOMA?tag=mytag-20&amp;linkCode=xm2">Example &lt;Widget&gt;</a>`)
	assert.Contains(t, res.Text, `<img src="https://images.example/m.jpg" alt="Example &lt;Widget&gt;" height="160" width="120" />`)
	assert.Contains(t, res.Text, "[amazon:B000MISSIN:inline]")
	assert.Contains(t, res.Text, "[amazon:B00NIYOOMA:bogus]")
	assert.NotContains(t, res.Text, "[amazon:B00NIYOOMA:inline]")
	assert.Equal(t, 600, res.MaxAge)
}

func TestProcessDetails(t *testing.T) {
	lookup := &fakeLookup{items: map[string]*types.ProductItem{"B00NIYOOMA": widget()}}
	res, err := New(lookup, types.LocaleUnitedStates, 3600).Process(context.Background(), "[amazon:B00NIYOOMA:details]")
	require.NoError(t, err)
	assert.Contains(t, res.Text, `<span class="amazon-participants">A. Writer</span>`)
	assert.Contains(t, res.Text, `<span class="amazon-price">$9.99</span>`)
	assert.Equal(t, 3600, res.MaxAge)
}

func TestProcessDegradesOnLookupFailure(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("vendor down")}
	text := "Buy [amazon:B00NIYOOMA:large:60]"
	res, err := New(lookup, types.LocaleUnitedStates, 3600).Process(context.Background(), text)
	assert.Error(t, err)
	assert.Equal(t, text, res.Text)
	assert.Equal(t, 60, res.MaxAge)
}

func TestProcessWithoutTokens(t *testing.T) {
	lookup := &fakeLookup{}
	res, err := New(lookup, types.LocaleUnitedStates, 3600).Process(context.Background(), "plain [amazon] text")
	require.NoError(t, err)
	assert.Equal(t, "plain [amazon] text", res.Text)
	assert.Empty(t, lookup.calls)
}

func TestRenderImageMissing(t *testing.T) {
	_, ok := Render("large", widget())
	assert.False(t, ok)
	_, ok = Render("inline", nil)
	assert.False(t, ok)
	out, ok := Render("thumbnail", func() *types.ProductItem {
		item := widget()
		item.ImageSets["smallimage"] = types.Image{URL: "https://images.example/s.jpg"}
		return item
	}())
	assert.True(t, ok)
	assert.NotContains(t, out, "height=")
}
