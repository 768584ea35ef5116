package ecs

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

// MaxItemIDs is the vendor limit of ItemId values per request
const MaxItemIDs = 10

// ItemLookup looks up at most MaxItemIDs ASINs in one request. A vendor
// error that names invalid ASINs still returns a result so the caller can
// flag them; the error is returned alongside.
func (c *Client) ItemLookup(ctx context.Context, locale types.Locale, asins []string) (*LookupResult, error) {
	if len(asins) > MaxItemIDs {
		asins = asins[:MaxItemIDs]
	}

	params := url.Values{}
	params.Set("ItemId", strings.Join(asins, ","))
	params.Set("IdType", "ASIN")
	params.Set("ResponseGroup", c.settings.ResponseGroup)

	signedURL, err := c.SignedURL(locale, types.ItemLookup, params)
	if err != nil {
		return nil, err
	}

	raw, err := c.Execute(ctx, signedURL)
	if err != nil {
		var vendorErr *VendorError
		if errors.As(err, &vendorErr) {
			return &LookupResult{Items: []*types.ProductItem{}, Errors: vendorErr.Errors}, err
		}
		return nil, err
	}
	return c.decoder.DecodeItemLookup(raw.Body)
}
