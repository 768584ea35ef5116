package types

import (
	"strings"
	"time"
)

type (
	// ProductItem is the flattened record decoded from one <Item> element
	ProductItem struct {
		ASIN                     string                     `json:"asin"`
		Title                    string                     `json:"title,omitempty"`
		DetailPageURL            string                     `json:"detailpageurl,omitempty"`
		ISBN                     string                     `json:"isbn,omitempty"`
		EAN                      string                     `json:"ean,omitempty"`
		SalesRank                *int                       `json:"salesrank,omitempty"`
		ListPrice                *Price                     `json:"listprice,omitempty"`
		LowestNewPrice           *Price                     `json:"lowestprice,omitempty"`
		Attributes               map[string]string          `json:"attributes,omitempty"`
		ImageSets                map[string]Image           `json:"imagesets,omitempty"`
		ImageGallery             map[string][]GalleryImage  `json:"imagesets_gallery,omitempty"`
		EditorialReviews         []EditorialReview          `json:"editorialreviews,omitempty"`
		EditorialReviewsBySource map[string]EditorialReview `json:"editorialreviews_by_source,omitempty"`
		Participants             []Participant              `json:"participants,omitempty"`
		ParticipantsByRole       map[string][]string        `json:"participants_by_role,omitempty"`
		CustomerReviewsIFrame    string                     `json:"customerreviews_iframe,omitempty"`
		InvalidASIN              bool                       `json:"invalid_asin"`
		Timestamp                time.Time                  `json:"timestamp"`
	}

	// Price amounts are in the currency's smallest unit
	Price struct {
		Amount         *int   `json:"amount,omitempty"`
		CurrencyCode   string `json:"currencycode,omitempty"`
		FormattedPrice string `json:"formattedprice,omitempty"`
	}

	Image struct {
		URL    string `json:"url"`
		Height *int   `json:"height,omitempty"`
		Width  *int   `json:"width,omitempty"`
	}

	// GalleryImage is one image of a gallery set, Position starts at 1
	GalleryImage struct {
		URL      string `json:"url"`
		Category string `json:"category,omitempty"`
		Height   *int   `json:"height,omitempty"`
		Width    *int   `json:"width,omitempty"`
		Position int    `json:"position"`
	}

	EditorialReview struct {
		Source  string `json:"source"`
		Content string `json:"content"`
	}

	Participant struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}
)

// NewProductItem returns an item with its maps allocated
func NewProductItem(asin string) *ProductItem {
	return &ProductItem{
		ASIN:                     asin,
		Attributes:               make(map[string]string),
		ImageSets:                make(map[string]Image),
		ImageGallery:             make(map[string][]GalleryImage),
		EditorialReviewsBySource: make(map[string]EditorialReview),
		ParticipantsByRole:       make(map[string][]string),
	}
}

// ReviewSourceKey normalizes a review source for EditorialReviewsBySource
func ReviewSourceKey(source string) string {
	return strings.ReplaceAll(strings.ToLower(source), " ", "_")
}

// AddEditorialReview appends the review, the by-source entry is overwritten
func (p *ProductItem) AddEditorialReview(r EditorialReview) {
	p.EditorialReviews = append(p.EditorialReviews, r)
	if p.EditorialReviewsBySource == nil {
		p.EditorialReviewsBySource = make(map[string]EditorialReview)
	}
	p.EditorialReviewsBySource[ReviewSourceKey(r.Source)] = r
}

// AddParticipant records name under a lowercased role
func (p *ProductItem) AddParticipant(role string, name string) {
	role = strings.ToLower(role)
	p.Participants = append(p.Participants, Participant{Role: role, Name: name})
	if p.ParticipantsByRole == nil {
		p.ParticipantsByRole = make(map[string][]string)
	}
	p.ParticipantsByRole[role] = append(p.ParticipantsByRole[role], name)
}

// Attribute returns a pass-through ItemAttributes value
func (p *ProductItem) Attribute(name string) string {
	return p.Attributes[strings.ToLower(name)]
}

// Image returns the image for a size keyword, falling back to the first
// gallery image of that size
func (p *ProductItem) Image(size string) (Image, bool) {
	size = strings.ToLower(size)
	if img, ok := p.ImageSets[size]; ok {
		return img, true
	}
	if g := p.ImageGallery[size]; len(g) > 0 {
		return Image{URL: g[0].URL, Height: g[0].Height, Width: g[0].Width}, true
	}
	return Image{}, false
}
