package ecs

import (
	"fmt"
	"strings"

	cerr "github.com/Semantics3/go-amazon-media/composable_error"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/utils"
)

var (
	// DefaultParticipantTypes are the ItemAttributes collected as participants
	DefaultParticipantTypes = []string{"Author", "Artist", "Actor", "Director", "Creator"}
	// DefaultImageSizes are the ImageSet children kept as images
	DefaultImageSizes = []string{"SwatchImage", "TinyImage", "ThumbnailImage", "SmallImage", "MediumImage", "LargeImage"}
)

// Decoder maps response trees onto ProductItems
type Decoder struct {
	ParticipantTypes []string
	ImageSizes       []string
}

// LookupResult is the decoded body of one ItemLookup response
type LookupResult struct {
	Items  []*types.ProductItem
	Errors []types.ErrorMessage
}

// InvalidASINs lists the ASINs the vendor rejected as ItemId values
func (lr *LookupResult) InvalidASINs() []string {
	return invalidASINs(lr.Errors)
}

func invalidASINs(errs []types.ErrorMessage) []string {
	asins := make([]string, 0)
	for _, e := range errs {
		if asin, ok := types.ASINFromError(e.Message); ok {
			asins = append(asins, asin)
		}
	}
	return asins
}

// NewDecoder falls back to the default participant types and image sizes
// when none are given
func NewDecoder(participantTypes []string, imageSizes []string) *Decoder {
	if len(participantTypes) == 0 {
		participantTypes = DefaultParticipantTypes
	}
	if len(imageSizes) == 0 {
		imageSizes = DefaultImageSizes
	}
	return &Decoder{ParticipantTypes: participantTypes, ImageSizes: imageSizes}
}

// DecodeItemLookup decodes an ItemLookupResponse body
func (d *Decoder) DecodeItemLookup(body []byte) (*LookupResult, error) {
	root, err := ParseTree(body)
	if err != nil {
		return nil, cerr.Decode("AMAZON_XML_PARSE_ERR", "response is not valid xml", err)
	}

	items := root.Get("Items")
	if items == nil {
		// Some failures come back with a 200 and a bare error envelope
		if errs := collectErrors(root); len(errs) > 0 {
			return &LookupResult{Errors: errs}, nil
		}
		return nil, cerr.Decode("AMAZON_XML_STRUCTURE_ERR", "no Items element in "+root.Name, nil)
	}
	if expected := types.ItemLookup.ResponseElement(); root.Name != expected {
		return nil, cerr.Decode("AMAZON_XML_STRUCTURE_ERR", fmt.Sprintf("expected %s, got %s", expected, root.Name), nil)
	}

	res := &LookupResult{Items: make([]*types.ProductItem, 0)}
	res.Errors = collectErrors(items.Get("Request"))

	// One requested ItemId is echoed as a scalar and answered with a single
	// Item, several are echoed as a list
	if items.Get("Request", "ItemLookupRequest", "ItemId").IsList() {
		for _, item := range items.Get("Item").All() {
			res.Items = appendItem(res.Items, d.DecodeItem(item))
		}
	} else {
		res.Items = appendItem(res.Items, d.DecodeItem(items.Get("Item").First()))
	}
	return res, nil
}

func appendItem(items []*types.ProductItem, item *types.ProductItem) []*types.ProductItem {
	if item == nil || item.ASIN == "" {
		return items
	}
	return append(items, item)
}

// DecodeErrors reads an error envelope, from either a 4xx body or the
// Request block of a lookup response
func DecodeErrors(body []byte) ([]types.ErrorMessage, error) {
	root, err := ParseTree(body)
	if err != nil {
		return nil, err
	}
	errs := collectErrors(root)
	if len(errs) == 0 {
		errs = collectErrors(root.Get("Items", "Request"))
	}
	return errs, nil
}

func collectErrors(n *Node) []types.ErrorMessage {
	var errNodes []*Node
	switch {
	case n == nil:
		return nil
	case n.Name == "Error":
		errNodes = []*Node{n}
	case n.Get("Error") != nil:
		errNodes = n.Get("Error").All()
	default:
		errNodes = n.Get("Errors", "Error").All()
	}

	errs := make([]types.ErrorMessage, 0, len(errNodes))
	for _, e := range errNodes {
		errs = append(errs, types.ErrorMessage{
			Code:    e.Get("Code").Value(),
			Message: e.Get("Message").Value(),
		})
	}
	return errs
}

// DecodeItem maps one <Item> node, nil when the node is missing
func (d *Decoder) DecodeItem(item *Node) *types.ProductItem {
	if !item.IsMap() {
		return nil
	}
	p := types.NewProductItem(item.Get("ASIN").Value())
	p.DetailPageURL = item.Get("DetailPageURL").Value()
	if rank := item.Get("SalesRank"); rank.IsScalar() {
		p.SalesRank = utils.GetIntPtr(rank.Value())
	}

	attrs := item.Get("ItemAttributes")
	p.Title = attrs.Get("Title").Value()
	p.ISBN = attrs.Get("ISBN").First().Value()
	p.EAN = attrs.Get("EAN").First().Value()
	p.ListPrice = decodePrice(attrs.Get("ListPrice"))
	p.LowestNewPrice = decodePrice(item.Get("OfferSummary", "LowestNewPrice"))
	p.CustomerReviewsIFrame = item.Get("CustomerReviews", "IFrameURL").Value()

	for _, role := range d.ParticipantTypes {
		for _, name := range attrs.Get(role).All() {
			if v := name.Value(); v != "" {
				p.AddParticipant(role, v)
			}
		}
	}

	if attrs.IsMap() {
		for key, field := range attrs.Fields {
			if field.IsScalar() && !utils.StringInSlice(key, d.ParticipantTypes) {
				p.Attributes[strings.ToLower(key)] = field.Text
			}
		}
	}

	for _, review := range item.Get("EditorialReviews", "EditorialReview").All() {
		p.AddEditorialReview(types.EditorialReview{
			Source:  review.Get("Source").Value(),
			Content: review.Get("Content").Value(),
		})
	}

	d.decodeImages(item, p)
	return p
}

func decodePrice(n *Node) *types.Price {
	if !n.IsMap() {
		return nil
	}
	price := &types.Price{
		CurrencyCode:   n.Get("CurrencyCode").Value(),
		FormattedPrice: n.Get("FormattedPrice").Value(),
	}
	if amount := n.Get("Amount"); amount.IsScalar() {
		price.Amount = utils.GetIntPtr(amount.Value())
	}
	return price
}

func decodeImage(n *Node) (types.Image, bool) {
	url := n.Get("URL").Value()
	if url == "" {
		return types.Image{}, false
	}
	img := types.Image{URL: url}
	if h := n.Get("Height"); h.IsScalar() {
		img.Height = utils.GetIntPtr(h.Value())
	}
	if w := n.Get("Width"); w.IsScalar() {
		img.Width = utils.GetIntPtr(w.Value())
	}
	return img, true
}

// decodeImages fills ImageSets from a single ImageSet and ImageGallery from
// several. The gallery's primary set also fills ImageSets.
func (d *Decoder) decodeImages(item *Node, p *types.ProductItem) {
	sets := item.Get("ImageSets", "ImageSet")
	switch {
	case sets.IsList():
		for i, set := range sets.All() {
			category := set.Attr("Category")
			for _, size := range d.ImageSizes {
				img, ok := decodeImage(set.Get(size))
				if !ok {
					continue
				}
				key := strings.ToLower(size)
				p.ImageGallery[key] = append(p.ImageGallery[key], types.GalleryImage{
					URL:      img.URL,
					Category: category,
					Height:   img.Height,
					Width:    img.Width,
					Position: i + 1,
				})
				if category == "primary" {
					p.ImageSets[key] = img
				}
			}
		}
	case sets.IsMap():
		d.fillImageSets(sets, p)
	default:
		// ResponseGroup=Images without ImageSets puts sizes on the item
		d.fillImageSets(item, p)
	}
}

func (d *Decoder) fillImageSets(set *Node, p *types.ProductItem) {
	for _, size := range d.ImageSizes {
		if img, ok := decodeImage(set.Get(size)); ok {
			p.ImageSets[strings.ToLower(size)] = img
		}
	}
}
