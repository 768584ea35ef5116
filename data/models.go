package data

import (
	"sort"
	"strings"
	"time"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/jinzhu/copier"
)

type (
	// ItemRow is one row of amazon_item
	ItemRow struct {
		tableName               struct{}          `sql:"amazon_item"`
		ASIN                    string            `sql:"asin,pk"`
		Title                   string            `sql:"title"`
		DetailPageURL           string            `sql:"detailpageurl"`
		ISBN                    string            `sql:"isbn"`
		EAN                     string            `sql:"ean"`
		SalesRank               *int              `sql:"salesrank"`
		Brand                   string            `sql:"brand"`
		Publisher               string            `sql:"publisher"`
		Manufacturer            string            `sql:"manufacturer"`
		MPN                     string            `sql:"mpn"`
		Studio                  string            `sql:"studio"`
		Binding                 string            `sql:"binding"`
		ReleaseDate             string            `sql:"releasedate"`
		ProductGroup            string            `sql:"productgroup"`
		ProductTypeName         string            `sql:"producttypename"`
		ListPriceAmount         *int              `sql:"listpriceamount"`
		ListPriceCurrencyCode   string            `sql:"listpricecurrencycode"`
		ListPriceFormattedPrice string            `sql:"listpriceformattedprice"`
		LowestPriceAmount       *int              `sql:"lowestpriceamount"`
		LowestPriceCurrencyCode string            `sql:"lowestpricecurrencycode"`
		LowestPriceFormatted    string            `sql:"lowestpriceformattedprice"`
		Attributes              map[string]string `sql:"attributes"`
		CustomerReviewsIFrame   string            `sql:"customerreviews_iframe"`
		InvalidASIN             bool              `sql:"invalid_asin,notnull"`
		Timestamp               time.Time         `sql:"timestamp"`
	}

	ParticipantRow struct {
		tableName   struct{} `sql:"amazon_item_participant"`
		ASIN        string   `sql:"asin"`
		Position    int      `sql:"position,notnull"`
		Type        string   `sql:"type"`
		Participant string   `sql:"participant"`
	}

	ImageRow struct {
		tableName struct{} `sql:"amazon_item_image"`
		ASIN      string   `sql:"asin"`
		Size      string   `sql:"size"`
		URL       string   `sql:"url"`
		Height    *int     `sql:"height"`
		Width     *int     `sql:"width"`
	}

	GalleryImageRow struct {
		tableName struct{} `sql:"amazon_item_image_gallery"`
		ASIN      string   `sql:"asin"`
		Size      string   `sql:"size"`
		Position  int      `sql:"position,notnull"`
		Category  string   `sql:"category"`
		URL       string   `sql:"url"`
		Height    *int     `sql:"height"`
		Width     *int     `sql:"width"`
	}

	EditorialReviewRow struct {
		tableName struct{} `sql:"amazon_item_editorial_review"`
		ASIN      string   `sql:"asin"`
		Position  int      `sql:"position,notnull"`
		Source    string   `sql:"source"`
		Content   string   `sql:"content"`
	}

	// ItemRecord is an item with its child rows, the unit that is replaced
	// on every refresh
	ItemRecord struct {
		Item         ItemRow
		Participants []ParticipantRow
		Images       []ImageRow
		Gallery      []GalleryImageRow
		Reviews      []EditorialReviewRow
	}
)

// NewItemRecord flattens an item into rows
func NewItemRecord(item *types.ProductItem) (*ItemRecord, error) {
	rec := &ItemRecord{}
	if err := copier.Copy(&rec.Item, item); err != nil {
		return nil, err
	}
	if rec.Item.Timestamp.IsZero() {
		rec.Item.Timestamp = time.Now().UTC()
	}

	rec.Item.Attributes = make(map[string]string, len(item.Attributes))
	for k, v := range item.Attributes {
		rec.Item.Attributes[k] = v
	}
	rec.Item.Brand = item.Attribute("brand")
	rec.Item.Publisher = item.Attribute("publisher")
	rec.Item.Manufacturer = item.Attribute("manufacturer")
	rec.Item.MPN = item.Attribute("mpn")
	rec.Item.Studio = item.Attribute("studio")
	rec.Item.Binding = item.Attribute("binding")
	rec.Item.ReleaseDate = item.Attribute("releasedate")
	rec.Item.ProductGroup = item.Attribute("productgroup")
	rec.Item.ProductTypeName = item.Attribute("producttypename")

	if p := item.ListPrice; p != nil {
		rec.Item.ListPriceAmount = p.Amount
		rec.Item.ListPriceCurrencyCode = p.CurrencyCode
		rec.Item.ListPriceFormattedPrice = p.FormattedPrice
	}
	if p := item.LowestNewPrice; p != nil {
		rec.Item.LowestPriceAmount = p.Amount
		rec.Item.LowestPriceCurrencyCode = p.CurrencyCode
		rec.Item.LowestPriceFormatted = p.FormattedPrice
	}

	for i, p := range item.Participants {
		rec.Participants = append(rec.Participants, ParticipantRow{ASIN: item.ASIN, Position: i, Type: p.Role, Participant: p.Name})
	}
	for _, size := range sortedKeys(item.ImageSets) {
		img := item.ImageSets[size]
		rec.Images = append(rec.Images, ImageRow{ASIN: item.ASIN, Size: size, URL: img.URL, Height: img.Height, Width: img.Width})
	}
	for size, imgs := range item.ImageGallery {
		for _, img := range imgs {
			row := GalleryImageRow{ASIN: item.ASIN, Size: size}
			if err := copier.Copy(&row, &img); err != nil {
				return nil, err
			}
			rec.Gallery = append(rec.Gallery, row)
		}
	}
	sort.Slice(rec.Gallery, func(i, j int) bool {
		if rec.Gallery[i].Size != rec.Gallery[j].Size {
			return rec.Gallery[i].Size < rec.Gallery[j].Size
		}
		return rec.Gallery[i].Position < rec.Gallery[j].Position
	})
	for i, r := range item.EditorialReviews {
		rec.Reviews = append(rec.Reviews, EditorialReviewRow{ASIN: item.ASIN, Position: i, Source: r.Source, Content: r.Content})
	}
	return rec, nil
}

// ProductItem rebuilds the item the record was made from
func (rec *ItemRecord) ProductItem() *types.ProductItem {
	row := rec.Item
	item := types.NewProductItem(row.ASIN)
	copier.Copy(item, &row)
	item.Attributes = make(map[string]string, len(row.Attributes))
	for k, v := range row.Attributes {
		item.Attributes[strings.ToLower(k)] = v
	}

	if row.ListPriceAmount != nil || row.ListPriceCurrencyCode != "" || row.ListPriceFormattedPrice != "" {
		item.ListPrice = &types.Price{Amount: row.ListPriceAmount, CurrencyCode: row.ListPriceCurrencyCode, FormattedPrice: row.ListPriceFormattedPrice}
	}
	if row.LowestPriceAmount != nil || row.LowestPriceCurrencyCode != "" || row.LowestPriceFormatted != "" {
		item.LowestNewPrice = &types.Price{Amount: row.LowestPriceAmount, CurrencyCode: row.LowestPriceCurrencyCode, FormattedPrice: row.LowestPriceFormatted}
	}

	participants := append([]ParticipantRow(nil), rec.Participants...)
	sort.SliceStable(participants, func(i, j int) bool { return participants[i].Position < participants[j].Position })
	for _, p := range participants {
		item.AddParticipant(p.Type, p.Participant)
	}
	for _, img := range rec.Images {
		item.ImageSets[img.Size] = types.Image{URL: img.URL, Height: img.Height, Width: img.Width}
	}
	for _, g := range rec.Gallery {
		item.ImageGallery[g.Size] = append(item.ImageGallery[g.Size], types.GalleryImage{
			URL: g.URL, Category: g.Category, Height: g.Height, Width: g.Width, Position: g.Position,
		})
	}
	reviews := append([]EditorialReviewRow(nil), rec.Reviews...)
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].Position < reviews[j].Position })
	for _, r := range reviews {
		item.AddEditorialReview(types.EditorialReview{Source: r.Source, Content: r.Content})
	}
	return item
}

func sortedKeys(m map[string]types.Image) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
