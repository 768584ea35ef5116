package filter

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

var imageTypes = map[string]string{
	"small":     "smallimage",
	"thumbnail": "smallimage",
	"medium":    "mediumimage",
	"large":     "largeimage",
	"full":      "largeimage",
}

var templates = template.Must(template.New("inline").Parse(
	`<a href="{{.URL}}">{{.Title}}</a>`,
))

func init() {
	template.Must(templates.New("image").Parse(
		`<a href="{{.URL}}"><img src="{{.Image.URL}}" alt="{{.Title}}"` +
			`{{with .Image.Height}} height="{{.}}"{{end}}{{with .Image.Width}} width="{{.}}"{{end}} /></a>`,
	))
	template.Must(templates.New("details").Parse(
		`<div class="amazon-item"><a href="{{.URL}}">{{.Title}}</a>` +
			`{{with .Participants}}<span class="amazon-participants">{{.}}</span>{{end}}` +
			`{{with .Price}}<span class="amazon-price">{{.}}</span>{{end}}</div>`,
	))
}

type (
	imageView struct {
		URL    string
		Height int
		Width  int
	}

	itemView struct {
		URL          string
		Title        string
		Image        imageView
		Participants string
		Price        string
	}
)

// KnownType reports whether a marker type can be rendered
func KnownType(t string) bool {
	if t == "inline" || t == "details" {
		return true
	}
	_, ok := imageTypes[t]
	return ok
}

// Render returns the markup for one marker type, false when the item lacks
// what the type needs
func Render(displayType string, item *types.ProductItem) (string, bool) {
	if item == nil || item.DetailPageURL == "" {
		return "", false
	}
	view := itemView{URL: item.DetailPageURL, Title: item.Title}
	name := displayType

	switch {
	case displayType == "inline":
		if item.Title == "" {
			return "", false
		}
	case displayType == "details":
		names := make([]string, 0, len(item.Participants))
		for _, p := range item.Participants {
			names = append(names, p.Name)
		}
		view.Participants = strings.Join(names, ", ")
		if item.LowestNewPrice != nil && item.LowestNewPrice.FormattedPrice != "" {
			view.Price = item.LowestNewPrice.FormattedPrice
		} else if item.ListPrice != nil {
			view.Price = item.ListPrice.FormattedPrice
		}
	default:
		size, ok := imageTypes[displayType]
		if !ok {
			return "", false
		}
		img, ok := item.Image(size)
		if !ok {
			return "", false
		}
		view.Image = imageView{URL: img.URL}
		if img.Height != nil {
			view.Image.Height = *img.Height
		}
		if img.Width != nil {
			view.Image.Width = *img.Width
		}
		name = "image"
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", false
	}
	return buf.String(), true
}
