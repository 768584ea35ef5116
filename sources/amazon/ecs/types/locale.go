package types

import (
	"fmt"
	"sort"
	"strings"
)

// Locale is the vendor's 2-letter marketplace code. It selects an API
// endpoint and has nothing to do with language or region settings.
type Locale string

// Locales available in the Product Advertising API
const (
	LocaleBrazil        Locale = "BR"
	LocaleCanada        Locale = "CA"
	LocaleChina         Locale = "CN"
	LocaleFrance        Locale = "FR"
	LocaleGermany       Locale = "DE"
	LocaleIndia         Locale = "IN"
	LocaleItaly         Locale = "IT"
	LocaleJapan         Locale = "JP"
	LocaleMexico        Locale = "MX"
	LocaleSpain         Locale = "ES"
	LocaleUnitedKingdom Locale = "UK"
	LocaleUnitedStates  Locale = "US"
)

const (
	defaultScheme = "http"
	defaultPath   = "/onca/xml"
)

// LocaleEndpoint is where signed requests for a locale are sent
type LocaleEndpoint struct {
	Code   Locale `json:"code"`
	Name   string `json:"name"`
	Scheme string `json:"scheme"`
	Host   string `json:"host"`
	Path   string `json:"path"`
}

// URL returns scheme://host/path
func (e LocaleEndpoint) URL() string {
	return fmt.Sprintf("%s://%s%s", e.Scheme, e.Host, e.Path)
}

// reference: https://docs.aws.amazon.com/AWSECommerceService/latest/DG/AnatomyOfaRESTRequest.html#EndpointsandWebServices
var localeEndpointMap = map[Locale]LocaleEndpoint{
	LocaleBrazil:        {Code: LocaleBrazil, Name: "Brazil", Host: "webservices.amazon.com.br"},
	LocaleCanada:        {Code: LocaleCanada, Name: "Canada", Host: "webservices.amazon.ca"},
	LocaleChina:         {Code: LocaleChina, Name: "China", Host: "webservices.amazon.cn"},
	LocaleFrance:        {Code: LocaleFrance, Name: "France", Host: "webservices.amazon.fr"},
	LocaleGermany:       {Code: LocaleGermany, Name: "Germany", Host: "webservices.amazon.de"},
	LocaleIndia:         {Code: LocaleIndia, Name: "India", Host: "webservices.amazon.in"},
	LocaleItaly:         {Code: LocaleItaly, Name: "Italy", Host: "webservices.amazon.it"},
	LocaleJapan:         {Code: LocaleJapan, Name: "Japan", Host: "webservices.amazon.co.jp"},
	LocaleMexico:        {Code: LocaleMexico, Name: "Mexico", Host: "webservices.amazon.com.mx"},
	LocaleSpain:         {Code: LocaleSpain, Name: "Spain", Host: "webservices.amazon.es"},
	LocaleUnitedKingdom: {Code: LocaleUnitedKingdom, Name: "United Kingdom", Host: "webservices.amazon.co.uk"},
	LocaleUnitedStates:  {Code: LocaleUnitedStates, Name: "United States", Host: "webservices.amazon.com"},
}

// NewLocale validates a marketplace code, case-insensitively
func NewLocale(code string) (Locale, error) {
	locale := Locale(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := localeEndpointMap[locale]; ok {
		return locale, nil
	}
	return "", fmt.Errorf("unsupported locale: %s", code)
}

// Endpoint returns the endpoint for the locale
func (locale Locale) Endpoint() (LocaleEndpoint, bool) {
	e, ok := localeEndpointMap[locale]
	if !ok {
		return LocaleEndpoint{}, false
	}
	e.Scheme = defaultScheme
	e.Path = defaultPath
	return e, true
}

// Host returns API host for locale
func (locale Locale) Host() string {
	return localeEndpointMap[locale].Host
}

// LocalesAvailable returns every supported endpoint keyed by code
func LocalesAvailable() map[Locale]LocaleEndpoint {
	res := make(map[Locale]LocaleEndpoint, len(localeEndpointMap))
	for code := range localeEndpointMap {
		res[code], _ = code.Endpoint()
	}
	return res
}

// LocaleCodes returns the supported codes in sorted order
func LocaleCodes() []string {
	codes := make([]string, 0, len(localeEndpointMap))
	for code := range localeEndpointMap {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	return codes
}
