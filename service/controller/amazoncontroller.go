package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	cerr "github.com/Semantics3/go-amazon-media/composable_error"
	"github.com/Semantics3/go-amazon-media/data"
	"github.com/Semantics3/go-amazon-media/filter"
	"github.com/Semantics3/go-amazon-media/sources/amazon"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs"
	ecstypes "github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/types"
	"github.com/Semantics3/go-amazon-media/utils"
	"github.com/labstack/echo"
)

const requestTimeout = 60 * time.Second

// Lookup is what the handlers need from the orchestrator
type Lookup interface {
	filter.Lookuper
	Store() data.Store
}

// ItemGetter fetches a single ASIN, usually through a batching handle
type ItemGetter interface {
	Get(ctx context.Context, locale ecstypes.Locale, asin string) (*ecstypes.ProductItem, error)
}

func errorJSON(c echo.Context, status int, code string, message string) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func errorStatus(err error) int {
	var vendorErr *ecs.VendorError
	switch {
	case errors.As(err, &vendorErr):
		return http.StatusBadGateway
	case cerr.IsKind(err, cerr.KindConfiguration):
		return http.StatusInternalServerError
	case cerr.IsKind(err, cerr.KindTransport), cerr.IsKind(err, cerr.KindDecode):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	var vendorErr *ecs.VendorError
	if errors.As(err, &vendorErr) {
		return vendorErr.Code()
	}
	return cerr.GetCode(err)
}

func requestLocale(appC *types.Config, raw string) (ecstypes.Locale, error) {
	if raw == "" {
		raw = appC.ConfigData.Amazon.Locale
	}
	return ecstypes.NewLocale(raw)
}

// GetLocales lists the marketplaces requests can be sent to
func GetLocales(appC *types.Config) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		locales := make([]map[string]string, 0)
		available := ecstypes.LocalesAvailable()
		for _, code := range ecstypes.LocaleCodes() {
			locale := ecstypes.Locale(code)
			locales = append(locales, map[string]string{
				"code": code,
				"name": available[locale].Name,
				"host": locale.Host(),
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"default": appC.ConfigData.Amazon.Locale,
			"locales": locales,
		})
	}
}

// LookupItems - GET /amazon/items?asin=A,B&locale=US
func LookupItems(appC *types.Config, lookup Lookup) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		asins := utils.SplitIDs(c.QueryParam("asin"))
		if len(asins) == 0 {
			return errorJSON(c, http.StatusBadRequest, "AMAZON_ASIN_MISSING", "asin is a required parameter")
		}
		locale, err := requestLocale(appC, c.QueryParam("locale"))
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "AMAZON_LOCALE_NOT_SUPPORTED", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()
		items, err := lookup.Lookup(ctx, locale, asins)
		if items == nil && err != nil {
			return errorJSON(c, errorStatus(err), errorCode(err), err.Error())
		}

		resp := map[string]interface{}{
			"locale": string(locale),
			"items":  items,
		}
		if err != nil {
			resp["error"] = err.Error()
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetItem - GET /amazon/items/:asin, stored copy first and a live lookup
// when the store has none
func GetItem(appC *types.Config, lookup Lookup, getter ItemGetter) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		asin := strings.TrimSpace(c.Param("asin"))
		if asin == "" {
			return errorJSON(c, http.StatusBadRequest, "AMAZON_ASIN_MISSING", "asin is required")
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		if store := lookup.Store(); store != nil {
			item, err := store.Get(ctx, asin)
			if err == nil {
				return c.JSON(http.StatusOK, item)
			}
			if !errors.Is(err, data.ErrNotFound) {
				return errorJSON(c, http.StatusInternalServerError, "AMAZON_STORE_ERR", err.Error())
			}
		}

		locale, err := requestLocale(appC, c.QueryParam("locale"))
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "AMAZON_LOCALE_NOT_SUPPORTED", err.Error())
		}
		item, err := getter.Get(ctx, locale, asin)
		if errors.Is(err, amazon.ErrItemNotReturned) {
			return errorJSON(c, http.StatusNotFound, "AMAZON_ITEM_NOT_FOUND", err.Error())
		}
		if err != nil {
			return errorJSON(c, errorStatus(err), errorCode(err), err.Error())
		}
		return c.JSON(http.StatusOK, item)
	}
}

// FilterText - POST /amazon/filter, renders the [amazon] markers of a text
func FilterText(appC *types.Config, lookup Lookup) echo.HandlerFunc {

	type filterInput struct {
		Text   string `json:"text"`
		Locale string `json:"locale,omitempty"`
	}

	return func(c echo.Context) (err error) {
		var input filterInput
		if err = c.Bind(&input); err != nil {
			return errorJSON(c, http.StatusBadRequest, "FILTER_INPUT_ERR", err.Error())
		}
		locale, err := requestLocale(appC, input.Locale)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "AMAZON_LOCALE_NOT_SUPPORTED", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()
		f := filter.New(lookup, locale, appC.ConfigData.Amazon.MaxAge())
		res, err := f.Process(ctx, input.Text)
		if err != nil {
			c.Response().Header().Set("X-Amazon-Lookup-Error", errorCode(err))
		}
		return c.JSON(http.StatusOK, res)
	}
}
