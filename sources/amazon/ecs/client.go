package ecs

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	cerr "github.com/Semantics3/go-amazon-media/composable_error"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/utils"
)

const (
	DefaultVersion       string = "2013-08-01"
	DefaultResponseGroup string = "Large"
)

type (
	// HTTPDoer is satisfied by *http.Client
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}

	// Clock supplies the request timestamp
	Clock interface {
		Now() time.Time
	}

	systemClock struct{}

	// Settings are the request options shared by every call of a Client
	Settings struct {
		Version          string
		ResponseGroup    string
		ParticipantTypes []string
		ImageSizes       []string
		// Endpoint replaces the locale endpoint when its Host is set
		Endpoint types.LocaleEndpoint
	}

	// Client represents the credentials and collaborators needed to make
	// requests to amazon
	Client struct {
		creds    types.Credentials
		settings Settings
		http     HTTPDoer
		clock    Clock
		decoder  *Decoder
	}

	// Option configures a Client
	Option func(*Client)

	// RawResponse is a vendor response before decoding
	RawResponse struct {
		StatusCode int
		Body       []byte
	}

	// VendorError is a structured error payload returned by amazon
	VendorError struct {
		StatusCode int
		Errors     []types.ErrorMessage
	}
)

func (systemClock) Now() time.Time { return time.Now() }

func (e *VendorError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, m := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", m.Code, m.Message))
	}
	return fmt.Sprintf("AMAZON_VENDOR_ERR: status %d, %s", e.StatusCode, strings.Join(msgs, "; "))
}

// InvalidASINs lists the ASINs rejected as ItemId values
func (e *VendorError) InvalidASINs() []string {
	return invalidASINs(e.Errors)
}

// Code is the normalized code of the first error
func (e *VendorError) Code() string {
	if len(e.Errors) == 0 {
		return "AMAZON_VENDOR_ERR"
	}
	return types.NormalizeErrorCode(e.Errors[0].Code)
}

// WithHTTPClient - replace the default http client
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.http = doer }
}

// WithClock - replace the system clock
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// NewClient - New Amazon API client. Credentials are only checked when a
// request is built.
func NewClient(creds types.Credentials, settings Settings, opts ...Option) *Client {
	if settings.Version == "" {
		settings.Version = DefaultVersion
	}
	if settings.ResponseGroup == "" {
		settings.ResponseGroup = DefaultResponseGroup
	}
	c := &Client{
		creds:    creds,
		settings: settings,
		http:     http.DefaultClient,
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.decoder = NewDecoder(settings.ParticipantTypes, settings.ImageSizes)
	return c
}

// Decoder returns the decoder configured from the client settings
func (c *Client) Decoder() *Decoder {
	return c.decoder
}

// Endpoint resolves where requests for a locale go
func (c *Client) Endpoint(locale types.Locale) (types.LocaleEndpoint, error) {
	if c.settings.Endpoint.Host != "" {
		e := c.settings.Endpoint
		if e.Scheme == "" {
			e.Scheme = "http"
		}
		if e.Path == "" {
			e.Path = "/onca/xml"
		}
		if e.Code == "" {
			e.Code = locale
		}
		return e, nil
	}
	e, ok := locale.Endpoint()
	if !ok {
		return e, cerr.Configuration("AMAZON_LOCALE_NOT_SUPPORTED", fmt.Sprintf("unsupported locale: %s", locale))
	}
	return e, nil
}

// SignedURL - signed url for an operation against a locale
func (c *Client) SignedURL(locale types.Locale, operation types.Operation, params url.Values) (string, error) {
	endpoint, err := c.Endpoint(locale)
	if err != nil {
		return "", err
	}
	return SignURL(operation, params, endpoint, c.creds, c.settings.Version, c.clock.Now())
}

// Execute issues a single GET for a signed url. Failures are a
// TransportError, a DecodeError or a *VendorError.
func (c *Client) Execute(ctx context.Context, signedURL string) (*RawResponse, error) {
	start := time.Now()
	req, err := http.NewRequest("GET", signedURL, nil)
	if err != nil {
		return nil, cerr.Configuration("AMAZON_REQUEST_BUILD_ERR", "signed url could not be parsed")
	}
	if ctx != nil {
		req = req.WithContext(ctx)
	}

	response, err := c.http.Do(req)
	if err != nil {
		err = withoutURL(err)
		utils.PrintResponseDetails(0, fmt.Sprintf("AMAZON_RESPONSE: Host: %s, Error: %v, RoundTrip: %f", req.URL.Host, err, utils.ComputeDuration(start)))
		return nil, cerr.Transport("AMAZON_REQUEST_ERR", fmt.Sprintf("GET %s failed", req.URL.Host), err)
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, cerr.Transport("AMAZON_BODY_READ_ERR", "reading response body failed", err)
	}

	status := response.StatusCode
	utils.PrintResponseDetails(status, fmt.Sprintf("AMAZON_RESPONSE: Host: %s, Operation: %s, Status: %d, Bytes: %d, RoundTrip: %f",
		req.URL.Host, req.URL.Query().Get("Operation"), status, len(body), utils.ComputeDuration(start)))

	raw := &RawResponse{StatusCode: status, Body: body}
	switch {
	case status == http.StatusOK:
		return raw, nil
	case status >= 400 && status < 500:
		errs, err := DecodeErrors(body)
		if err != nil {
			return raw, cerr.Decode("AMAZON_ERROR_DECODE_ERR", fmt.Sprintf("status %d with unreadable error body", status), err)
		}
		if len(errs) == 0 {
			return raw, cerr.Decode("AMAZON_ERROR_DECODE_ERR", fmt.Sprintf("status %d without an error payload", status), nil)
		}
		return raw, &VendorError{StatusCode: status, Errors: errs}
	}
	return raw, cerr.Transport("AMAZON_HTTP_STATUS_ERR", fmt.Sprintf("unexpected status %d", status), nil)
}

// withoutURL drops the signed url net/http puts in its errors. The url
// carries the access key and a replayable signature.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
