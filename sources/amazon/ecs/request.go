package ecs

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	cerr "github.com/Semantics3/go-amazon-media/composable_error"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

type (
	// request carries one operation through build and sign
	request struct {
		operation types.Operation
		params    url.Values
		endpoint  types.LocaleEndpoint
		creds     types.Credentials
		version   string
		dateTime  time.Time
		query     string
		signedURL string
		error     error
	}
)

const (
	serviceName     string = "AWSECommerceService"
	timestampFormat string = "2006-01-02T15:04:05Z"
)

// SignURL builds the fully qualified signed URL for an operation.
// The result depends only on its arguments, now included.
func SignURL(operation types.Operation, params url.Values, endpoint types.LocaleEndpoint, creds types.Credentials, version string, now time.Time) (string, error) {
	r := &request{
		operation: operation,
		params:    params,
		endpoint:  endpoint,
		creds:     creds,
		version:   version,
		dateTime:  now.UTC(),
	}
	r.build().sign()
	return r.signedURL, r.error
}

// build merges defaults under the caller's parameters and computes the
// canonical query string
// reference: https://docs.aws.amazon.com/AWSECommerceService/latest/DG/rest-signature.html
func (r *request) build() *request {
	switch {
	case r.creds.AccessKeyID == "":
		r.error = cerr.Configuration("AMAZON_ACCESS_KEY_NOT_FOUND", "access key is not configured")
		return r
	case r.creds.SecretKey == "":
		r.error = cerr.Configuration("AMAZON_SECRET_KEY_NOT_FOUND", "secret key is not configured")
		return r
	case r.creds.AssociateTag == "":
		r.error = cerr.Configuration("AMAZON_ASSOCIATE_TAG_NOT_FOUND", "associate tag is not configured")
		return r
	}
	if err := r.operation.Validate(); err != nil {
		r.error = cerr.Configuration("AMAZON_OPERATION_ERR", err.Error())
		return r
	}
	if r.endpoint.Host == "" {
		r.error = cerr.Configuration("AMAZON_ENDPOINT_NOT_FOUND", "no endpoint host to sign for")
		return r
	}

	defaults := map[string]string{
		"Service":        serviceName,
		"Version":        r.version,
		"AWSAccessKeyId": r.creds.AccessKeyID,
		"Operation":      string(r.operation),
		"AssociateTag":   r.creds.AssociateTag,
	}

	merged := url.Values{}
	for key, val := range defaults {
		if val != "" {
			merged.Set(key, val)
		}
	}
	for key, vals := range r.params {
		if key == "Signature" || key == "Timestamp" || len(vals) == 0 {
			continue
		}
		merged[key] = append([]string(nil), vals...)
	}
	merged.Set("Timestamp", r.dateTime.Format(timestampFormat))

	r.query = canonicalQuery(merged)
	return r
}

// stringToSign - GET, host, path and query, newline separated
func (r *request) stringToSign() string {
	return strings.Join(
		[]string{
			"GET",
			strings.ToLower(r.endpoint.Host),
			r.endpoint.Path,
			r.query,
		},
		"\n",
	)
}

// sign - calculate signature and append it to the url
func (r *request) sign() *request {
	if r.error != nil {
		return r
	}
	signature := hmacSHA256(r.creds.SecretKey, r.stringToSign())
	r.signedURL = fmt.Sprintf("%s://%s%s?%s&Signature=%s",
		r.endpoint.Scheme, r.endpoint.Host, r.endpoint.Path, r.query, encodeRFC3986(signature))
	return r
}
