package types

import (
	"regexp"
	"strings"
)

var invalidItemIDRegex = regexp.MustCompile(`^([^ ]+) is not a valid value for ItemId`)

// ErrorMessage is one <Error> element of a vendor response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ASINFromError returns the ASIN named by an invalid ItemId message
func ASINFromError(message string) (string, bool) {
	res := invalidItemIDRegex.FindStringSubmatch(strings.TrimSpace(message))
	if len(res) < 2 {
		return "", false
	}
	return res[1], true
}

// NormalizeErrorCode maps vendor codes onto the codes used in logs and metrics
func NormalizeErrorCode(code string) string {
	switch code {
	case "AWS.InvalidParameterValue":
		return "AMAZON_INVALID_PARAMETER"
	case "AWS.ECommerceService.NoExactMatches", "AWS.ECommerceService.ItemNotAccessible":
		return "DOES_NOT_EXIST"
	case "RequestThrottled", "AWS.ECommerceService.RequestThrottled":
		return "AMAZON_RATELIMIT"
	case "InvalidClientTokenId", "SignatureDoesNotMatch", "AWS.InvalidAccount", "AWS.MissingParameters":
		return "AMAZON_AUTH_ERR"
	}
	return "AMAZON_VENDOR_ERR"
}
