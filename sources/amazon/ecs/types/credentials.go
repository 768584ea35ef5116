package types

import (
	"os"
	"strings"
)

// Environment variables consulted before any explicit or stored value
const (
	EnvAccessKey    = "AMAZON_ACCESS_KEY"
	EnvSecretKey    = "AMAZON_SECRET_KEY"
	EnvAssociateTag = "AMAZON_ASSOCIATE_TAG"
)

// Credentials sign and attribute requests
type Credentials struct {
	AccessKeyID  string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	AssociateTag string `json:"associate_tag"`
}

// ResolveCredentials picks each field from the environment first, then the
// explicit value, then the stored value. Empty results are reported later,
// when a request is built.
func ResolveCredentials(explicit, stored Credentials) Credentials {
	return Credentials{
		AccessKeyID:  firstNonEmpty(os.Getenv(EnvAccessKey), explicit.AccessKeyID, stored.AccessKeyID),
		SecretKey:    firstNonEmpty(os.Getenv(EnvSecretKey), explicit.SecretKey, stored.SecretKey),
		AssociateTag: firstNonEmpty(os.Getenv(EnvAssociateTag), explicit.AssociateTag, stored.AssociateTag),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
