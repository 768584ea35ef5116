package ecs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// encodeRFC3986 percent-encodes s per RFC 3986. QueryEscape already leaves
// "~" alone, only the form encoding of space has to be undone.
func encodeRFC3986(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// canonicalQuery joins encoded key=value pairs in byte order of the keys.
// Repeated values for one key are joined with ",".
func canonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, encodeRFC3986(k)+"="+encodeRFC3986(strings.Join(params[k], ",")))
	}
	return strings.Join(pairs, "&")
}

// hmacSHA256 - base64 encoded HMAC-SHA256 of data
func hmacSHA256(key string, data string) string {
	hasher := hmac.New(sha256.New, []byte(key))
	hasher.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(hasher.Sum(nil))
}

// ChunkIDs splits ids into consecutive chunks of at most size, keeping order
func ChunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
