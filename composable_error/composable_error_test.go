package composable_error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	err := New("AMAZON_REQUEST_ERR", "request failed")
	assert.Equal(t, "AMAZON_REQUEST_ERR", GetCode(err))
	assert.Equal(t, "DEFAULT", GetCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, "AMAZON_REQUEST_ERR", GetCode(wrapped))
}

func TestComposeWith(t *testing.T) {
	err := ComposeWith(New("REQUEST_ERR", "timeout"), "AMAZON", "chunk 2")
	assert.Equal(t, "AMAZON_REQUEST_ERR", GetCode(err))
	assert.Equal(t, "[AMAZON_REQUEST_ERR] chunk 2, timeout", err.Error())

	plain := errors.New("plain")
	assert.Equal(t, plain, ComposeWith(plain, "AMAZON", "ignored"))
}

func TestKinds(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := Transport("AMAZON_TRANSPORT_ERR", "GET failed", cause)

	assert.True(t, IsKind(err, KindTransport))
	assert.False(t, IsKind(err, KindDecode))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "no such host")

	assert.True(t, IsKind(Configuration("AMAZON_SECRET_KEY_NOT_FOUND", "missing"), KindConfiguration))
	assert.True(t, IsKind(Decode("AMAZON_XML_ERR", "bad body", nil), KindDecode))
	assert.Equal(t, KindDefault, New("X", "y").Kind())
	assert.False(t, IsKind(nil, KindDefault))
}
