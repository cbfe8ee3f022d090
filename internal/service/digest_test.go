package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDigester(t *testing.T) {
	digester := NewEmailDigester("secret")

	assert.Equal(t, digester.Digest("ana@x.com"), digester.Digest("ana@x.com"))
	assert.Equal(t, digester.Digest("ana@x.com"), digester.Digest("  ANA@X.COM  "))
	assert.NotEqual(t, digester.Digest("ana@x.com"), digester.Digest("bia@x.com"))

	other := NewEmailDigester("other-secret")
	assert.NotEqual(t, digester.Digest("ana@x.com"), other.Digest("ana@x.com"))
}
