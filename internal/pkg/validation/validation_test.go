package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("alice"))
	assert.True(t, IsValidAddress("acct:treasury.main"))
	assert.False(t, IsValidAddress("a"))
	assert.False(t, IsValidAddress("has space"))
	assert.False(t, IsValidAddress(""))
}

func TestIsValidSymbol(t *testing.T) {
	assert.True(t, IsValidSymbol("ABC"))
	assert.False(t, IsValidSymbol(""))
	assert.False(t, IsValidSymbol("AB-C"))
}

func TestIsValidSecret(t *testing.T) {
	assert.True(t, IsValidSecret("hunter22x"))
	assert.False(t, IsValidSecret("short1"))
	assert.False(t, IsValidSecret("lettersonly"))
	assert.False(t, IsValidSecret("12345678"))
}
