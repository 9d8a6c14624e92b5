// internal/models/principal_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPrincipal(t *testing.T) {
	p, ok := NewPrincipal("0xAbCdEf0123456789abcdef0123456789ABCDEF01")
	assert.True(t, ok)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", p.String())

	_, ok = NewPrincipal("abcdef0123456789abcdef0123456789abcdef01")
	assert.False(t, ok)

	_, ok = NewPrincipal("0x1234")
	assert.False(t, ok)

	p, ok = NewPrincipal("")
	assert.True(t, ok)
	assert.True(t, p.IsZero())
}

func TestPrincipalIsZero(t *testing.T) {
	assert.True(t, ZeroPrincipal.IsZero())
	assert.True(t, Principal("").IsZero())

	p, _ := NewPrincipal("0x0000000000000000000000000000000000000001")
	assert.False(t, p.IsZero())
}
