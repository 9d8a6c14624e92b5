// internal/models/principal.go
package models

import (
	"regexp"
	"strings"
)

// Principal is an opaque account identity in the external protocol,
// carried as a 0x-prefixed hex address.
type Principal string

const ZeroPrincipal Principal = "0x0000000000000000000000000000000000000000"

var principalPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NewPrincipal normalizes and validates a raw address string. The empty
// string maps to the zero principal.
func NewPrincipal(s string) (Principal, bool) {
	if s == "" {
		return ZeroPrincipal, true
	}
	if !principalPattern.MatchString(s) {
		return ZeroPrincipal, false
	}
	return Principal(strings.ToLower(s)), true
}

func (p Principal) String() string {
	return string(p)
}

func (p Principal) IsZero() bool {
	return p == "" || p == ZeroPrincipal
}

func IsValidPrincipal(s string) bool {
	return principalPattern.MatchString(s)
}
