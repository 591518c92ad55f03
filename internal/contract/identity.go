package contract

import (
	"crypto/sha256"
	"strings"
)

// IdentitySize is the length of a canonical identity in bytes.
const IdentitySize = 20

// Identity is the canonical, fixed-length binary form of a caller, resolved
// by the host from a human-readable address. It is used directly as a storage
// key component.
type Identity []byte

// CanonicalAddress derives the canonical identity for a human-readable
// address. Case differences in the address map to the same identity.
func CanonicalAddress(addr string) Identity {
	h := sha256.Sum256([]byte(strings.ToLower(addr)))
	return Identity(h[:IdentitySize])
}
