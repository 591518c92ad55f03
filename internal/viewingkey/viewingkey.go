// Package viewingkey implements bearer read-access credentials: derivation of
// a per-identity token from the contract seed plus caller entropy, one-way
// hashing for storage, and constant-time verification.
package viewingkey

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/chacha20"

	"github.com/dmitrijs2005/remindkeeper/internal/common"
)

// KeySize is the length in bytes of a stored key hash.
const KeySize = sha256.Size

const keyPrefix = "api_key_"

// Key is the printable token handed to the caller exactly once. Only its
// hash is ever persisted.
type Key string

// New derives a key from the contract-wide seed and the per-call entropy.
// The entropy is expected to mix caller-supplied bytes with environmental
// randomness the caller cannot predict (block height/time, sender identity).
//
// Derivation: a ChaCha20 keystream keyed by sha256(seed || entropy) produces
// a 32-byte random slice; the token is "api_key_" + base64(sha256(rand)).
func New(seed, entropy []byte) Key {
	material := make([]byte, 0, len(seed)+len(entropy))
	material = append(material, seed...)
	material = append(material, entropy...)
	prngKey := sha256.Sum256(material)

	c, err := chacha20.NewUnauthenticatedCipher(prngKey[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed, so this cannot fail
		panic(err)
	}

	rand := make([]byte, KeySize)
	c.XORKeyStream(rand, rand)

	digest := sha256.Sum256(rand)

	// Neither the key material nor the raw random slice should outlive the call.
	common.WipeByteArray(material)
	common.WipeByteArray(rand)

	return Key(keyPrefix + base64.StdEncoding.EncodeToString(digest[:]))
}

// ToHashed returns the one-way hash of the key that is persisted in place of
// the token itself.
func (k Key) ToHashed() []byte {
	digest := sha256.Sum256([]byte(k))
	return digest[:]
}

// Check recomputes the hash of the presented key and compares it to the
// stored hash in constant time: the comparison touches every byte regardless
// of where a mismatch occurs.
func (k Key) Check(hashed []byte) bool {
	return subtle.ConstantTimeCompare(k.ToHashed(), hashed) == 1
}
