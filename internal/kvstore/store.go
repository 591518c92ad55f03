// Package kvstore provides the flat byte-keyed storage a contract instance
// runs over, with in-memory, Postgres, and S3 backends plus length-framed
// namespace prefixing.
package kvstore

import "context"

// Store is an opaque byte-keyed store. Get returns (nil, nil) when the key is
// absent; a missing key is not an error. Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
}
