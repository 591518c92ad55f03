package kvstore

import (
	"context"
	"encoding/binary"
)

// PrefixedStore partitions a Store into a logical namespace by prepending a
// fixed prefix to every key. The prefix embeds the namespace length as a
// 2-byte big-endian header, so a variable-length key in one namespace can
// never alias a key in another.
type PrefixedStore struct {
	prefix []byte
	inner  Store
}

func NewPrefixed(inner Store, namespace []byte) *PrefixedStore {
	return &PrefixedStore{prefix: lengthPrefixed(namespace), inner: inner}
}

func (s *PrefixedStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *PrefixedStore) Set(ctx context.Context, key, value []byte) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *PrefixedStore) key(key []byte) []byte {
	out := make([]byte, 0, len(s.prefix)+len(key))
	out = append(out, s.prefix...)
	return append(out, key...)
}

// lengthPrefixed frames a namespace as [len_be16 | namespace]. Namespaces are
// short fixed tags; anything longer than 65535 bytes is a programming error.
func lengthPrefixed(namespace []byte) []byte {
	if len(namespace) > 0xFFFF {
		panic("kvstore: namespace too long")
	}
	out := make([]byte, 2+len(namespace))
	binary.BigEndian.PutUint16(out, uint16(len(namespace)))
	copy(out[2:], namespace)
	return out
}

var _ Store = (*PrefixedStore)(nil)
