package contract

import (
	"context"

	"github.com/dmitrijs2005/remindkeeper/internal/codec"
	"github.com/dmitrijs2005/remindkeeper/internal/kvstore"
	"github.com/dmitrijs2005/remindkeeper/internal/viewingkey"
)

// Storage layout: the singleton State lives at configKey; reminders are keyed
// by raw identity bytes in the flat namespace; viewing-key hashes live under
// the length-framed viewingKeyPrefix namespace. This layout is part of the
// persisted format and must not change.
var (
	configKey        = []byte("config")
	viewingKeyPrefix = []byte("viewingkey")
)

// State is the singleton contract configuration plus usage counter.
type State struct {
	MaxSize       uint16
	ReminderCount uint64
	PrngSeed      []byte
}

func (s *State) MarshalBinary() ([]byte, error) {
	var w codec.Writer
	w.Uint16(s.MaxSize)
	w.Uint64(s.ReminderCount)
	w.Bytes(s.PrngSeed)
	return w.Encoded(), nil
}

func (s *State) UnmarshalBinary(b []byte) error {
	r := codec.NewReader(b)
	s.MaxSize = r.Uint16()
	s.ReminderCount = r.Uint64()
	s.PrngSeed = r.Bytes()
	return r.Err()
}

// Reminder is the per-identity record: an opaque payload and the timestamp of
// the call that stored it.
type Reminder struct {
	Content   []byte
	Timestamp uint64
}

func (r *Reminder) MarshalBinary() ([]byte, error) {
	var w codec.Writer
	w.Bytes(r.Content)
	w.Uint64(r.Timestamp)
	return w.Encoded(), nil
}

func (r *Reminder) UnmarshalBinary(b []byte) error {
	rd := codec.NewReader(b)
	r.Content = rd.Bytes()
	r.Timestamp = rd.Uint64()
	return rd.Err()
}

func writeViewingKey(ctx context.Context, store kvstore.Store, owner Identity, key viewingkey.Key) error {
	return kvstore.NewPrefixed(store, viewingKeyPrefix).Set(ctx, owner, key.ToHashed())
}

// readViewingKey returns the stored key hash for owner, or nil when the owner
// never generated a key.
func readViewingKey(ctx context.Context, store kvstore.Store, owner Identity) ([]byte, error) {
	return kvstore.NewPrefixed(store, viewingKeyPrefix).Get(ctx, owner)
}
