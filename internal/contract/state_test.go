package contract

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestState_RoundTrip(t *testing.T) {
	in := &State{MaxSize: 1000, ReminderCount: 7, PrngSeed: []byte{1, 2, 3, 4}}

	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	out := &State{}
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if out.MaxSize != in.MaxSize || out.ReminderCount != in.ReminderCount || !bytes.Equal(out.PrngSeed, in.PrngSeed) {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestReminder_RoundTrip(t *testing.T) {
	in := &Reminder{Content: []byte("hello"), Timestamp: 1_700_000_000}

	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	out := &Reminder{}
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if !bytes.Equal(out.Content, in.Content) || out.Timestamp != in.Timestamp {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

// Snapshot of the persisted Reminder layout: content as a u64 length-prefixed
// vector, then the u64 timestamp, all little-endian.
func TestReminder_EncodedLayout(t *testing.T) {
	in := &Reminder{Content: []byte("hi"), Timestamp: 2}

	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	expected := "0200000000000000" + "6869" + "0200000000000000"
	if hex.EncodeToString(b) != expected {
		t.Fatalf("expected %s, got %s", expected, hex.EncodeToString(b))
	}
}

func TestState_EncodingDeterministic(t *testing.T) {
	s := &State{MaxSize: 10, ReminderCount: 1, PrngSeed: []byte("seedseed")}

	a, _ := s.MarshalBinary()
	b, _ := s.MarshalBinary()
	if !bytes.Equal(a, b) {
		t.Fatal("encoding is not deterministic")
	}
}
