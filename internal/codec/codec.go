// Package codec implements the deterministic binary record encoding used for
// persisted contract state, and the load/save helpers composing it with a
// kvstore.Store.
//
// The layout is fixed little-endian with u64 length-prefixed byte vectors and
// no padding, so a record always round-trips to the same bytes and stays
// compatible with the existing at-rest data.
package codec

import (
	"context"
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/remindkeeper/internal/common"
	"github.com/dmitrijs2005/remindkeeper/internal/kvstore"
)

// Record is any value with a fixed binary layout.
type Record interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// Writer builds a record's binary form field by field.
type Writer struct {
	buf []byte
}

func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Bytes writes a byte vector framed by its u64 length.
func (w *Writer) Bytes(v []byte) {
	w.Uint64(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *Writer) Encoded() []byte {
	return w.buf
}

// Reader consumes a record's binary form. Every read is bounds-checked; the
// first failure sticks and surfaces from Err.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) Uint16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *Reader) Uint64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *Reader) Bytes() []byte {
	n := r.Uint64()
	if r.err != nil {
		return nil
	}
	if n > uint64(len(r.buf)-r.off) {
		r.fail()
		return nil
	}
	v := make([]byte, n)
	copy(v, r.buf[r.off:])
	r.off += int(n)
	return v
}

// Err finishes the read. Trailing bytes count as a layout mismatch: a valid
// record is consumed exactly.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d trailing bytes", common.ErrDecode, len(r.buf)-r.off)
	}
	return nil
}

func (r *Reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if len(r.buf)-r.off < n {
		r.fail()
		return false
	}
	return true
}

func (r *Reader) fail() {
	r.err = fmt.Errorf("%w: truncated record", common.ErrDecode)
}

// Save serializes the record and writes it to the store under key.
func Save(ctx context.Context, store kvstore.Store, key []byte, rec Record) error {
	b, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	return store.Set(ctx, key, b)
}

// Load reads and deserializes the record stored under key. Returns
// common.ErrNotFound when the key is absent and common.ErrDecode when the
// stored bytes do not match the record's layout.
func Load(ctx context.Context, store kvstore.Store, key []byte, rec Record) error {
	b, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: %T", common.ErrNotFound, rec)
	}
	if err := rec.UnmarshalBinary(b); err != nil {
		return err
	}
	return nil
}

// MayLoad is the non-failing variant of Load: absence is reported as
// (false, nil) instead of an error.
func MayLoad(ctx context.Context, store kvstore.Store, key []byte, rec Record) (bool, error) {
	b, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := rec.UnmarshalBinary(b); err != nil {
		return false, err
	}
	return true, nil
}
