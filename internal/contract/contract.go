// Package contract implements the reminder contract state machine: init,
// record/read/generate-viewing-key handles, and stats/authenticated-read
// queries, over an opaque byte-keyed store.
//
// The host is expected to serialize calls; no operation here locks.
package contract

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/remindkeeper/internal/codec"
	"github.com/dmitrijs2005/remindkeeper/internal/common"
	"github.com/dmitrijs2005/remindkeeper/internal/kvstore"
	"github.com/dmitrijs2005/remindkeeper/internal/viewingkey"
)

// Response status strings. Part of the external contract; do not reword.
const (
	StatusRecorded = "Reminder recorded!"
	StatusTooLong  = "Message is too long. Reminder not recorded."
	StatusFound    = "Reminder found."
	StatusNotFound = "Reminder not found."
)

type Contract struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Contract {
	return &Contract{store: store}
}

// validMaxSize bounds the reminder size limit to 1..65535.
func validMaxSize(v int32) (uint16, bool) {
	if v < 1 || v > 0xFFFF {
		return 0, false
	}
	return uint16(v), true
}

// Init validates the configuration and persists the initial State. The seed
// is hashed once here; the raw init-time seed is never stored.
func (c *Contract) Init(ctx context.Context, msg InitMsg) error {
	maxSize, ok := validMaxSize(msg.MaxSize)
	if !ok {
		return fmt.Errorf("%w: invalid max_size, must be in the range of 1..65535", common.ErrInvalidConfig)
	}

	seed := sha256.Sum256([]byte(base64.StdEncoding.EncodeToString([]byte(msg.PrngSeed))))

	config := &State{
		MaxSize:       maxSize,
		ReminderCount: 0,
		PrngSeed:      seed[:],
	}

	return codec.Save(ctx, c.store, configKey, config)
}

// Initialized reports whether Init has already run against this store.
func (c *Contract) Initialized(ctx context.Context) (bool, error) {
	return codec.MayLoad(ctx, c.store, configKey, &State{})
}

// Handle dispatches a state-mutating operation.
func (c *Contract) Handle(ctx context.Context, env Env, msg HandleMsg) (*HandleAnswer, error) {
	switch m := msg.(type) {
	case RecordMsg:
		return c.tryRecord(ctx, env, m.Reminder)
	case ReadMsg:
		return c.tryRead(ctx, env)
	case GenerateViewingKeyMsg:
		return c.tryGenerateViewingKey(ctx, env, m.Entropy)
	default:
		return nil, fmt.Errorf("%w: unknown handle message %T", common.ErrInternal, msg)
	}
}

// tryRecord stores the sender's reminder and bumps the counter. An oversized
// payload is a soft condition: the status reports it and nothing is written.
func (c *Contract) tryRecord(ctx context.Context, env Env, reminder string) (*HandleAnswer, error) {
	content := []byte(reminder)

	config := &State{}
	if err := codec.Load(ctx, c.store, configKey, config); err != nil {
		return nil, err
	}

	var status string
	if len(content) > int(config.MaxSize) {
		status = StatusTooLong
	} else {
		stored := &Reminder{Content: content, Timestamp: env.BlockTime}
		if err := codec.Save(ctx, c.store, env.Sender, stored); err != nil {
			return nil, err
		}

		config.ReminderCount++
		if err := codec.Save(ctx, c.store, configKey, config); err != nil {
			return nil, err
		}

		status = StatusRecorded
	}

	return &HandleAnswer{Record: &RecordAnswer{Status: status}}, nil
}

// tryRead returns the sender's own reminder; identity comes from the host
// call context, no credential involved.
func (c *Contract) tryRead(ctx context.Context, env Env) (*HandleAnswer, error) {
	answer, err := c.readReminder(ctx, env.Sender)
	if err != nil {
		return nil, err
	}
	return &HandleAnswer{Read: answer}, nil
}

func (c *Contract) tryGenerateViewingKey(ctx context.Context, env Env, entropy string) (*HandleAnswer, error) {
	config := &State{}
	if err := codec.Load(ctx, c.store, configKey, config); err != nil {
		return nil, err
	}

	key := viewingkey.New(config.PrngSeed, keyEntropy(env, []byte(entropy)))

	if err := writeViewingKey(ctx, c.store, env.Sender, key); err != nil {
		return nil, err
	}

	return &HandleAnswer{GenerateViewingKey: &GenerateViewingKeyAnswer{Key: key}}, nil
}

// keyEntropy mixes environmental randomness the caller cannot precompute
// (call height and time, sender identity) with the caller-supplied entropy.
func keyEntropy(env Env, entropy []byte) []byte {
	out := make([]byte, 0, 16+len(env.Sender)+len(entropy))
	out = binary.BigEndian.AppendUint64(out, env.BlockHeight)
	out = binary.BigEndian.AppendUint64(out, env.BlockTime)
	out = append(out, env.Sender...)
	return append(out, entropy...)
}

func (c *Contract) readReminder(ctx context.Context, owner Identity) (*ReadAnswer, error) {
	rem := &Reminder{}
	found, err := codec.MayLoad(ctx, c.store, owner, rem)
	if err != nil {
		return nil, err
	}

	answer := &ReadAnswer{Status: StatusNotFound}
	if found {
		content := string(rem.Content)
		timestamp := rem.Timestamp
		answer.Status = StatusFound
		answer.Reminder = &content
		answer.Timestamp = &timestamp
	}

	return answer, nil
}
