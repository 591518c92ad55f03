package contract

import (
	"context"

	"github.com/dmitrijs2005/remindkeeper/internal/viewingkey"
)

// InitMsg configures a fresh contract instance.
type InitMsg struct {
	// MaxSize bounds reminder payload length; valid values are 1..65535.
	MaxSize int32 `json:"max_size"`
	// PrngSeed seeds viewing-key derivation. Stored hashed, never raw.
	PrngSeed string `json:"prng_seed"`
}

// HandleMsg is the closed set of state-mutating operations.
type HandleMsg interface{ isHandleMsg() }

// RecordMsg stores a reminder for the sender.
type RecordMsg struct {
	Reminder string `json:"reminder"`
}

// ReadMsg requests the sender's own reminder.
type ReadMsg struct{}

// GenerateViewingKeyMsg issues a fresh viewing key for the sender.
type GenerateViewingKeyMsg struct {
	Entropy string `json:"entropy"`
	// Padding only obfuscates the entropy length on the wire.
	Padding *string `json:"padding,omitempty"`
}

func (RecordMsg) isHandleMsg()             {}
func (ReadMsg) isHandleMsg()               {}
func (GenerateViewingKeyMsg) isHandleMsg() {}

// QueryMsg is the closed set of read-only operations.
type QueryMsg interface{ isQueryMsg() }

// StatsMsg requests usage statistics; no credential needed.
type StatsMsg struct{}

func (StatsMsg) isQueryMsg() {}

// AuthenticatedQuery is the subset of queries that carry a viewing key. Only
// these can reach the authenticated router, so a non-authenticated query in
// the authenticated path is unrepresentable.
type AuthenticatedQuery interface {
	QueryMsg

	// candidates lists the identities whose stored key hashes the presented
	// credential is checked against, in order.
	candidates() []string

	// viewingKey is the presented credential.
	viewingKey() viewingkey.Key

	// run executes the query for the identity whose check succeeded.
	run(ctx context.Context, c *Contract, owner Identity) (*QueryAnswer, error)
}

// AuthReadMsg reads the reminder of address, authenticated by a viewing key
// instead of the host call context.
type AuthReadMsg struct {
	Address string `json:"address"`
	Key     string `json:"key"`
}

func (AuthReadMsg) isQueryMsg() {}

func (m AuthReadMsg) candidates() []string { return []string{m.Address} }

func (m AuthReadMsg) viewingKey() viewingkey.Key { return viewingkey.Key(m.Key) }

func (m AuthReadMsg) run(ctx context.Context, c *Contract, owner Identity) (*QueryAnswer, error) {
	answer, err := c.readReminder(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &QueryAnswer{Read: answer}, nil
}

// HandleAnswer is the response union for handle operations; exactly one field
// is set.
type HandleAnswer struct {
	Record             *RecordAnswer             `json:"record,omitempty"`
	Read               *ReadAnswer               `json:"read,omitempty"`
	GenerateViewingKey *GenerateViewingKeyAnswer `json:"generate_viewing_key,omitempty"`
}

type RecordAnswer struct {
	Status string `json:"status"`
}

type ReadAnswer struct {
	Status    string  `json:"status"`
	Reminder  *string `json:"reminder,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type GenerateViewingKeyAnswer struct {
	Key viewingkey.Key `json:"key"`
}

// QueryAnswer is the response union for queries; exactly one field is set.
type QueryAnswer struct {
	Stats *StatsAnswer `json:"stats,omitempty"`
	Read  *ReadAnswer  `json:"read,omitempty"`
}

type StatsAnswer struct {
	ReminderCount uint64 `json:"reminder_count"`
}
