package contract

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/remindkeeper/internal/codec"
	"github.com/dmitrijs2005/remindkeeper/internal/common"
	"github.com/dmitrijs2005/remindkeeper/internal/viewingkey"
)

// Query dispatches a read-only operation. Queries carrying a viewing key are
// routed through the authenticated path by type.
func (c *Contract) Query(ctx context.Context, msg QueryMsg) (*QueryAnswer, error) {
	switch m := msg.(type) {
	case StatsMsg:
		return c.queryStats(ctx)
	case AuthenticatedQuery:
		return c.authenticatedQuery(ctx, m)
	default:
		return nil, fmt.Errorf("%w: unknown query message %T", common.ErrInternal, msg)
	}
}

// authenticatedQuery checks the presented key against every candidate
// identity in order, never short-circuiting. All failing paths, whether the
// identity has no stored key or the key does not match, perform the same
// constant-time comparison and end in the same ErrUnauthorized.
func (c *Contract) authenticatedQuery(ctx context.Context, q AuthenticatedQuery) (*QueryAnswer, error) {
	key := q.viewingKey()

	for _, addr := range q.candidates() {
		owner := CanonicalAddress(addr)

		stored, err := readViewingKey(ctx, c.store, owner)
		if err != nil {
			return nil, err
		}

		if stored == nil {
			// Checking a key takes measurable time. Run the same comparison
			// against a zero buffer so an unset key cannot be told apart
			// from a wrong one by timing the call.
			key.Check(make([]byte, viewingkey.KeySize))
		} else if key.Check(stored) {
			return q.run(ctx, c, owner)
		}
	}

	return nil, common.ErrUnauthorized
}

func (c *Contract) queryStats(ctx context.Context) (*QueryAnswer, error) {
	config := &State{}
	if err := codec.Load(ctx, c.store, configKey, config); err != nil {
		return nil, err
	}

	return &QueryAnswer{Stats: &StatsAnswer{ReminderCount: config.ReminderCount}}, nil
}
