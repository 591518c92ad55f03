package contract

// Env carries the per-call execution environment supplied by the host:
// the authenticated sender and randomness the caller cannot predict in
// advance of the call.
type Env struct {
	// BlockHeight is a monotonic call counter maintained by the host.
	BlockHeight uint64

	// BlockTime is the call timestamp in seconds since epoch.
	BlockTime uint64

	// Sender is the caller's canonical identity, established by the host's
	// own authentication of the call.
	Sender Identity
}
