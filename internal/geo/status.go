package geo

// QueryState is the lifecycle state of satellite data requested from the
// archive. States advance new → pending → incomplete → available → processed;
// unavailable and invalid are terminal.
type QueryState string

const (
	// StateProcessed marks data that has been consumed and may be evicted
	// from archive storage.
	StateProcessed QueryState = "processed"

	// StateAvailable marks data present in archive storage.
	StateAvailable QueryState = "available"

	// StateIncomplete marks data whose download into storage has started but
	// not finished.
	StateIncomplete QueryState = "incomplete"

	// StatePending marks data that is online but not in storage; a retrieval
	// request has already been made.
	StatePending QueryState = "pending"

	// StateNew marks a request that has not been processed yet.
	StateNew QueryState = "new"

	// StateUnavailable marks data that is neither in storage nor online.
	StateUnavailable QueryState = "unavailable"

	// StateInvalid marks an identifier that relates to no data at all.
	StateInvalid QueryState = "invalid"
)

// Ready reports whether the state carries usable data.
func (s QueryState) Ready() bool {
	return s == StateAvailable || s == StateProcessed
}

// Terminal reports whether waiting longer can still change the state.
func (s QueryState) Terminal() bool {
	switch s {
	case StateProcessed, StateUnavailable, StateInvalid:
		return true
	default:
		return false
	}
}
