package domain

// RelayEnvelope is the unit stored and forwarded by the slate relay.
// The slate inside is opaque to the relay; only the routing addresses
// and timestamp are meaningful to it.
type RelayEnvelope struct {
	From      WalletAddress `json:"from"`
	To        WalletAddress `json:"to"`
	Slate     Slate         `json:"slate"`
	Timestamp int64         `json:"timestamp"`
}
