package domain

import "context"

// SlateHandler processes one inbound slate and returns the reply slate.
// The transaction-negotiation layer supplies the real implementation.
type SlateHandler func(ctx context.Context, slate Slate) (Slate, error)

// SlateSender delivers a slate to a live counterparty and returns the
// counterparty's reply. One round trip per call, at-most-once delivery,
// no internal retries; cancelling ctx closes the underlying connection.
type SlateSender interface {
	Send(ctx context.Context, slate Slate) (Slate, error)
}

// SlateReceiver serves inbound slate exchanges until ctx is cancelled,
// invoking handler once per exchange. Exchanges are independent and
// carry no state across requests.
type SlateReceiver interface {
	Listen(ctx context.Context, handler SlateHandler) error
}

// SlatePutter writes a slate to a passive medium with no live peer
// process (a file, a copy/paste buffer).
type SlatePutter interface {
	PutTx(slate Slate) error
}

// SlateGetter reads a slate back from a passive medium.
type SlateGetter interface {
	GetTx() (Slate, error)
}

// RelayClient talks to the store-and-forward slate relay. The relay is
// untrusted: it only ever sees opaque slates keyed by wallet address.
type RelayClient interface {
	PostSlate(ctx context.Context, env RelayEnvelope) error
	FetchSlates(ctx context.Context, addr WalletAddress, limit int) ([]RelayEnvelope, error)
	AckSlates(ctx context.Context, addr WalletAddress, count int) error
}

// Keychain exposes the key material the communication layer consumes.
// Seed storage and derivation internals stay behind this boundary.
type Keychain interface {
	// Address returns the wallet's stable identity address.
	Address() WalletAddress

	// ECDHPublic returns the public half of the session-negotiation key.
	ECDHPublic() ECDHPublicKey

	// SharedKey derives the AEAD session key shared with the holder of
	// peer's private counterpart.
	SharedKey(peer ECDHPublicKey) (SessionKey, error)

	// MaskToken returns the token masking the in-memory seed for this
	// session.
	MaskToken() MaskToken

	// Close wipes session key material.
	Close()
}

// NodeClient queries chain state. The communication layer does not call
// it directly; it is threaded through construction so callers can
// validate slates before and after transport.
type NodeClient interface {
	ChainHeight(ctx context.Context) (uint64, error)
}
