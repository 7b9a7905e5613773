package adapters

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gopkg.in/op/go-logging.v1"

	"emberwallet/internal/domain"
)

// Relay poll defaults, matching the config layer's fixup values.
const (
	defaultPollInterval = time.Second
	defaultPollDeadline = time.Minute
)

// Options carries the configuration transport construction needs. The
// values come from the wallet config and the unlocked keychain; nothing
// here is global state.
type Options struct {
	// RelayURL is the relay base URL; required for address destinations.
	RelayURL string

	// OurAddress is the local wallet address, used as the reply-to key
	// on the relay channel.
	OurAddress domain.WalletAddress

	// SocksAddress is the local SOCKS5 proxy for onion destinations.
	SocksAddress string

	// PollInterval and PollDeadline bound relay polling.
	PollInterval time.Duration
	PollDeadline time.Duration

	// SharedKey, when set, wraps HTTP exchanges in the secure channel.
	SharedKey *domain.SessionKey

	// HTTPClient overrides the default client for plain HTTP sending.
	HTTPClient *http.Client

	// Log receives transport diagnostics; may be nil.
	Log *logging.Logger
}

// NewSlateSender selects the transport variant for destination: an
// http(s) URL gets the direct sender, an onion name is routed through
// the SOCKS proxy, and a bare wallet address goes through the relay.
// Selection is a plain dispatch on the destination's shape.
func NewSlateSender(destination string, opts Options) (domain.SlateSender, error) {
	switch {
	case isOnion(destination):
		return NewTorSlateSender(destination, opts.SocksAddress, opts.SharedKey)

	case strings.HasPrefix(destination, "http://") || strings.HasPrefix(destination, "https://"):
		return NewHTTPSlateSender(destination, opts.SharedKey, opts.HTTPClient), nil

	case domain.IsAddress(destination):
		if opts.RelayURL == "" {
			return nil, fmt.Errorf("%w: destination is a wallet address but no relay is configured", domain.ErrTransport)
		}
		peer, err := domain.ParseAddress(destination)
		if err != nil {
			return nil, err
		}
		// Zero timings would make the poll ticker unusable; fall back to
		// the same defaults the config layer applies.
		interval, deadline := opts.PollInterval, opts.PollDeadline
		if interval <= 0 {
			interval = defaultPollInterval
		}
		if deadline <= 0 {
			deadline = defaultPollDeadline
		}
		return &RelayChannel{
			Client:       NewRelayHTTPClient(opts.RelayURL, opts.HTTPClient),
			OurAddress:   opts.OurAddress,
			PeerAddress:  peer,
			PollInterval: interval,
			PollDeadline: deadline,
			Log:          opts.Log,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unrecognized destination %q (want URL, onion address, or wallet address)", domain.ErrTransport, destination)
	}
}
