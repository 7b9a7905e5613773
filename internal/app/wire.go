package app

import (
	"net/http"
	"time"

	"gopkg.in/op/go-logging.v1"

	"emberwallet/internal/adapters"
	"emberwallet/internal/config"
	"emberwallet/internal/domain"
	"emberwallet/internal/keychain"
	logbackend "emberwallet/internal/logging"
	"emberwallet/internal/store"
)

// Wire bundles the configuration, stores and transport plumbing for the
// CLI.
type Wire struct {
	Cfg        *config.Config
	LogBackend *logbackend.Backend
	Log        *logging.Logger
	Seeds      *store.SeedStore
	HTTP       *http.Client
}

func newLogBackend(cfg *config.Config) (*logbackend.Backend, error) {
	return logbackend.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
}

// Unlock loads the encrypted seed under passphrase and returns a live
// keychain. The caller owns the keychain and must Close it.
func (w *Wire) Unlock(passphrase string) (*keychain.SeedKeychain, error) {
	seed, err := w.Seeds.Load(passphrase)
	if err != nil {
		return nil, err
	}
	return keychain.New(seed)
}

// SenderOptions assembles the transport options from the configuration
// and, when a keychain is supplied, the local wallet address. key may be
// nil for plaintext exchanges.
func (w *Wire) SenderOptions(kc domain.Keychain, key *domain.SessionKey) adapters.Options {
	opts := adapters.Options{
		RelayURL:     w.Cfg.Relay.URL,
		SocksAddress: w.Cfg.Tor.SocksAddress,
		PollInterval: time.Duration(w.Cfg.Relay.PollInterval) * time.Second,
		PollDeadline: time.Duration(w.Cfg.Relay.PollDeadline) * time.Second,
		SharedKey:    key,
		HTTPClient:   w.HTTP,
		Log:          w.LogBackend.GetLogger("transport"),
	}
	if kc != nil {
		opts.OurAddress = kc.Address()
	}
	return opts
}
