package app

import (
	"net/http"

	"emberwallet/internal/config"
	"emberwallet/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	DataDir string       // wallet data directory, e.g. $HOME/.emberwallet
	HTTP    *http.Client // optional; defaults to http.DefaultClient
}

// New builds the dependency graph from cfg.
func New(cfg Config) (*Wire, error) {
	wcfg, err := config.EnsureFile(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	w := &Wire{
		Cfg:   wcfg,
		Seeds: store.NewSeedStore(cfg.DataDir),
		HTTP:  httpClient,
	}
	w.LogBackend, err = newLogBackend(wcfg)
	if err != nil {
		return nil, err
	}
	w.Log = w.LogBackend.GetLogger("wallet")
	return w, nil
}
