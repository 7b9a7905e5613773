package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file name inside the data directory.
const DefaultFileName = "ember-wallet.toml"

const (
	defaultLogLevel     = "NOTICE"
	defaultPollInterval = 1  // seconds
	defaultPollDeadline = 60 // seconds
	defaultSocksAddress = "127.0.0.1:9050"
)

// Chain types select network defaults. The chain type is configuration
// passed down at construction, never a global.
const (
	Mainnet = "mainnet"
	Floonet = "floonet"
	Usernet = "usernet"
)

// defaultListenAddrs maps chain type to the foreign API listen address.
var defaultListenAddrs = map[string]string{
	Mainnet: "127.0.0.1:3415",
	Floonet: "127.0.0.1:13415",
	Usernet: "127.0.0.1:23415",
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file; if omitted stdout is used.
	File string

	// Level specifies the log level.
	Level string
}

func (l *Logging) validate() error {
	lvl := strings.ToUpper(l.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", l.Level)
	}
	l.Level = lvl
	return nil
}

// Relay configures the store-and-forward slate channel.
type Relay struct {
	// URL is the relay's base URL; empty disables the relay channel.
	URL string

	// PollInterval is the receive-poll interval in seconds.
	PollInterval int

	// PollDeadline is the number of seconds a send waits for a reply
	// before failing. Exceeding it is a terminal failure for that send,
	// not a silent retry.
	PollDeadline int
}

func (r *Relay) fixup() {
	if r.PollInterval <= 0 {
		r.PollInterval = defaultPollInterval
	}
	if r.PollDeadline <= 0 {
		r.PollDeadline = defaultPollDeadline
	}
}

// Tor configures the SOCKS proxy used to reach onion destinations. The
// Tor process and onion service lifecycle are managed outside the
// wallet; only the already-running SOCKS endpoint is consumed.
type Tor struct {
	// SocksAddress is the host:port of the local SOCKS5 listener.
	SocksAddress string
}

func (t *Tor) fixup() {
	if t.SocksAddress == "" {
		t.SocksAddress = defaultSocksAddress
	}
}

// Config is the top-level wallet configuration.
type Config struct {
	// ChainType selects the network (mainnet, floonet, usernet).
	ChainType string

	// APIListen is the foreign API listen address; chain-type default if
	// empty.
	APIListen string

	Logging *Logging
	Relay   *Relay
	Tor     *Tor
}

// FixupAndValidate applies defaults and validates the configuration.
func (c *Config) FixupAndValidate() error {
	if c.ChainType == "" {
		c.ChainType = Mainnet
	}
	listen, ok := defaultListenAddrs[c.ChainType]
	if !ok {
		return fmt.Errorf("config: ChainType '%v' is invalid", c.ChainType)
	}
	if c.APIListen == "" {
		c.APIListen = listen
	}
	if c.Logging == nil {
		c.Logging = &Logging{}
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	if c.Relay == nil {
		c.Relay = &Relay{}
	}
	c.Relay.fixup()
	if c.Tor == nil {
		c.Tor = &Tor{}
	}
	c.Tor.fixup()
	return nil
}

// Load parses and validates b as a config file body.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the file at f.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// EnsureFile loads the config file under dir, writing a default one on
// first run.
func EnsureFile(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); err == nil {
		return LoadFile(path)
	}

	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
