// Package config implements the wallet's TOML configuration: chain type,
// foreign API listen address, relay polling policy and Tor proxy
// settings. Values are threaded explicitly through construction of the
// components that need them; there is no process-wide mutable state.
package config
