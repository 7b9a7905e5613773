// Package adapters implements the slate transport variants behind the
// capability interfaces in internal/domain:
//
//   - HTTPSlateSender / Listener: synchronous JSON-RPC exchange with a
//     peer's foreign API over HTTP, optionally wrapped in the secure
//     channel when a shared session key has been negotiated.
//   - Tor-routed sending: the HTTP sender dialing through a local SOCKS5
//     proxy to reach onion destinations.
//   - RelayChannel: store-and-forward exchange through an untrusted
//     relay keyed by wallet address, with fixed-interval polling under
//     an explicit deadline.
//   - PathToSlate: filesystem drop for offline exchange.
//   - ArmoredSlate: compact fixed-alphabet text encoding for manual
//     out-of-band relay.
//
// Variant selection is a plain dispatch on the destination descriptor
// (NewSlateSender). No variant inspects or mutates slate contents beyond
// serialization.
package adapters
