package domain

import "errors"

// Failure classes surfaced at component boundaries. Callers discriminate
// with errors.Is; the concrete cause travels in the wrapped message.
var (
	// ErrEncoding covers malformed hex, base64, UTF-8 or JSON at any
	// encode or decode boundary. Always recoverable: reject the message,
	// never crash.
	ErrEncoding = errors.New("encoding error")

	// ErrCrypto covers key construction and AEAD seal/open failures,
	// including authentication-tag mismatches. The message text stays
	// generic so the channel never reveals whether a key was wrong or a
	// ciphertext was tampered with.
	ErrCrypto = errors.New("crypto error")

	// ErrProtocol marks a structurally valid but semantically invalid
	// message, such as a response missing its expected result key.
	ErrProtocol = errors.New("protocol error")

	// ErrTransport covers network and channel failures: timeouts, refused
	// connections, relay and proxy errors. Safe to report with the channel
	// name and underlying cause.
	ErrTransport = errors.New("transport error")

	// ErrIO covers filesystem channel failures.
	ErrIO = errors.New("i/o error")
)
