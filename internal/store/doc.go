// Package store persists the wallet seed on disk, encrypted under a
// passphrase-derived key (Argon2id KEK, ChaCha20-Poly1305 envelope).
// Methods are concurrency-safe via internal locking; the seed file lives
// under the wallet's configured data directory with 0600 permissions.
package store
