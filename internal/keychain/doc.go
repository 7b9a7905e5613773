// Package keychain derives the communication layer's key material from a
// wallet seed: the ed25519 identity key whose public half is the wallet
// address, the secp256k1 key pair used for ECDH session-key negotiation,
// and the mask token that keeps the seed XOR-masked in memory for the
// lifetime of a session.
//
// The seed itself never sits in memory unmasked between uses; the
// keychain holds the masked form plus the token and reconstructs the
// seed only on demand.
package keychain
