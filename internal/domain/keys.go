package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"emberwallet/internal/util/memzero"
)

const (
	// SessionKeyBytes is the AEAD key length on the secure channel.
	SessionKeyBytes = 32

	// MaskTokenBytes is the length of the seed mask token.
	MaskTokenBytes = 32

	// AddressBytes is the length of a raw wallet address (ed25519 public).
	AddressBytes = 32
)

// SessionKey is the shared 256-bit key protecting one secure-channel
// session. It is derived via ECDH or supplied by the caller as a
// pre-shared token, lives for the session, and is never serialized
// outside the process.
type SessionKey [SessionKeyBytes]byte

// NewSessionKey copies b into a SessionKey.
func NewSessionKey(b []byte) (SessionKey, error) {
	var k SessionKey
	if len(b) != SessionKeyBytes {
		return k, fmt.Errorf("%w: session key must be %d bytes, got %d", ErrCrypto, SessionKeyBytes, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Zero wipes the key material.
func (k *SessionKey) Zero() { memzero.Zero32((*[32]byte)(k)) }

// MaskToken is the 32-byte secret that XOR-masks the in-memory wallet
// seed and doubles as the owner-API session token. It travels as hex in
// JSON and is wiped when the session closes.
type MaskToken [MaskTokenBytes]byte

// Mask XORs the token over src, returning a new slice. Applying it twice
// restores the original bytes.
func (t *MaskToken) Mask(src []byte) []byte {
	out := make([]byte, len(src))
	for i := range src {
		out[i] = src[i] ^ t[i%MaskTokenBytes]
	}
	return out
}

// Zero wipes the token.
func (t *MaskToken) Zero() { memzero.Zero32((*[32]byte)(t)) }

// MarshalJSON encodes the token as a hex string.
func (t MaskToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(t[:]))
}

// UnmarshalJSON decodes a hex string of exactly MaskTokenBytes bytes.
func (t *MaskToken) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: mask token is not a JSON string", ErrEncoding)
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != MaskTokenBytes {
		return fmt.Errorf("%w: mask token is not %d hex-encoded bytes", ErrEncoding, MaskTokenBytes)
	}
	copy(t[:], raw)
	memzero.Zero(raw)
	return nil
}

// ECDHPublicKey wraps the secp256k1 point exchanged in the clear during
// session-key negotiation. The wire form is the 33-byte compressed
// encoding as a single hex JSON string; the key itself is stateless and
// recomputed per negotiation.
type ECDHPublicKey struct {
	key *btcec.PublicKey
}

// NewECDHPublicKey wraps an existing secp256k1 public key.
func NewECDHPublicKey(k *btcec.PublicKey) ECDHPublicKey {
	return ECDHPublicKey{key: k}
}

// ParseECDHPublicKey decodes a compressed hex encoding.
func ParseECDHPublicKey(s string) (ECDHPublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ECDHPublicKey{}, fmt.Errorf("%w: ECDH public key is not valid hex", ErrEncoding)
	}
	pk, err := btcec.ParsePubKey(raw)
	if err != nil {
		return ECDHPublicKey{}, fmt.Errorf("%w: ECDH public key is not a valid secp256k1 point", ErrEncoding)
	}
	return ECDHPublicKey{key: pk}, nil
}

// Key returns the wrapped secp256k1 point, or nil for the zero value.
func (p ECDHPublicKey) Key() *btcec.PublicKey { return p.key }

// String returns the compressed hex encoding.
func (p ECDHPublicKey) String() string {
	if p.key == nil {
		return ""
	}
	return hex.EncodeToString(p.key.SerializeCompressed())
}

// MarshalJSON encodes the key as its compressed hex form.
func (p ECDHPublicKey) MarshalJSON() ([]byte, error) {
	if p.key == nil {
		return nil, fmt.Errorf("%w: cannot encode empty ECDH public key", ErrEncoding)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON mirrors MarshalJSON.
func (p *ECDHPublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: ECDH public key is not a JSON string", ErrEncoding)
	}
	parsed, err := ParseECDHPublicKey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
