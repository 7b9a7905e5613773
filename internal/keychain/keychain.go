package keychain

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"emberwallet/internal/domain"
	"emberwallet/internal/util/memzero"
)

// SeedBytes is the wallet seed length.
const SeedBytes = 32

// Derivation labels separating the identity and negotiation key spaces.
const (
	labelIdentity = "emberwallet/identity"
	labelECDH     = "emberwallet/ecdh"
)

// SeedKeychain implements domain.Keychain on top of a raw wallet seed.
type SeedKeychain struct {
	masked []byte
	token  domain.MaskToken

	addr     domain.WalletAddress
	ecdhPriv *btcec.PrivateKey
	ecdhPub  domain.ECDHPublicKey
}

var _ domain.Keychain = (*SeedKeychain)(nil)

// New derives session key material from seed and masks the seed with a
// fresh random token. The caller's copy of seed is wiped before return.
func New(seed []byte) (*SeedKeychain, error) {
	if len(seed) != SeedBytes {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", domain.ErrCrypto, SeedBytes, len(seed))
	}

	var token domain.MaskToken
	if _, err := rand.Read(token[:]); err != nil {
		return nil, fmt.Errorf("%w: unable to draw mask token", domain.ErrCrypto)
	}

	idSeed := derive(seed, labelIdentity)
	identity := ed25519.NewKeyFromSeed(idSeed)
	memzero.Zero(idSeed)

	var addr domain.WalletAddress
	copy(addr[:], identity[ed25519.SeedSize:])

	ecdhSeed := derive(seed, labelECDH)
	ecdhPriv, ecdhPub := btcec.PrivKeyFromBytes(ecdhSeed)
	memzero.Zero(ecdhSeed)

	kc := &SeedKeychain{
		masked:   token.Mask(seed),
		token:    token,
		addr:     addr,
		ecdhPriv: ecdhPriv,
		ecdhPub:  domain.NewECDHPublicKey(ecdhPub),
	}
	memzero.Zero(seed)
	memzero.Zero(identity)
	return kc, nil
}

// Address returns the wallet's stable identity address.
func (k *SeedKeychain) Address() domain.WalletAddress { return k.addr }

// ECDHPublic returns the public half of the negotiation key.
func (k *SeedKeychain) ECDHPublic() domain.ECDHPublicKey { return k.ecdhPub }

// MaskToken returns this session's seed mask token.
func (k *SeedKeychain) MaskToken() domain.MaskToken { return k.token }

// SharedKey derives the AEAD session key shared with the holder of
// peer's private counterpart: SHA-256 of the ECDH shared point's
// x-coordinate. Both sides arrive at the same key without it ever
// crossing the wire.
func (k *SeedKeychain) SharedKey(peer domain.ECDHPublicKey) (domain.SessionKey, error) {
	if peer.Key() == nil {
		return domain.SessionKey{}, fmt.Errorf("%w: empty peer ECDH key", domain.ErrCrypto)
	}
	secret := btcec.GenerateSharedSecret(k.ecdhPriv, peer.Key())
	defer memzero.Zero(secret)
	sum := sha256.Sum256(secret)
	return domain.SessionKey(sum), nil
}

// Seed reconstructs the raw seed from the masked form. The caller must
// wipe the returned slice when done.
func (k *SeedKeychain) Seed() []byte {
	return k.token.Mask(k.masked)
}

// Close wipes the masked seed, token and negotiation secret.
func (k *SeedKeychain) Close() {
	memzero.Zero(k.masked)
	k.token.Zero()
	if k.ecdhPriv != nil {
		k.ecdhPriv.Zero()
	}
}

func derive(seed []byte, label string) []byte {
	h := sha256.New()
	h.Write(seed)
	h.Write([]byte(label))
	return h.Sum(nil)
}
