package secure

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"emberwallet/internal/domain"
)

const (
	// NonceBytes is the AEAD nonce length (hex-encoded to 24 chars).
	NonceBytes = 12

	// TagBytes is the AEAD authentication tag length appended to the
	// ciphertext before base64 encoding.
	TagBytes = 16
)

// EncryptedBody is the AEAD envelope carried in place of plaintext
// params or results on the secure channel.
type EncryptedBody struct {
	Nonce   string `json:"nonce"`
	BodyEnc string `json:"body_enc"`
}

// NewEncryptedBody seals payload under key. The payload is compacted to
// a canonical byte form first so both ends agree on the serialized
// shape. Each call draws a fresh random nonce; nonce reuse under a fixed
// key is a correctness bug, not a tolerable degradation.
func NewEncryptedBody(payload json.RawMessage, key *domain.SessionKey) (EncryptedBody, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return EncryptedBody{}, fmt.Errorf("%w: unable to encode payload JSON", domain.ErrEncoding)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return EncryptedBody{}, err
	}

	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return EncryptedBody{}, fmt.Errorf("%w: unable to draw nonce", domain.ErrCrypto)
	}

	ct := aead.Seal(nil, nonce, buf.Bytes(), nil)
	return EncryptedBody{
		Nonce:   hex.EncodeToString(nonce),
		BodyEnc: base64.StdEncoding.EncodeToString(ct),
	}, nil
}

// Decrypt opens the envelope with key and returns the payload JSON.
// Authentication precedes any use of the plaintext: a wrong key or a
// tampered ciphertext fails closed with a generic crypto error.
func (b EncryptedBody) Decrypt(key *domain.SessionKey) (json.RawMessage, error) {
	ct, err := base64.StdEncoding.DecodeString(b.BodyEnc)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypted body contains invalid base64", domain.ErrEncoding)
	}
	nonce, err := hex.DecodeString(b.Nonce)
	if err != nil || len(nonce) != NonceBytes {
		return nil, fmt.Errorf("%w: invalid nonce", domain.ErrEncoding)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decryption failed (is key correct?)", domain.ErrCrypto)
	}
	if !utf8.Valid(pt) {
		return nil, fmt.Errorf("%w: decrypted body is not valid UTF-8", domain.ErrEncoding)
	}
	if !json.Valid(pt) {
		return nil, fmt.Errorf("%w: decrypted body is not valid JSON", domain.ErrEncoding)
	}
	return json.RawMessage(pt), nil
}

func newAEAD(key *domain.SessionKey) (cipher.AEAD, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no session key", domain.ErrCrypto)
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create key", domain.ErrCrypto)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create key", domain.ErrCrypto)
	}
	return aead, nil
}
