package secure_test

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/domain"
	"emberwallet/internal/secure"
)

// testKey mirrors the shared secret used by the owner-API reference
// exchange.
func testKey(t *testing.T) domain.SessionKey {
	t.Helper()
	raw, err := hex.DecodeString("e00dcc4a009e3427c6b1e1a550c538179d46f3827a13ed74c759c860761caf1e")
	require.NoError(t, err)
	key, err := domain.NewSessionKey(raw)
	require.NoError(t, err)
	return key
}

const accountsPayload = `{
	"jsonrpc": "2.0",
	"method": "accounts",
	"id": 1,
	"params": {
		"token": "d202964900000000d302964900000000d402964900000000d502964900000000"
	}
}`

func TestEnvelopeRoundTrip(t *testing.T) {
	key := testKey(t)

	body, err := secure.NewEncryptedBody([]byte(accountsPayload), &key)
	require.NoError(t, err)
	require.Len(t, body.Nonce, secure.NonceBytes*2)

	pt, err := body.Decrypt(&key)
	require.NoError(t, err)
	require.JSONEq(t, accountsPayload, string(pt))
}

func TestEnvelopeNonceFreshness(t *testing.T) {
	key := testKey(t)

	a, err := secure.NewEncryptedBody([]byte(`{"n":1}`), &key)
	require.NoError(t, err)
	b, err := secure.NewEncryptedBody([]byte(`{"n":1}`), &key)
	require.NoError(t, err)

	require.NotEqual(t, a.Nonce, b.Nonce)
	require.NotEqual(t, a.BodyEnc, b.BodyEnc)
}

func TestEnvelopeWrongKey(t *testing.T) {
	key := testKey(t)
	body, err := secure.NewEncryptedBody([]byte(accountsPayload), &key)
	require.NoError(t, err)

	var wrong domain.SessionKey
	copy(wrong[:], key[:])
	wrong[0] ^= 0x01

	_, err = body.Decrypt(&wrong)
	require.ErrorIs(t, err, domain.ErrCrypto)
}

func TestEnvelopeTamperDetection(t *testing.T) {
	key := testKey(t)
	body, err := secure.NewEncryptedBody([]byte(accountsPayload), &key)
	require.NoError(t, err)

	ct, err := base64.StdEncoding.DecodeString(body.BodyEnc)
	require.NoError(t, err)

	// Flip one bit at a time across the ciphertext and tag; every
	// position must fail authentication, never yield a different
	// plaintext silently.
	for i := range ct {
		mangled := append([]byte(nil), ct...)
		mangled[i] ^= 0x80
		tampered := body
		tampered.BodyEnc = base64.StdEncoding.EncodeToString(mangled)

		_, err := tampered.Decrypt(&key)
		require.ErrorIs(t, err, domain.ErrCrypto, "bit flip at byte %d not detected", i)
	}
}

func TestEnvelopeDecodeFailures(t *testing.T) {
	key := testKey(t)
	good, err := secure.NewEncryptedBody([]byte(`{"a":true}`), &key)
	require.NoError(t, err)

	cases := []struct {
		name string
		body secure.EncryptedBody
		want error
	}{
		{"bad base64", secure.EncryptedBody{Nonce: good.Nonce, BodyEnc: "!!not-base64!!"}, domain.ErrEncoding},
		{"bad nonce hex", secure.EncryptedBody{Nonce: "zz", BodyEnc: good.BodyEnc}, domain.ErrEncoding},
		{"short nonce", secure.EncryptedBody{Nonce: "00ff", BodyEnc: good.BodyEnc}, domain.ErrEncoding},
		{"truncated ciphertext", secure.EncryptedBody{Nonce: good.Nonce, BodyEnc: "AAAA"}, domain.ErrCrypto},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.body.Decrypt(&key)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEnvelopeRejectsNonJSONPayload(t *testing.T) {
	key := testKey(t)
	_, err := secure.NewEncryptedBody([]byte("not json"), &key)
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestSessionKeyLength(t *testing.T) {
	_, err := domain.NewSessionKey(make([]byte, 16))
	if !errors.Is(err, domain.ErrCrypto) {
		t.Fatalf("want crypto error for short key, got %v", err)
	}
}
