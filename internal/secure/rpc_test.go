package secure_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/domain"
	"emberwallet/internal/secure"
)

func TestRpcIDFidelity(t *testing.T) {
	cases := []struct {
		name string
		id   secure.RpcID
		wire string
	}{
		{"absent", secure.RpcID{}, "null"},
		{"string", secure.StringID("req-7"), `"req-7"`},
		{"integer", secure.IntID(42), "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.id)
			require.NoError(t, err)
			require.Equal(t, tc.wire, string(b))

			var back secure.RpcID
			require.NoError(t, json.Unmarshal(b, &back))
			require.True(t, back.Equal(tc.id))
		})
	}
}

func TestRpcIDRejectsOtherShapes(t *testing.T) {
	for _, wire := range []string{`{"a":1}`, `[1]`, `-3`, `1.5`, `true`} {
		var id secure.RpcID
		err := json.Unmarshal([]byte(wire), &id)
		require.ErrorIs(t, err, domain.ErrProtocol, "wire %s", wire)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	key := testKey(t)

	req, err := secure.NewEncryptedRequest(secure.IntID(1), []byte(accountsPayload), &key)
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, secure.MethodSentinel, req.Method)

	// Through the wire and back.
	wire, err := json.Marshal(req)
	require.NoError(t, err)
	var parsed secure.EncryptedRequest
	require.NoError(t, json.Unmarshal(wire, &parsed))
	require.True(t, parsed.ID.Equal(req.ID))

	pt, err := parsed.Decrypt(&key)
	require.NoError(t, err)
	require.JSONEq(t, accountsPayload, string(pt))
}

func TestResponseRoundTrip(t *testing.T) {
	key := testKey(t)

	resp, err := secure.NewEncryptedResponse(secure.IntID(1), []byte(accountsPayload), &key)
	require.NoError(t, err)

	wire, err := json.Marshal(resp)
	require.NoError(t, err)
	var parsed secure.EncryptedResponse
	require.NoError(t, json.Unmarshal(wire, &parsed))

	pt, err := parsed.Decrypt(&key)
	require.NoError(t, err)
	require.JSONEq(t, accountsPayload, string(pt))
}

func TestResponseMissingOkIsProtocolError(t *testing.T) {
	key := testKey(t)
	resp := secure.EncryptedResponse{
		JSONRPC: "2.0",
		ID:      secure.IntID(1),
		Result:  map[string]secure.EncryptedBody{},
	}
	_, err := resp.Decrypt(&key)
	require.ErrorIs(t, err, domain.ErrProtocol)
}

func TestRequestIDPreservedAcrossShapes(t *testing.T) {
	key := testKey(t)
	for _, id := range []secure.RpcID{{}, secure.StringID("abc"), secure.IntID(9)} {
		req, err := secure.NewEncryptedRequest(id, []byte(`{"x":1}`), &key)
		require.NoError(t, err)

		wire, err := json.Marshal(req)
		require.NoError(t, err)
		var back secure.EncryptedRequest
		require.NoError(t, json.Unmarshal(wire, &back))
		require.True(t, back.ID.Equal(id))
	}
}

func TestErrorResponseShape(t *testing.T) {
	resp := secure.NewErrorResponse(secure.IntID(3), -32001, "decryption failed (is key correct?)")
	wire := resp.MarshalFallback()
	require.JSONEq(t,
		`{"jsonrpc":"2.0","id":3,"error":{"code":-32001,"message":"decryption failed (is key correct?)"}}`,
		string(wire))
}

func TestErrorResponseFallbackAlwaysParses(t *testing.T) {
	// Whatever the code/message pair, the output must parse as JSON.
	for _, msg := range []string{"", "plain", "with \"quotes\"", "control \x01 bytes", "unicode ✓"} {
		resp := secure.NewErrorResponse(secure.RpcID{}, -32000, msg)
		wire := resp.MarshalFallback()
		require.True(t, json.Valid(wire), "message %q produced invalid JSON", msg)
	}
}
