package secure

import (
	"bytes"
	"encoding/json"
	"fmt"

	"emberwallet/internal/domain"
)

// MethodSentinel is the fixed JSON-RPC method name marking an encrypted
// envelope. The underlying API method name travels inside the sealed
// payload and is only recoverable after decryption.
const MethodSentinel = "encrypted_request_v3"

// resultOkKey is the single key the encoder inserts into an encrypted
// response's result map. The map shape leaves room for an encrypted
// error variant under a different key later without changing the schema.
const resultOkKey = "Ok"

// fallbackErrorJSON is emitted when serializing an ErrorResponse itself
// fails: a failure report must never fail to serialize.
const fallbackErrorJSON = `{"jsonrpc":"2.0","id":null,"error":{"code":-32000,"message":"internal error serialising error response"}}`

// RpcID is a JSON-RPC 2.0 request id: absent (null), string, or unsigned
// integer. It is carried through unmodified from request to response.
// The zero value is the absent id.
type RpcID struct {
	Str *string
	Num *uint64
}

// StringID returns a string-shaped id.
func StringID(s string) RpcID { return RpcID{Str: &s} }

// IntID returns an integer-shaped id.
func IntID(n uint64) RpcID { return RpcID{Num: &n} }

// Equal reports whether two ids carry the same shape and value.
func (id RpcID) Equal(other RpcID) bool {
	switch {
	case id.Str != nil && other.Str != nil:
		return *id.Str == *other.Str
	case id.Num != nil && other.Num != nil:
		return *id.Num == *other.Num
	default:
		return id.Str == nil && id.Num == nil && other.Str == nil && other.Num == nil
	}
}

// MarshalJSON encodes null, a string, or an unsigned integer.
func (id RpcID) MarshalJSON() ([]byte, error) {
	switch {
	case id.Str != nil:
		return json.Marshal(*id.Str)
	case id.Num != nil:
		return json.Marshal(*id.Num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON mirrors MarshalJSON. Any other JSON shape is a protocol
// violation, not a crash.
func (id *RpcID) UnmarshalJSON(data []byte) error {
	*id = RpcID{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("%w: malformed JSON-RPC id", domain.ErrProtocol)
		}
		id.Str = &s
		return nil
	}
	var n uint64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("%w: JSON-RPC id must be null, a string or an unsigned integer", domain.ErrProtocol)
	}
	id.Num = &n
	return nil
}

// EncryptedRequest frames an EncryptedBody as a JSON-RPC 2.0 request.
type EncryptedRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	ID      RpcID         `json:"id"`
	Params  EncryptedBody `json:"params"`
}

// NewEncryptedRequest seals payload under key and wraps it with the
// method sentinel. Only envelope errors propagate.
func NewEncryptedRequest(id RpcID, payload json.RawMessage, key *domain.SessionKey) (*EncryptedRequest, error) {
	body, err := NewEncryptedBody(payload, key)
	if err != nil {
		return nil, err
	}
	return &EncryptedRequest{
		JSONRPC: "2.0",
		Method:  MethodSentinel,
		ID:      id,
		Params:  body,
	}, nil
}

// Decrypt returns the request's sealed payload.
func (r *EncryptedRequest) Decrypt(key *domain.SessionKey) (json.RawMessage, error) {
	return r.Params.Decrypt(key)
}

// EncryptedResponse frames an EncryptedBody as a JSON-RPC 2.0 response
// under the "Ok" result key.
type EncryptedResponse struct {
	JSONRPC string                   `json:"jsonrpc"`
	ID      RpcID                    `json:"id"`
	Result  map[string]EncryptedBody `json:"result"`
}

// NewEncryptedResponse seals payload under key and wraps it.
func NewEncryptedResponse(id RpcID, payload json.RawMessage, key *domain.SessionKey) (*EncryptedResponse, error) {
	body, err := NewEncryptedBody(payload, key)
	if err != nil {
		return nil, err
	}
	return &EncryptedResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  map[string]EncryptedBody{resultOkKey: body},
	}, nil
}

// Decrypt looks up the "Ok" result and returns its sealed payload. The
// encoder always inserts exactly that key, but responses may originate
// from an untrusted peer, so a missing key is a protocol violation
// rather than a panic.
func (r *EncryptedResponse) Decrypt(key *domain.SessionKey) (json.RawMessage, error) {
	body, ok := r.Result[resultOkKey]
	if !ok {
		return nil, fmt.Errorf("%w: response carries no Ok result", domain.ErrProtocol)
	}
	return body.Decrypt(key)
}

// RPCError is the error member of a plaintext error response.
type RPCError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse reports channel-level failures that occur before or
// during envelope handling. It never carries plaintext of the original
// payload.
type ErrorResponse struct {
	JSONRPC string   `json:"jsonrpc"`
	ID      RpcID    `json:"id"`
	Error   RPCError `json:"error"`
}

// NewErrorResponse builds an error response. It never fails.
func NewErrorResponse(id RpcID, code int32, message string) ErrorResponse {
	return ErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   RPCError{Code: code, Message: message},
	}
}

// MarshalFallback renders the response, substituting a fixed minimal
// error document if serialization fails. The caller always receives
// some well-formed message instead of silence.
func (r ErrorResponse) MarshalFallback() []byte {
	b, err := json.Marshal(r)
	if err != nil {
		return []byte(fallbackErrorJSON)
	}
	return b
}
