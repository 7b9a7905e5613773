package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"emberwallet/internal/domain"
	"emberwallet/internal/secure"
)

const (
	// ForeignEndpoint is the path serving the wallet's foreign API.
	ForeignEndpoint = "/v2/foreign"

	methodReceiveTx = "receive_tx"

	maxResponseBytes = 16 << 20
)

// rpcRequest is the foreign API's JSON-RPC request shape.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      secure.RpcID    `json:"id"`
	Params  json.RawMessage `json:"params"`
}

// rpcResponse is the foreign API's JSON-RPC response shape. Result
// carries either an "Ok" or an "Err" member.
type rpcResponse struct {
	JSONRPC string                     `json:"jsonrpc"`
	ID      secure.RpcID               `json:"id"`
	Result  map[string]json.RawMessage `json:"result,omitempty"`
	Error   *secure.RPCError           `json:"error,omitempty"`
}

// HTTPSlateSender posts a slate to a peer's foreign API and returns the
// countersigned reply, one synchronous round trip per call. Retries are
// the caller's responsibility.
type HTTPSlateSender struct {
	baseURL string
	client  *http.Client
	key     *domain.SessionKey
}

var _ domain.SlateSender = (*HTTPSlateSender)(nil)

// NewHTTPSlateSender returns a sender for the peer at baseURL. A non-nil
// key wraps the exchange in the secure channel. client may be nil, in
// which case http.DefaultClient is used.
func NewHTTPSlateSender(baseURL string, key *domain.SessionKey, client *http.Client) *HTTPSlateSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSlateSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		key:     key,
	}
}

// Send delivers slate via JSON-RPC receive_tx and returns the reply
// slate. Cancelling ctx closes the connection; the call either returns
// the peer's reply or an error, never an ambiguous half-state.
func (s *HTTPSlateSender) Send(ctx context.Context, slate domain.Slate) (domain.Slate, error) {
	params, err := json.Marshal([]json.RawMessage{json.RawMessage(slate), []byte("null"), []byte("null")})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to encode slate params", domain.ErrEncoding)
	}
	inner := rpcRequest{
		JSONRPC: "2.0",
		Method:  methodReceiveTx,
		ID:      secure.IntID(1),
		Params:  params,
	}
	body, err := json.Marshal(inner)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to encode request", domain.ErrEncoding)
	}

	if s.key != nil {
		wrapped, err := secure.NewEncryptedRequest(inner.ID, body, s.key)
		if err != nil {
			return nil, err
		}
		if body, err = json.Marshal(wrapped); err != nil {
			return nil, fmt.Errorf("%w: unable to encode secure request", domain.ErrEncoding)
		}
	}

	raw, err := s.post(ctx, body)
	if err != nil {
		return nil, err
	}

	if s.key != nil {
		// Channel-level denials (bad key, malformed envelope) come back
		// as plaintext error responses.
		var probe struct {
			Error *secure.RPCError `json:"error"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != nil {
			return nil, fmt.Errorf("%w: peer error %d: %s", domain.ErrTransport, probe.Error.Code, probe.Error.Message)
		}

		var wrapped secure.EncryptedResponse
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: malformed secure response", domain.ErrEncoding)
		}
		if raw, err = wrapped.Decrypt(s.key); err != nil {
			return nil, err
		}
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed response", domain.ErrEncoding)
	}
	return unpackResult(resp)
}

func (s *HTTPSlateSender) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+ForeignEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: http: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: http: peer returned %s", domain.ErrTransport, resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: http: reading response: %v", domain.ErrTransport, err)
	}
	return raw, nil
}

// unpackResult extracts the reply slate from a foreign API response.
func unpackResult(resp rpcResponse) (domain.Slate, error) {
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: peer error %d: %s", domain.ErrTransport, resp.Error.Code, resp.Error.Message)
	}
	if raw, ok := resp.Result["Err"]; ok {
		return nil, fmt.Errorf("%w: peer rejected slate: %s", domain.ErrTransport, raw)
	}
	raw, ok := resp.Result["Ok"]
	if !ok {
		return nil, fmt.Errorf("%w: response carries no Ok result", domain.ErrProtocol)
	}
	return domain.NewSlate(raw)
}
