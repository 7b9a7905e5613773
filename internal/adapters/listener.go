package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"gopkg.in/op/go-logging.v1"

	"emberwallet/internal/domain"
	"emberwallet/internal/secure"
)

// JSON-RPC error codes used on the foreign listener.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInternalError  = -32000
	codeDecryptFailed  = -32001
)

// Listener serves the wallet's foreign API over HTTP: plaintext
// receive_tx calls and, when a session key is configured, secure-channel
// requests under the encrypted_request_v3 sentinel. Each inbound
// exchange is independent; concurrent peers are served by the standard
// HTTP server semantics.
type Listener struct {
	addr string
	key  *domain.SessionKey
	log  *logging.Logger
}

var _ domain.SlateReceiver = (*Listener)(nil)

// NewListener returns a foreign API listener bound to addr. A non-nil
// key enables the secure channel; log may be nil.
func NewListener(addr string, key *domain.SessionKey, log *logging.Logger) *Listener {
	return &Listener{addr: addr, key: key, log: log}
}

// Listen serves inbound slate exchanges until ctx is cancelled. A serve
// failure, including a bind failure, returns immediately rather than
// waiting on cancellation.
func (l *Listener) Listen(ctx context.Context, handler domain.SlateHandler) error {
	srv := &http.Server{
		Addr:        l.addr,
		Handler:     l.Handler(handler),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		// ListenAndServe only returns on failure here; ErrServerClosed
		// cannot occur before Shutdown is called.
		return fmt.Errorf("%w: http listener: %v", domain.ErrTransport, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: http listener: %v", domain.ErrTransport, err)
	}
	return nil
}

// Handler returns the HTTP handler backing Listen. Exposed so tests and
// embedding servers can mount the foreign API without binding a socket.
func (l *Listener) Handler(handler domain.SlateHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ForeignEndpoint, func(w http.ResponseWriter, r *http.Request) {
		l.serveRPC(w, r, handler)
	})
	return mux
}

func (l *Listener) serveRPC(w http.ResponseWriter, r *http.Request, handler domain.SlateHandler) {
	w.Header().Set("Content-Type", "application/json")

	var req rpcRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResponseBytes)).Decode(&req); err != nil {
		l.writeError(w, secure.RpcID{}, codeParseError, "unable to parse request")
		return
	}

	switch req.Method {
	case secure.MethodSentinel:
		l.serveSecure(w, r.Context(), req, handler)
	case methodReceiveTx:
		resp := l.dispatch(r.Context(), req, handler)
		l.write(w, resp)
	default:
		l.writeError(w, req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
	}
}

// serveSecure unwraps an encrypted request, dispatches the inner call
// and wraps the response under the same id. Any failure before the
// inner payload is recovered collapses to one generic denial.
func (l *Listener) serveSecure(w http.ResponseWriter, ctx context.Context, req rpcRequest, handler domain.SlateHandler) {
	if l.key == nil {
		l.writeError(w, req.ID, codeMethodNotFound, "secure channel not enabled")
		return
	}

	var body secure.EncryptedBody
	if err := json.Unmarshal(req.Params, &body); err != nil {
		l.writeError(w, req.ID, codeDecryptFailed, "decryption failed (is key correct?)")
		return
	}
	plain, err := body.Decrypt(l.key)
	if err != nil {
		l.writeError(w, req.ID, codeDecryptFailed, "decryption failed (is key correct?)")
		return
	}

	var inner rpcRequest
	if err := json.Unmarshal(plain, &inner); err != nil {
		l.writeError(w, req.ID, codeDecryptFailed, "decryption failed (is key correct?)")
		return
	}

	var innerResp rpcResponse
	if inner.Method == methodReceiveTx {
		innerResp = l.dispatch(ctx, inner, handler)
	} else {
		innerResp = errResponse(inner.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", inner.Method))
	}

	innerJSON, err := json.Marshal(innerResp)
	if err != nil {
		l.writeError(w, req.ID, codeInternalError, "internal error")
		return
	}
	wrapped, err := secure.NewEncryptedResponse(req.ID, innerJSON, l.key)
	if err != nil {
		l.writeError(w, req.ID, codeInternalError, "internal error")
		return
	}
	l.write(w, wrapped)
}

// dispatch runs a receive_tx call through the slate handler.
func (l *Listener) dispatch(ctx context.Context, req rpcRequest, handler domain.SlateHandler) rpcResponse {
	var params []json.RawMessage
	if err := json.Unmarshal(req.Params, &params); err != nil || len(params) == 0 {
		return errResponse(req.ID, codeParseError, "receive_tx expects a params array with a slate")
	}
	slate, err := domain.NewSlate(params[0])
	if err != nil {
		return errResponse(req.ID, codeParseError, "first param is not a valid slate")
	}

	reply, err := handler(ctx, slate)
	if err != nil {
		if l.log != nil {
			l.log.Warningf("receive_tx handler: %v", err)
		}
		return errResponse(req.ID, codeInternalError, "unable to process slate")
	}
	return rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]json.RawMessage{"Ok": json.RawMessage(reply)},
	}
}

func errResponse(id secure.RpcID, code int32, msg string) rpcResponse {
	return rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &secure.RPCError{Code: code, Message: msg},
	}
}

func (l *Listener) write(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil && l.log != nil {
		l.log.Errorf("writing response: %v", err)
	}
}

// writeError emits a plaintext channel-level error. The fallback path
// guarantees some well-formed JSON reaches the peer even if the primary
// serialization fails.
func (l *Listener) writeError(w http.ResponseWriter, id secure.RpcID, code int32, msg string) {
	resp := secure.NewErrorResponse(id, code, msg)
	if _, err := w.Write(resp.MarshalFallback()); err != nil && l.log != nil {
		l.log.Errorf("writing error response: %v", err)
	}
}
