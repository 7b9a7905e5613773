package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/op/go-logging.v1"

	"emberwallet/internal/domain"
)

// RelayHTTPClient implements domain.RelayClient against the slate relay
// server. All requests are JSON over HTTP; non-2xx statuses are
// returned as transport errors carrying the method, URL and status.
type RelayHTTPClient struct {
	Base string
	HTTP *http.Client
}

var _ domain.RelayClient = (*RelayHTTPClient)(nil)

// NewRelayHTTPClient returns a client for the relay at base. client may
// be nil, in which case http.DefaultClient is used.
func NewRelayHTTPClient(base string, client *http.Client) *RelayHTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RelayHTTPClient{Base: base, HTTP: client}
}

// PostSlate enqueues env for its recipient.
func (c *RelayHTTPClient) PostSlate(ctx context.Context, env domain.RelayEnvelope) error {
	return c.post(ctx, "/v1/slate/"+env.To.String(), env, nil)
}

// FetchSlates returns up to limit queued envelopes for addr (all if
// limit <= 0) without removing them from the queue.
func (c *RelayHTTPClient) FetchSlates(ctx context.Context, addr domain.WalletAddress, limit int) ([]domain.RelayEnvelope, error) {
	u := "/v1/slate/" + addr.String()
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}
	var envs []domain.RelayEnvelope
	if err := c.getJSON(ctx, u, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// AckSlates drops the first count queued envelopes for addr.
func (c *RelayHTTPClient) AckSlates(ctx context.Context, addr domain.WalletAddress, count int) error {
	return c.post(ctx, "/v1/slate/"+addr.String()+"/ack", struct {
		Count int `json:"count"`
	}{Count: count}, nil)
}

func (c *RelayHTTPClient) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return fmt.Errorf("%w: unable to encode relay request", domain.ErrEncoding)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return fmt.Errorf("%w: relay: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: relay: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: relay post %s: %s", domain.ErrTransport, path, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: malformed relay response", domain.ErrEncoding)
		}
	}
	return nil
}

func (c *RelayHTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return fmt.Errorf("%w: relay: %v", domain.ErrTransport, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: relay: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: relay get %s: %s", domain.ErrTransport, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed relay response", domain.ErrEncoding)
	}
	return nil
}

// RelayChannel exchanges slates through the store-and-forward relay,
// keyed by wallet address. Sending pushes the slate to the peer's queue
// and polls our own queue for the reply at a fixed interval until an
// explicit deadline; exceeding the deadline is a terminal failure for
// that send attempt.
type RelayChannel struct {
	Client       domain.RelayClient
	OurAddress   domain.WalletAddress
	PeerAddress  domain.WalletAddress
	PollInterval time.Duration
	PollDeadline time.Duration
	Log          *logging.Logger
}

var (
	_ domain.SlateSender   = (*RelayChannel)(nil)
	_ domain.SlateReceiver = (*RelayChannel)(nil)
)

// Send pushes slate to the peer's queue and waits for the reply.
func (c *RelayChannel) Send(ctx context.Context, slate domain.Slate) (domain.Slate, error) {
	env := domain.RelayEnvelope{
		From:      c.OurAddress,
		To:        c.PeerAddress,
		Slate:     slate,
		Timestamp: time.Now().Unix(),
	}
	if err := c.Client.PostSlate(ctx, env); err != nil {
		return nil, err
	}

	deadline := time.NewTimer(c.PollDeadline)
	defer deadline.Stop()
	tick := time.NewTicker(c.PollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: relay: send cancelled: %v", domain.ErrTransport, ctx.Err())
		case <-deadline.C:
			return nil, fmt.Errorf("%w: relay: no response", domain.ErrTransport)
		case <-tick.C:
			envs, err := c.Client.FetchSlates(ctx, c.OurAddress, 1)
			if err != nil {
				// Relay-side errors are surfaced verbatim.
				return nil, err
			}
			if len(envs) == 0 {
				continue
			}
			if err := c.Client.AckSlates(ctx, c.OurAddress, 1); err != nil {
				return nil, err
			}
			return envs[0].Slate, nil
		}
	}
}

// Listen polls our queue and runs each inbound slate through handler,
// posting the reply back to the originator. It returns when ctx is
// cancelled.
func (c *RelayChannel) Listen(ctx context.Context, handler domain.SlateHandler) error {
	tick := time.NewTicker(c.PollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := c.drain(ctx, handler); err != nil {
				if c.Log != nil {
					c.Log.Warningf("relay listen: %v", err)
				}
			}
		}
	}
}

// drain processes queued envelopes in order, acking only what was
// handled so an unprocessed slate is retried on the next poll.
func (c *RelayChannel) drain(ctx context.Context, handler domain.SlateHandler) error {
	envs, err := c.Client.FetchSlates(ctx, c.OurAddress, 0)
	if err != nil {
		return err
	}
	for _, env := range envs {
		reply, err := handler(ctx, env.Slate)
		if err != nil {
			return err
		}
		out := domain.RelayEnvelope{
			From:      c.OurAddress,
			To:        env.From,
			Slate:     reply,
			Timestamp: time.Now().Unix(),
		}
		if err := c.Client.PostSlate(ctx, out); err != nil {
			return err
		}
		if err := c.Client.AckSlates(ctx, c.OurAddress, 1); err != nil {
			return err
		}
	}
	return nil
}
