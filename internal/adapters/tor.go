package adapters

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/proxy"

	"emberwallet/internal/domain"
)

// onionRe matches a v3 onion service name without the .onion suffix.
var onionRe = regexp.MustCompile(`^[a-z2-7]{56}$`)

// isOnion reports whether destination names an onion service, with or
// without scheme and .onion suffix.
func isOnion(destination string) bool {
	host := destination
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimSuffix(host, ".onion")
	return onionRe.MatchString(host)
}

// onionURL normalizes destination to a dialable base URL. The .onion
// suffix attaches to the host only, never to a trailing port or path.
func onionURL(destination string) string {
	scheme := "http://"
	rest := destination
	switch {
	case strings.HasPrefix(rest, "http://"):
		rest = strings.TrimPrefix(rest, "http://")
	case strings.HasPrefix(rest, "https://"):
		scheme = "https://"
		rest = strings.TrimPrefix(rest, "https://")
	}

	host, tail := rest, ""
	if i := strings.IndexAny(rest, "/:"); i >= 0 {
		host, tail = rest[:i], rest[i:]
	}
	if !strings.HasSuffix(host, ".onion") {
		host += ".onion"
	}
	return scheme + host + tail
}

// NewTorSlateSender returns an HTTP slate sender that reaches an onion
// destination through the SOCKS5 proxy at socksAddr. The proxy (and the
// Tor process behind it) is assumed to already be running; its lifecycle
// is not managed here. There is no automatic retry; the caller controls
// the timeout through the send context.
func NewTorSlateSender(destination, socksAddr string, key *domain.SessionKey) (*HTTPSlateSender, error) {
	dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("%w: tor: socks dialer: %v", domain.ErrTransport, err)
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		},
		// Onion lookups must go through the proxy, never a local resolver.
		DisableKeepAlives: true,
	}

	return NewHTTPSlateSender(onionURL(destination), key, &http.Client{Transport: transport}), nil
}
