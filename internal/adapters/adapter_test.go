package adapters_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/adapters"
	"emberwallet/internal/domain"
)

func TestDispatchByDestination(t *testing.T) {
	opts := adapters.Options{
		RelayURL:     "http://127.0.0.1:8080",
		OurAddress:   addr(1),
		SocksAddress: "127.0.0.1:9050",
	}

	s, err := adapters.NewSlateSender("http://192.0.2.10:3415", opts)
	require.NoError(t, err)
	require.IsType(t, &adapters.HTTPSlateSender{}, s)

	onion := strings.Repeat("a", 56)
	s, err = adapters.NewSlateSender(onion, opts)
	require.NoError(t, err)
	require.IsType(t, &adapters.HTTPSlateSender{}, s)

	s, err = adapters.NewSlateSender(onion+".onion", opts)
	require.NoError(t, err)
	require.IsType(t, &adapters.HTTPSlateSender{}, s)

	s, err = adapters.NewSlateSender(addr(2).String(), opts)
	require.NoError(t, err)
	require.IsType(t, &adapters.RelayChannel{}, s)

	_, err = adapters.NewSlateSender("gopher://old.example", opts)
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestDispatchAddressNeedsRelay(t *testing.T) {
	_, err := adapters.NewSlateSender(addr(2).String(), adapters.Options{})
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestDispatchDefaultsRelayTimings(t *testing.T) {
	// Zero timing options must never reach the poll ticker, which
	// panics on a non-positive interval.
	s, err := adapters.NewSlateSender(addr(2).String(), adapters.Options{
		RelayURL:   "http://127.0.0.1:8080",
		OurAddress: addr(1),
	})
	require.NoError(t, err)

	ch, ok := s.(*adapters.RelayChannel)
	require.True(t, ok)
	require.Equal(t, time.Second, ch.PollInterval)
	require.Equal(t, time.Minute, ch.PollDeadline)
}
