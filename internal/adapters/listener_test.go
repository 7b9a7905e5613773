package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/adapters"
	"emberwallet/internal/domain"
)

func TestListenerBindFailureReturns(t *testing.T) {
	l := adapters.NewListener("256.256.256.256:1", nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- l.Listen(context.Background(), echoHandler)
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, domain.ErrTransport)
	case <-time.After(3 * time.Second):
		t.Fatal("Listen did not return after a bind failure")
	}
}

func TestListenerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := adapters.NewListener("127.0.0.1:0", nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx, echoHandler)
	}()

	// Give the server a moment to bind before cancelling.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Listen did not return after cancellation")
	}
}
