package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"emberwallet/internal/adapters"
	"emberwallet/internal/config"
	"emberwallet/internal/domain"
)

var (
	listenMethod  string
	listenPeerKey string
)

func listenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Serve inbound slate exchanges",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := storeAndEchoHandler()
			if err != nil {
				return err
			}
			log := wire.LogBackend.GetLogger("listen")

			switch listenMethod {
			case "http":
				var key *domain.SessionKey
				if listenPeerKey != "" {
					opts, kc, err := senderOptions(listenPeerKey)
					if err != nil {
						return err
					}
					defer kc.Close()
					key = opts.SharedKey
				}
				log.Noticef("foreign API listening on %s", wire.Cfg.APIListen)
				l := adapters.NewListener(wire.Cfg.APIListen, key, log)
				return l.Listen(cmd.Context(), handler)

			case "relay":
				if wire.Cfg.Relay.URL == "" {
					return fmt.Errorf("no relay configured (set Relay.URL in %s)", config.DefaultFileName)
				}
				if passphrase == "" {
					return fmt.Errorf("passphrase required (-p)")
				}
				kc, err := wire.Unlock(passphrase)
				if err != nil {
					return err
				}
				defer kc.Close()

				ch := &adapters.RelayChannel{
					Client:       adapters.NewRelayHTTPClient(wire.Cfg.Relay.URL, wire.HTTP),
					OurAddress:   kc.Address(),
					PollInterval: time.Duration(wire.Cfg.Relay.PollInterval) * time.Second,
					PollDeadline: time.Duration(wire.Cfg.Relay.PollDeadline) * time.Second,
					Log:          log,
				}
				log.Noticef("polling relay %s as %s", wire.Cfg.Relay.URL, kc.Address())
				return ch.Listen(cmd.Context(), handler)

			default:
				return fmt.Errorf("unknown listen method %q (want http or relay)", listenMethod)
			}
		},
	}
	cmd.Flags().StringVar(&listenMethod, "method", "http", "listen method: http or relay")
	cmd.Flags().StringVar(&listenPeerKey, "peer-key", "", "peer ECDH public key (hex); enables the secure channel")
	return cmd
}

// storeAndEchoHandler persists each inbound slate under the data dir and
// returns it unchanged as the reply. Countersigning belongs to the
// transaction-negotiation layer; the transport only guarantees delivery
// and persistence.
func storeAndEchoHandler() (domain.SlateHandler, error) {
	dir := filepath.Join(dataDir, "received")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return func(_ context.Context, slate domain.Slate) (domain.Slate, error) {
		name := fmt.Sprintf("%d.slate", time.Now().UnixNano())
		drop := adapters.PathToSlate{Path: filepath.Join(dir, name)}
		if err := drop.PutTx(slate); err != nil {
			return nil, err
		}
		return slate, nil
	}, nil
}
