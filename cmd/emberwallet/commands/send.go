package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"emberwallet/internal/adapters"
	"emberwallet/internal/domain"
)

var (
	sendInput   string
	sendOutput  string
	sendPeerKey string
)

// send <destination>: deliver a slate and write the countersigned reply.
// The destination's shape picks the transport: an http(s) URL or onion
// name posts to the peer's foreign API, a 64-hex wallet address goes
// through the relay, anything else is treated as an output file path.
func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <destination>",
		Short: "Deliver a slate to a URL, onion, address or file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[0]

			slate, err := readSlate(sendInput)
			if err != nil {
				return err
			}

			opts, kc, err := senderOptions(sendPeerKey)
			if err != nil {
				return err
			}
			if kc != nil {
				defer kc.Close()
			}

			sender, err := adapters.NewSlateSender(dest, opts)
			if errors.Is(err, domain.ErrTransport) && looksLikePath(dest) {
				drop := adapters.PathToSlate{Path: dest}
				if err := drop.PutTx(slate); err != nil {
					return err
				}
				fmt.Printf("slate written to %s\n", dest)
				return nil
			}
			if err != nil {
				return err
			}

			reply, err := sender.Send(cmd.Context(), slate)
			if err != nil {
				return err
			}
			return writeSlate(sendOutput, reply)
		},
	}
	cmd.Flags().StringVarP(&sendInput, "input", "i", "", "slate file to send (default stdin)")
	cmd.Flags().StringVarP(&sendOutput, "output", "o", "", "file for the reply slate (default stdout)")
	cmd.Flags().StringVar(&sendPeerKey, "peer-key", "", "peer ECDH public key (hex); enables the secure channel")
	return cmd
}

// senderOptions builds transport options, unlocking the keychain when a
// wallet identity is needed: always for the relay reply queue, and for
// deriving the session key when a peer key is given.
func senderOptions(peerKey string) (adapters.Options, *keychainHandle, error) {
	needKeychain := peerKey != "" || wire.Cfg.Relay.URL != ""
	if !needKeychain {
		return wire.SenderOptions(nil, nil), nil, nil
	}

	if passphrase == "" {
		return adapters.Options{}, nil, fmt.Errorf("passphrase required (-p)")
	}
	kc, err := wire.Unlock(passphrase)
	if err != nil {
		return adapters.Options{}, nil, err
	}

	var sharedKey *domain.SessionKey
	if peerKey != "" {
		peer, err := domain.ParseECDHPublicKey(peerKey)
		if err != nil {
			kc.Close()
			return adapters.Options{}, nil, err
		}
		key, err := kc.SharedKey(peer)
		if err != nil {
			kc.Close()
			return adapters.Options{}, nil, err
		}
		sharedKey = &key
	}
	return wire.SenderOptions(kc, sharedKey), &keychainHandle{kc}, nil
}

// keychainHandle defers Close without exposing the concrete type to
// every command.
type keychainHandle struct{ kc interface{ Close() } }

func (h *keychainHandle) Close() { h.kc.Close() }

func looksLikePath(dest string) bool {
	return !strings.Contains(dest, "://") && !domain.IsAddress(dest)
}

func readSlate(path string) (domain.Slate, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: reading stdin: %v", domain.ErrIO, err)
		}
		return domain.NewSlate(raw)
	}
	drop := adapters.PathToSlate{Path: path}
	return drop.GetTx()
}

func writeSlate(path string, slate domain.Slate) error {
	if path == "" {
		fmt.Println(string(slate))
		return nil
	}
	drop := adapters.PathToSlate{Path: path}
	return drop.PutTx(slate)
}
