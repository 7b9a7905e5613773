package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address and ECDH public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			kc, err := wire.Unlock(passphrase)
			if err != nil {
				return err
			}
			defer kc.Close()

			fmt.Printf("Address:  %s\nECDH key: %s\n", kc.Address(), kc.ECDHPublic())
			return nil
		},
	}
}
