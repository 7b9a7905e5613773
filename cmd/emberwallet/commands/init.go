package commands

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"emberwallet/internal/keychain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the wallet seed and print the wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}

			seed := make([]byte, keychain.SeedBytes)
			if _, err := rand.Read(seed); err != nil {
				return err
			}
			if err := wire.Seeds.Create(passphrase, seed); err != nil {
				return err
			}

			kc, err := keychain.New(seed)
			if err != nil {
				return err
			}
			defer kc.Close()

			fmt.Printf("Wallet created.\nAddress: %s\n", kc.Address())
			return nil
		},
	}
}
