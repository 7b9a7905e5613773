package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"emberwallet/internal/app"
)

var (
	dataDir    string
	passphrase string
	wire       *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "emberwallet",
		Short: "Wallet slate transport CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dataDir == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dataDir = filepath.Join(dir, ".emberwallet")
			}
			if err := os.MkdirAll(dataDir, 0o700); err != nil {
				return err
			}

			var err error
			wire, err = app.New(app.Config{DataDir: dataDir})
			return err
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "wallet data dir (default ~/.emberwallet)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the wallet seed")

	root.AddCommand(initCmd(), addressCmd(), sendCmd(), listenCmd(), receiveCmd(), armorCmd(), unarmorCmd())
	return root.Execute()
}
