package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"emberwallet/internal/adapters"
)

var (
	receiveInput  string
	receiveOutput string
)

// receive -i tx.slate -o tx.response.slate: file-based counterpart of
// listen, for exchanges carried out of band.
func receiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Process a slate file and write the response file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if receiveInput == "" {
				return fmt.Errorf("input slate file required (-i)")
			}
			out := receiveOutput
			if out == "" {
				out = receiveInput + ".response"
			}

			drop := adapters.PathToSlate{Path: receiveInput}
			slate, err := drop.GetTx()
			if err != nil {
				return err
			}

			handler, err := storeAndEchoHandler()
			if err != nil {
				return err
			}
			reply, err := handler(cmd.Context(), slate)
			if err != nil {
				return err
			}

			if err := (adapters.PathToSlate{Path: out}).PutTx(reply); err != nil {
				return err
			}
			fmt.Printf("response written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&receiveInput, "input", "i", "", "slate file to process")
	cmd.Flags().StringVarP(&receiveOutput, "output", "o", "", "response file (default <input>.response)")
	return cmd
}
