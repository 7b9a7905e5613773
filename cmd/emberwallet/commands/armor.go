package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"emberwallet/internal/adapters"
)

var (
	armorInput    string
	unarmorOutput string
)

func armorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armor",
		Short: "Encode a slate file as armored text",
		RunE: func(cmd *cobra.Command, args []string) error {
			slate, err := readSlate(armorInput)
			if err != nil {
				return err
			}
			text, err := adapters.Armor(slate)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&armorInput, "input", "i", "", "slate file to armor (default stdin)")
	return cmd
}

func unarmorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unarmor",
		Short: "Decode armored text back into a slate file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			slate, err := adapters.Unarmor(string(raw))
			if err != nil {
				return err
			}
			return writeSlate(unarmorOutput, slate)
		},
	}
	cmd.Flags().StringVarP(&unarmorOutput, "output", "o", "", "slate file to write (default stdout)")
	return cmd
}
