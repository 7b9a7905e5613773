package main

import (
	"os"

	"emberwallet/cmd/emberwallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
