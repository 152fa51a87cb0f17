// Command matchbookctl is a cobra-based client for matchbookd,
// superseding saiputravu-Exchange/cmd/client/client.go's flag-based
// CLI with subcommands per action, styled after
// VictorVVedtion-perp-dex's client/cli command tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverAddr string

func main() {
	root := &cobra.Command{
		Use:   "matchbookctl",
		Short: "Client for a matchbookd order book server",
	}
	root.PersistentFlags().StringVar(&serverAddr, "server", "127.0.0.1:9001", "address of the matchbookd server")

	root.AddCommand(
		newPlaceCmd(),
		newCancelCmd(),
		newDepthCmd(),
		newSeedCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
