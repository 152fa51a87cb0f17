package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"matchbook/internal/wire"
)

var depthFlags struct {
	levels uint16
}

func newDepthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depth",
		Short: "Print a depth snapshot of both sides of the book",
		RunE:  runDepth,
	}
	cmd.Flags().Uint16Var(&depthFlags.levels, "levels", 10, "number of price levels per side")
	return cmd
}

func runDepth(cmd *cobra.Command, args []string) error {
	query := wire.DepthQuery{Levels: depthFlags.levels}

	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverAddr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(query.Encode()); err != nil {
		return fmt.Errorf("sending depth query: %w", err)
	}

	buf := make([]byte, 4*1024)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("reading depth report: %w", err)
	}

	report, err := wire.DecodeDepthReport(buf[:n])
	if err != nil {
		return fmt.Errorf("decoding depth report: %w", err)
	}

	fmt.Println("asks (best first):")
	for _, level := range report.Asks {
		fmt.Printf("  %d @ %d\n", level.Qty, level.Price)
	}
	fmt.Println("bids (best first):")
	for _, level := range report.Bids {
		fmt.Printf("  %d @ %d\n", level.Qty, level.Price)
	}
	return nil
}
