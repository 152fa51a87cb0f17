package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"matchbook/internal/wire"
)

var cancelFlags struct {
	id uint64
}

func newCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a resting order",
		Long:  "Cancel an order by id. Cancelling an unknown or already-filled id still reports Cancelled.",
		RunE:  runCancel,
	}
	cmd.Flags().Uint64Var(&cancelFlags.id, "id", 0, "order id to cancel")
	return cmd
}

func runCancel(cmd *cobra.Command, args []string) error {
	msg := wire.NewOrderMessage{Type: wire.MsgCancel, ID: cancelFlags.id}

	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverAddr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(msg.Encode()); err != nil {
		return fmt.Errorf("sending cancel: %w", err)
	}

	return printEventReport(conn)
}
