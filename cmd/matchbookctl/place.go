package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"matchbook/internal/wire"
)

var placeFlags struct {
	kind   string
	id     uint64
	user   uint64
	side   string
	qty    uint64
	price  uint64
}

func newPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a new order",
		Long: `Place a new order against a matchbookd server.

Examples:
  matchbookctl place --type limit --id 1 --user 1 --side bid --qty 12 --price 395
  matchbookctl place --type market --id 2 --user 2 --side ask --qty 5`,
		RunE: runPlace,
	}

	cmd.Flags().StringVar(&placeFlags.kind, "type", "limit", "order type: market, limit, ioc, fok")
	cmd.Flags().Uint64Var(&placeFlags.id, "id", 0, "order id (must be strictly greater than every previous non-cancel id)")
	cmd.Flags().Uint64Var(&placeFlags.user, "user", 0, "user id")
	cmd.Flags().StringVar(&placeFlags.side, "side", "bid", "order side: bid or ask")
	cmd.Flags().Uint64Var(&placeFlags.qty, "qty", 1, "order quantity")
	cmd.Flags().Uint64Var(&placeFlags.price, "price", 0, "limit price (ignored for market orders)")

	return cmd
}

func runPlace(cmd *cobra.Command, args []string) error {
	var typ wire.MessageType
	switch placeFlags.kind {
	case "market":
		typ = wire.MsgMarket
	case "limit":
		typ = wire.MsgLimit
	case "ioc":
		typ = wire.MsgIOC
	case "fok":
		typ = wire.MsgFOK
	default:
		return fmt.Errorf("unknown order type %q", placeFlags.kind)
	}

	var side uint8
	switch placeFlags.side {
	case "bid":
		side = 0
	case "ask":
		side = 1
	default:
		return fmt.Errorf("unknown side %q", placeFlags.side)
	}

	msg := wire.NewOrderMessage{
		Type:   typ,
		ID:     placeFlags.id,
		UserID: placeFlags.user,
		Side:   side,
		Qty:    placeFlags.qty,
		Price:  placeFlags.price,
	}

	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverAddr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(msg.Encode()); err != nil {
		return fmt.Errorf("sending order: %w", err)
	}

	return printEventReport(conn)
}
