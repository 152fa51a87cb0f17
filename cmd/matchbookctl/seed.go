package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"matchbook/internal/wire"
)

// seedOrders is the fixture book from original_source/src/wasm.rs's
// add_random_orders, reordered into this CLI's
// id,user_id,limit,side,qty,price grammar with a constant seed user id.
var seedOrders = []string{
	"1,1,limit,bid,10,19990",
	"2,1,limit,bid,20,19989",
	"3,1,limit,bid,3,19978",
	"4,1,limit,bid,4,19955",
	"5,1,limit,bid,10,19991",
	"6,1,limit,bid,20,19994",
	"7,1,limit,bid,3,19990",
	"8,1,limit,bid,4,19979",
	"9,1,limit,ask,5,19990",
	"10,1,limit,ask,12,19999",
	"11,1,limit,ask,3,20012",
	"12,1,limit,ask,4,20042",
	"13,1,limit,ask,100,20000",
	"14,1,limit,ask,20,20001",
	"15,1,limit,ask,3,20003",
	"16,1,limit,ask,4,20012",
	"17,1,limit,ask,1,20011",
	"18,1,limit,ask,2,20009",
	"19,1,limit,ask,2,20006",
	"20,1,limit,ask,2,20006",
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate a fresh matchbookd instance with a fixed set of resting orders",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverAddr, err)
	}
	defer conn.Close()

	for _, line := range seedOrders {
		text, err := wire.ParseTextCommand(line)
		if err != nil {
			return fmt.Errorf("seed fixture %q: %w", line, err)
		}

		msg := wire.NewOrderMessage{
			Type:   text.Type,
			ID:     text.ID,
			UserID: text.UserID,
			Side:   text.Side,
			Qty:    text.Qty,
			Price:  text.Price,
		}
		if _, err := conn.Write(msg.Encode()); err != nil {
			return fmt.Errorf("sending %q: %w", line, err)
		}
		if err := printEventReport(conn); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}

	return nil
}
