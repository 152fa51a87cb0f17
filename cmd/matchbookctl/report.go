package main

import (
	"fmt"
	"net"

	"matchbook/internal/wire"
)

var eventKindNames = []string{"Rejected", "Open", "Cancelled", "PartiallyFilled", "Filled"}

func printEventReport(conn net.Conn) error {
	buf := make([]byte, 4*1024)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	report, err := wire.DecodeEventReport(buf[:n])
	if err != nil {
		return fmt.Errorf("decoding report: %w", err)
	}

	kind := "Unknown"
	if int(report.EventKind) < len(eventKindNames) {
		kind = eventKindNames[report.EventKind]
	}

	if report.ReportType == wire.ReportError || kind == "Rejected" {
		fmt.Printf("%s id=%d reason=%s\n", kind, report.ID, report.Reason)
		return nil
	}

	fmt.Printf("%s id=%d filled_qty=%d\n", kind, report.ID, report.FilledQty)
	for _, fill := range report.Fills {
		fmt.Printf("  fill maker=%d qty=%d price=%d total_fill=%t\n", fill.MakerID, fill.Qty, fill.Price, fill.TotalFill)
	}
	return nil
}
