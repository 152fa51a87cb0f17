package netsrv

import (
	"matchbook/internal/engine"
	"matchbook/internal/wire"
)

func toCommand(m wire.NewOrderMessage) engine.Command {
	kind := engine.Market
	switch m.Type {
	case wire.MsgLimit:
		kind = engine.Limit
	case wire.MsgIOC:
		kind = engine.IOC
	case wire.MsgFOK:
		kind = engine.FOK
	case wire.MsgCancel:
		kind = engine.Cancel
	}

	side := engine.Bid
	if m.Side == 1 {
		side = engine.Ask
	}

	return engine.Command{
		Kind:   kind,
		ID:     m.ID,
		UserID: m.UserID,
		Side:   side,
		Qty:    m.Qty,
		Price:  m.Price,
	}
}

func toEventReport(e engine.Event) wire.EventReport {
	fills := make([]wire.FillReport, len(e.Fills))
	for i, f := range e.Fills {
		side := uint8(0)
		if f.TakerSide == engine.Ask {
			side = 1
		}
		fills[i] = wire.FillReport{
			MakerID:   f.MakerID,
			Qty:       f.Qty,
			Price:     f.Price,
			TakerSide: side,
			TotalFill: f.TotalFill,
		}
	}

	return wire.EventReport{
		ReportType: wire.ReportEvent,
		EventKind:  uint8(e.Kind),
		ID:         e.ID,
		FilledQty:  e.FilledQty,
		Reason:     e.Reason,
		Fills:      fills,
	}
}

func toDepthReport(d engine.BookDepth) wire.DepthReport {
	return wire.DepthReport{
		Levels: uint16(d.Levels),
		Asks:   toDepthLevelReports(d.Asks),
		Bids:   toDepthLevelReports(d.Bids),
	}
}

func toDepthLevelReports(levels []engine.BookLevel) []wire.DepthLevelReport {
	out := make([]wire.DepthLevelReport, len(levels))
	for i, l := range levels {
		out[i] = wire.DepthLevelReport{Price: l.Price, Qty: l.Qty}
	}
	return out
}
