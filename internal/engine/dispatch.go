package engine

// Execute runs a single command against the book and returns the
// resulting event, per SPEC_FULL.md §4.3 / §6.1. It is the matching
// core's only entry point: admission is checked first (rejecting
// out-of-sequence non-cancel commands without mutating state), then
// the command is dispatched by kind.
func (ob *OrderBook) Execute(cmd Command) Event {
	if !ob.admit(cmd) {
		return Event{Kind: Rejected, ID: cmd.ID, Reason: ReasonInvalidOrderNumber}
	}

	var event Event
	switch cmd.Kind {
	case Market:
		event = ob.executeMarket(cmd)
	case Limit:
		event = ob.executeLimit(cmd)
	case IOC:
		event = ob.executeIOC(cmd)
	case FOK:
		event = ob.executeFOK(cmd)
	case Cancel:
		event = ob.executeCancel(cmd)
	}

	ob.recordStats(event)
	return event
}

// executeMarket implements SPEC_FULL.md §4.3.4's Market row: no fills
// rejects for lack of liquidity, a non-zero residual partially fills,
// full consumption fills. A market order never rests.
func (ob *OrderBook) executeMarket(cmd Command) Event {
	fills, remaining := ob.matchLoop(cmd.ID, cmd.Side, cmd.Qty, nil)
	ob.finalize(fills)

	if len(fills) == 0 {
		return Event{Kind: Rejected, ID: cmd.ID, Reason: ReasonLiquidityNotAvailable}
	}
	return classify(cmd, fills, remaining)
}

// executeLimit implements SPEC_FULL.md §4.3.4's Limit row: it matches
// as far as the limit price allows, then rests any residual at
// cmd.Price, improving the best-price cache if it does.
func (ob *OrderBook) executeLimit(cmd Command) Event {
	price := cmd.Price
	fills, remaining := ob.matchLoop(cmd.ID, cmd.Side, cmd.Qty, &price)
	ob.finalize(fills)

	if remaining > 0 {
		ob.rest(cmd, remaining)
	}

	if len(fills) == 0 {
		return Event{Kind: Open, ID: cmd.ID}
	}
	return classify(cmd, fills, remaining)
}

// executeIOC implements SPEC_FULL.md §4.3.4's IOC row: it matches
// exactly like Limit but never rests a residual (P6) — any unfilled
// quantity is simply dropped.
func (ob *OrderBook) executeIOC(cmd Command) Event {
	price := cmd.Price
	fills, remaining := ob.matchLoop(cmd.ID, cmd.Side, cmd.Qty, &price)
	ob.finalize(fills)

	if len(fills) == 0 {
		return Event{Kind: Rejected, ID: cmd.ID, Reason: ReasonLiquidityNotAvailable}
	}
	return classify(cmd, fills, remaining)
}

// executeFOK implements SPEC_FULL.md §4.3.4's FOK row. The
// feasibility test reuses the exact same matchLoop as every other
// command kind: because matchLoop never mutates state, an infeasible
// FOK simply never reaches finalize, leaving the book byte-identical
// to its pre-command state (P5).
func (ob *OrderBook) executeFOK(cmd Command) Event {
	price := cmd.Price
	fills, remaining := ob.matchLoop(cmd.ID, cmd.Side, cmd.Qty, &price)
	if remaining > 0 {
		return Event{Kind: Rejected, ID: cmd.ID, Reason: ReasonLiquidityNotAvailable}
	}
	ob.finalize(fills)
	return Event{Kind: Filled, ID: cmd.ID, FilledQty: cmd.Qty, Fills: fills}
}

// executeCancel implements SPEC_FULL.md §4.3.5. Cancelling an unknown
// id is not an error: it always returns Cancelled, idempotently.
func (ob *OrderBook) executeCancel(cmd Command) Event {
	if order, ok := ob.directory.Get(cmd.ID); ok {
		levels := ob.asks
		if order.Side == Bid {
			levels = ob.bids
		}
		if level, ok := levels.Get(order.Price); ok {
			level.Remove(cmd.ID)
			levels.DeleteIfEmpty(level)
		}
		ob.directory.Delete(cmd.ID)
		ob.recomputeBestPrices()
	}
	return Event{Kind: Cancelled, ID: cmd.ID}
}

// rest inserts a Limit command's unfilled residual into the
// directory and the aggressor-side queue, improving the best-price
// cache if the resting price does.
func (ob *OrderBook) rest(cmd Command, remaining Qty) {
	ob.directory.Insert(cmd.ID, cmd.UserID, cmd.Side, cmd.Price, remaining)

	if cmd.Side == Bid {
		ob.bids.GetOrCreate(cmd.Price).Push(cmd.ID)
		if cmd.Price > ob.maxBid {
			ob.maxBid = cmd.Price
		}
	} else {
		ob.asks.GetOrCreate(cmd.Price).Push(cmd.ID)
		if cmd.Price < ob.minAsk {
			ob.minAsk = cmd.Price
		}
	}
}

// classify turns a non-empty fill set into PartiallyFilled or Filled
// depending on whether any quantity remains.
func classify(cmd Command, fills []FillMetadata, remaining Qty) Event {
	filledQty := cmd.Qty - remaining
	if remaining > 0 {
		return Event{Kind: PartiallyFilled, ID: cmd.ID, FilledQty: filledQty, Fills: fills}
	}
	return Event{Kind: Filled, ID: cmd.ID, FilledQty: filledQty, Fills: fills}
}
