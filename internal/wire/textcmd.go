package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports why a text command line failed to parse,
// mirroring original_source/src/models.rs's OrderParseError variants.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wire: %q: %s", e.Line, e.Reason)
}

// TextCommand is the parsed form of one comma-separated command line.
//
//	id,user_id,market,side,qty
//	id,user_id,limit,side,qty,price
//	id,user_id,ioc,side,qty,price
//	id,user_id,fok,side,qty,price
//	id,cancel
type TextCommand struct {
	Type   MessageType
	ID     uint64
	UserID uint64
	Side   uint8
	Qty    uint64
	Price  uint64
}

// ParseTextCommand parses a single command line per the grammar above.
// Field counts are checked exactly, as in the original_source grammar,
// rather than tolerating trailing or missing fields silently. The
// second field discriminates cancel (a literal "cancel") from every
// other command type, which instead carries a user id there and names
// its type in the third field.
func ParseTextCommand(line string) (TextCommand, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid field count for order type"}
	}

	if fields[1] == "cancel" {
		return parseCancel(line, fields)
	}

	if len(fields) < 3 {
		return TextCommand{}, &ParseError{Line: line, Reason: "missing order type"}
	}

	switch fields[2] {
	case "market":
		return parseMarket(line, fields)
	case "limit":
		return parseLimitLike(line, fields, MsgLimit)
	case "ioc":
		return parseLimitLike(line, fields, MsgIOC)
	case "fok":
		return parseLimitLike(line, fields, MsgFOK)
	default:
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid order type"}
	}
}

func parseCancel(line string, fields []string) (TextCommand, error) {
	if len(fields) != 2 {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid field count for order type"}
	}
	id, err := parseUint(fields[0])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	return TextCommand{Type: MsgCancel, ID: id}, nil
}

func parseMarket(line string, fields []string) (TextCommand, error) {
	if len(fields) != 5 {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid field count for order type"}
	}
	id, err := parseUint(fields[0])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	user, err := parseUint(fields[1])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	side, err := parseSide(fields[3])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid side"}
	}
	qty, err := parseUint(fields[4])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	return TextCommand{Type: MsgMarket, ID: id, UserID: user, Side: side, Qty: qty}, nil
}

func parseLimitLike(line string, fields []string, typ MessageType) (TextCommand, error) {
	if len(fields) != 6 {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid field count for order type"}
	}
	id, err := parseUint(fields[0])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	user, err := parseUint(fields[1])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	side, err := parseSide(fields[3])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid side"}
	}
	qty, err := parseUint(fields[4])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	price, err := parseUint(fields[5])
	if err != nil {
		return TextCommand{}, &ParseError{Line: line, Reason: "invalid integer"}
	}
	return TextCommand{Type: typ, ID: id, UserID: user, Side: side, Qty: qty, Price: price}, nil
}

// parseSide accepts the case-insensitive bid/ask spellings spec.md §6
// requires ({bid,BID,Bid,ask,ASK,Ask}).
func parseSide(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "bid":
		return 0, nil
	case "ask":
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid side %q", s)
	}
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
