// Package wire implements the binary and text encodings used to carry
// commands and events between a matchbookd server and its clients,
// adapted from saiputravu-Exchange/internal/net/messages.go's
// fixed-header-plus-payload framing for the single-symbol, uint64
// priced/quantified command set of SPEC_FULL.md §6.
package wire

import (
	"encoding/binary"
	"errors"
)

var (
	ErrInvalidMessageType = errors.New("wire: invalid message type")
	ErrMessageTooShort    = errors.New("wire: message too short for its declared kind")
)

// MessageType tags the kind of command carried by a NewOrderMessage,
// mirroring engine.CommandKind without importing the engine package
// (the wire format is a stable contract independent of the in-process
// representation).
type MessageType uint8

const (
	MsgMarket MessageType = iota
	MsgLimit
	MsgIOC
	MsgFOK
	MsgCancel
	MsgDepthQuery
)

// DepthQuery requests a depth snapshot: 1 byte type, 2 bytes level
// count, 1 byte include-orders flag.
const DepthQueryLen = 1 + 2 + 1

type DepthQuery struct {
	Levels        uint16
	IncludeOrders bool
}

func (q DepthQuery) Encode() []byte {
	buf := make([]byte, DepthQueryLen)
	buf[0] = byte(MsgDepthQuery)
	binary.BigEndian.PutUint16(buf[1:3], q.Levels)
	if q.IncludeOrders {
		buf[3] = 1
	}
	return buf
}

func DecodeDepthQuery(buf []byte) (DepthQuery, error) {
	if len(buf) < DepthQueryLen {
		return DepthQuery{}, ErrMessageTooShort
	}
	return DepthQuery{
		Levels:        binary.BigEndian.Uint16(buf[1:3]),
		IncludeOrders: buf[3] != 0,
	}, nil
}

// NewOrderMessage is the fixed-width wire encoding of a single
// command: 1 byte type, 8 bytes order id, 8 bytes user id, 1 byte
// side, 8 bytes quantity, 8 bytes price. Price is encoded and decoded
// for every type (the engine ignores it for Market and Cancel) and
// always occupies its 8 bytes, so every command is the same length on
// the wire.
const NewOrderMessageLen = 1 + 8 + 8 + 1 + 8 + 8

type NewOrderMessage struct {
	Type   MessageType
	ID     uint64
	UserID uint64
	Side   uint8
	Qty    uint64
	Price  uint64
}

// Encode serialises m into a freshly allocated NewOrderMessageLen-byte
// buffer, big-endian, following the teacher's Report.Serialize style
// of writing fixed fields directly into byte offsets.
func (m NewOrderMessage) Encode() []byte {
	buf := make([]byte, NewOrderMessageLen)
	buf[0] = byte(m.Type)
	binary.BigEndian.PutUint64(buf[1:9], m.ID)
	binary.BigEndian.PutUint64(buf[9:17], m.UserID)
	buf[17] = m.Side
	binary.BigEndian.PutUint64(buf[18:26], m.Qty)
	binary.BigEndian.PutUint64(buf[26:34], m.Price)
	return buf
}

// DecodeNewOrder parses a NewOrderMessage from the front of buf.
func DecodeNewOrder(buf []byte) (NewOrderMessage, error) {
	if len(buf) < NewOrderMessageLen {
		return NewOrderMessage{}, ErrMessageTooShort
	}
	typ := MessageType(buf[0])
	if typ > MsgCancel {
		return NewOrderMessage{}, ErrInvalidMessageType
	}
	return NewOrderMessage{
		Type:   typ,
		ID:     binary.BigEndian.Uint64(buf[1:9]),
		UserID: binary.BigEndian.Uint64(buf[9:17]),
		Side:   buf[17],
		Qty:    binary.BigEndian.Uint64(buf[18:26]),
		Price:  binary.BigEndian.Uint64(buf[26:34]),
	}, nil
}

// ReportMessageType distinguishes a successful event report from an
// out-of-band error report, mirroring the teacher's ReportMessageType.
type ReportMessageType uint8

const (
	ReportEvent ReportMessageType = iota
	ReportError
	ReportDepth
)

// EventReport is the wire encoding of an engine.Event: 1 byte report
// type, 1 byte event kind, 8 bytes order id, 8 bytes filled qty,
// 2 bytes reason length, 4 bytes fill count, followed by the reason
// string and then each fill's fixed-width encoding.
type EventReport struct {
	ReportType ReportMessageType
	EventKind  uint8
	ID         uint64
	FilledQty  uint64
	Reason     string
	Fills      []FillReport
}

// FillReport is the wire encoding of a single engine.FillMetadata.
type FillReport struct {
	MakerID   uint64
	Qty       uint64
	Price     uint64
	TakerSide uint8
	TotalFill bool
}

const fillReportLen = 8 + 8 + 8 + 1 + 1

const eventReportFixedLen = 1 + 1 + 8 + 8 + 2 + 4

// Encode serialises r, following the teacher's fixed-header-then-
// variable-tail layout.
func (r EventReport) Encode() []byte {
	total := eventReportFixedLen + len(r.Reason) + len(r.Fills)*fillReportLen
	buf := make([]byte, total)

	buf[0] = byte(r.ReportType)
	buf[1] = r.EventKind
	binary.BigEndian.PutUint64(buf[2:10], r.ID)
	binary.BigEndian.PutUint64(buf[10:18], r.FilledQty)
	binary.BigEndian.PutUint16(buf[18:20], uint16(len(r.Reason)))
	binary.BigEndian.PutUint32(buf[20:24], uint32(len(r.Fills)))

	offset := eventReportFixedLen
	copy(buf[offset:], r.Reason)
	offset += len(r.Reason)

	for _, fill := range r.Fills {
		binary.BigEndian.PutUint64(buf[offset:offset+8], fill.MakerID)
		binary.BigEndian.PutUint64(buf[offset+8:offset+16], fill.Qty)
		binary.BigEndian.PutUint64(buf[offset+16:offset+24], fill.Price)
		buf[offset+24] = fill.TakerSide
		if fill.TotalFill {
			buf[offset+25] = 1
		}
		offset += fillReportLen
	}

	return buf
}

// DecodeEventReport parses an EventReport from buf.
func DecodeEventReport(buf []byte) (EventReport, error) {
	if len(buf) < eventReportFixedLen {
		return EventReport{}, ErrMessageTooShort
	}

	r := EventReport{
		ReportType: ReportMessageType(buf[0]),
		EventKind:  buf[1],
		ID:         binary.BigEndian.Uint64(buf[2:10]),
		FilledQty:  binary.BigEndian.Uint64(buf[10:18]),
	}
	reasonLen := int(binary.BigEndian.Uint16(buf[18:20]))
	fillCount := int(binary.BigEndian.Uint32(buf[20:24]))

	offset := eventReportFixedLen
	if len(buf) < offset+reasonLen+fillCount*fillReportLen {
		return EventReport{}, ErrMessageTooShort
	}

	r.Reason = string(buf[offset : offset+reasonLen])
	offset += reasonLen

	r.Fills = make([]FillReport, fillCount)
	for i := range r.Fills {
		r.Fills[i] = FillReport{
			MakerID:   binary.BigEndian.Uint64(buf[offset : offset+8]),
			Qty:       binary.BigEndian.Uint64(buf[offset+8 : offset+16]),
			Price:     binary.BigEndian.Uint64(buf[offset+16 : offset+24]),
			TakerSide: buf[offset+24],
			TotalFill: buf[offset+25] != 0,
		}
		offset += fillReportLen
	}

	return r, nil
}

// DepthLevelReport is the wire encoding of one aggregated price level.
// Per-order detail is never carried over the wire even when a query's
// IncludeOrders flag is set: the flag only controls whether the
// server resolves per-order detail locally before aggregating, a
// simplification kept deliberately small for this protocol's size.
type DepthLevelReport struct {
	Price uint64
	Qty   uint64
}

const depthLevelReportLen = 8 + 8

const depthReportFixedLen = 1 + 2 + 2 + 2

// DepthReport is the wire encoding of an engine.BookDepth: 1 byte
// report type, 2 bytes level count, 2 bytes ask-level count, 2 bytes
// bid-level count, followed by the ask levels then the bid levels.
type DepthReport struct {
	Levels uint16
	Asks   []DepthLevelReport
	Bids   []DepthLevelReport
}

func (r DepthReport) Encode() []byte {
	total := depthReportFixedLen + (len(r.Asks)+len(r.Bids))*depthLevelReportLen
	buf := make([]byte, total)

	buf[0] = byte(ReportDepth)
	binary.BigEndian.PutUint16(buf[1:3], r.Levels)
	binary.BigEndian.PutUint16(buf[3:5], uint16(len(r.Asks)))
	binary.BigEndian.PutUint16(buf[5:7], uint16(len(r.Bids)))

	offset := depthReportFixedLen
	for _, level := range r.Asks {
		binary.BigEndian.PutUint64(buf[offset:offset+8], level.Price)
		binary.BigEndian.PutUint64(buf[offset+8:offset+16], level.Qty)
		offset += depthLevelReportLen
	}
	for _, level := range r.Bids {
		binary.BigEndian.PutUint64(buf[offset:offset+8], level.Price)
		binary.BigEndian.PutUint64(buf[offset+8:offset+16], level.Qty)
		offset += depthLevelReportLen
	}

	return buf
}

func DecodeDepthReport(buf []byte) (DepthReport, error) {
	if len(buf) < depthReportFixedLen {
		return DepthReport{}, ErrMessageTooShort
	}

	r := DepthReport{Levels: binary.BigEndian.Uint16(buf[1:3])}
	askCount := int(binary.BigEndian.Uint16(buf[3:5]))
	bidCount := int(binary.BigEndian.Uint16(buf[5:7]))

	offset := depthReportFixedLen
	if len(buf) < offset+(askCount+bidCount)*depthLevelReportLen {
		return DepthReport{}, ErrMessageTooShort
	}

	r.Asks = make([]DepthLevelReport, askCount)
	for i := range r.Asks {
		r.Asks[i] = DepthLevelReport{
			Price: binary.BigEndian.Uint64(buf[offset : offset+8]),
			Qty:   binary.BigEndian.Uint64(buf[offset+8 : offset+16]),
		}
		offset += depthLevelReportLen
	}

	r.Bids = make([]DepthLevelReport, bidCount)
	for i := range r.Bids {
		r.Bids[i] = DepthLevelReport{
			Price: binary.BigEndian.Uint64(buf[offset : offset+8]),
			Qty:   binary.BigEndian.Uint64(buf[offset+8 : offset+16]),
		}
		offset += depthLevelReportLen
	}

	return r, nil
}
