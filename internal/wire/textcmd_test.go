package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextCommandValidLines(t *testing.T) {
	cases := []struct {
		line string
		want TextCommand
	}{
		{"1,9,market,bid,5", TextCommand{Type: MsgMarket, ID: 1, UserID: 9, Side: 0, Qty: 5}},
		{"2,9,limit,ask,10,395", TextCommand{Type: MsgLimit, ID: 2, UserID: 9, Side: 1, Qty: 10, Price: 395}},
		{"3,1,ioc,bid,1,100", TextCommand{Type: MsgIOC, ID: 3, UserID: 1, Side: 0, Qty: 1, Price: 100}},
		{"4,1,fok,ask,2,100", TextCommand{Type: MsgFOK, ID: 4, UserID: 1, Side: 1, Qty: 2, Price: 100}},
		{"5,1,limit,BID,3,100", TextCommand{Type: MsgLimit, ID: 5, UserID: 1, Side: 0, Qty: 3, Price: 100}},
		{"6,1,limit,Ask,3,100", TextCommand{Type: MsgLimit, ID: 6, UserID: 1, Side: 1, Qty: 3, Price: 100}},
		{"99,cancel", TextCommand{Type: MsgCancel, ID: 99}},
	}

	for _, tc := range cases {
		got, err := ParseTextCommand(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}
}

func TestParseTextCommandRejectsBadFieldCount(t *testing.T) {
	_, err := ParseTextCommand("1,9,limit,bid,5")
	assert.Error(t, err)
}

func TestParseTextCommandRejectsUnknownType(t *testing.T) {
	_, err := ParseTextCommand("1,9,stop,bid,5")
	assert.Error(t, err)
}

func TestParseTextCommandRejectsBadSide(t *testing.T) {
	_, err := ParseTextCommand("1,9,market,sideways,5")
	assert.Error(t, err)
}

func TestParseTextCommandRejectsBadInteger(t *testing.T) {
	_, err := ParseTextCommand("notanumber,9,market,bid,5")
	assert.Error(t, err)
}
