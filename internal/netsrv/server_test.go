package netsrv

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matchbook/internal/engine"
	"matchbook/internal/wire"
)

func startTestServer(t *testing.T) (net.Conn, *engine.OrderBook) {
	t.Helper()

	book := engine.NewOrderBook(16, 4, true)
	srv := New("127.0.0.1", 0, book)
	srv.Ready = make(chan string, 1)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go srv.Run(ctx)

	var addr string
	select {
	case addr = <-srv.Ready:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not become ready in time")
	}

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, book
}

func TestServerRoundTripsLimitOrder(t *testing.T) {
	conn, _ := startTestServer(t)

	msg := wire.NewOrderMessage{Type: wire.MsgLimit, ID: 1, UserID: 1, Side: 0, Qty: 12, Price: 395}
	_, err := conn.Write(msg.Encode())
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	report, err := wire.DecodeEventReport(buf[:n])
	require.NoError(t, err)
	require.EqualValues(t, engine.Open, report.EventKind)
	require.EqualValues(t, 1, report.ID)
}

func TestServerAnswersDepthQuery(t *testing.T) {
	conn, _ := startTestServer(t)

	place := wire.NewOrderMessage{Type: wire.MsgLimit, ID: 1, UserID: 1, Side: 0, Qty: 12, Price: 395}
	_, err := conn.Write(place.Encode())
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	ackBuf := make([]byte, 1024)
	_, err = conn.Read(ackBuf)
	require.NoError(t, err)

	query := wire.DepthQuery{Levels: 5}
	_, err = conn.Write(query.Encode())
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	report, err := wire.DecodeDepthReport(buf[:n])
	require.NoError(t, err)
	require.Len(t, report.Bids, 1)
	require.EqualValues(t, 395, report.Bids[0].Price)
	require.EqualValues(t, 12, report.Bids[0].Qty)
}
