// Package netsrv implements the TCP front end of a matchbookd
// instance: an accept loop feeding a worker pool, a session table
// keyed by connection-scoped ids, and the glue between the wire
// protocol and a single engine.OrderBook. Adapted from
// saiputravu-Exchange/internal/net/server.go and
// saiputravu-Exchange/internal/worker.go.
package netsrv

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"matchbook/internal/engine"
	"matchbook/internal/metrics"
	"matchbook/internal/wire"
)

const (
	maxRecvSize     = 4 * 1024
	defaultNWorkers = 10
	connIdleTimeout = 30 * time.Second
)

// clientSession tracks one live TCP connection by a session id
// generated with google/uuid, replacing the teacher's use of the
// remote address as a map key (unreliable once NAT or connection
// reuse are in play).
type clientSession struct {
	id   uuid.UUID
	conn net.Conn
}

// clientMessage links a decoded wire frame to the session that sent
// it, mirroring the teacher's ClientMessage. Exactly one of cmd or
// depthQuery is set, discriminated by isDepthQuery.
type clientMessage struct {
	sessionID    uuid.UUID
	isDepthQuery bool
	cmd          wire.NewOrderMessage
	depthQuery   wire.DepthQuery
}

// Server is a single-symbol matchbookd TCP front end.
type Server struct {
	address string
	port    int
	book    *engine.OrderBook

	pool WorkerPool

	sessionsMu sync.Mutex
	sessions   map[uuid.UUID]clientSession
	connIDs    map[net.Conn]uuid.UUID

	inbox chan clientMessage

	// Ready, if non-nil, receives the bound listener address once Run
	// starts accepting connections. Used by tests that bind :0.
	Ready chan string
}

// New constructs a Server bound to address:port, dispatching every
// decoded command against book.
func New(address string, port int, book *engine.OrderBook) *Server {
	return &Server{
		address:  address,
		port:     port,
		book:     book,
		pool:     NewWorkerPool(defaultNWorkers),
		sessions: make(map[uuid.UUID]clientSession),
		connIDs:  make(map[net.Conn]uuid.UUID),
		inbox:    make(chan clientMessage, 1),
	}
}

// Run starts the accept loop and blocks until ctx is cancelled or a
// fatal error brings the tomb down.
func (s *Server) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("netsrv: listen: %w", err)
	}
	// Closing the listener once ctx is done unblocks Accept so the loop
	// below can observe the cancellation and return.
	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("netsrv: error closing listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Str("address", s.address).Int("port", s.port).Msg("netsrv: listening")
	if s.Ready != nil {
		s.Ready <- listener.Addr().String()
	}

	for {
		select {
		case <-ctx.Done():
			return t.Wait()
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("netsrv: accept error")
				continue
			}
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

// sessionHandler drains decoded commands and executes them against
// the book one at a time, keeping Execute single-threaded per
// SPEC_FULL.md §5.
func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.inbox:
			s.handleMessage(msg)
		}
	}
}

func (s *Server) handleMessage(msg clientMessage) {
	if msg.isDepthQuery {
		s.handleDepthQuery(msg)
		return
	}

	start := time.Now()
	cmd := toCommand(msg.cmd)
	event := s.book.Execute(cmd)
	metrics.ObserveDispatch(start)
	metrics.RecordEvent(event.Kind)
	metrics.RecordFills(event.Fills)
	metrics.RecordBestPrices(s.book)

	report := toEventReport(event)
	if err := s.send(msg.sessionID, report.Encode()); err != nil {
		log.Error().Err(err).Str("session", msg.sessionID.String()).Msg("netsrv: failed to deliver report")
	}
}

func (s *Server) handleDepthQuery(msg clientMessage) {
	levels := int(msg.depthQuery.Levels)
	depth := s.book.Depth(levels, msg.depthQuery.IncludeOrders)
	report := toDepthReport(depth)
	if err := s.send(msg.sessionID, report.Encode()); err != nil {
		log.Error().Err(err).Str("session", msg.sessionID.String()).Msg("netsrv: failed to deliver depth report")
	}
}

// handleConnection reads exactly one frame off conn, decodes it, and
// forwards it to sessionHandler, then requeues the connection for its
// next frame. One fatal read/parse error tears the session down.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("netsrv: unexpected task type %T", task)
	}

	sessionID, ok := s.sessionIDFor(conn)
	if !ok {
		return nil
	}

	if err := conn.SetDeadline(time.Now().Add(connIdleTimeout)); err != nil {
		log.Error().Err(err).Msg("netsrv: failed to set read deadline")
		s.removeSession(sessionID)
		return nil
	}

	buf := make([]byte, maxRecvSize)
	select {
	case <-t.Dying():
		return nil
	default:
		n, err := conn.Read(buf)
		if err != nil {
			s.removeSession(sessionID)
			return nil
		}

		frame := buf[:n]
		if len(frame) == 0 {
			log.Error().Str("session", sessionID.String()).Msg("netsrv: empty frame")
			s.removeSession(sessionID)
			return nil
		}

		var msg clientMessage
		if wire.MessageType(frame[0]) == wire.MsgDepthQuery {
			query, err := wire.DecodeDepthQuery(frame)
			if err != nil {
				log.Error().Err(err).Str("session", sessionID.String()).Msg("netsrv: malformed depth query")
				s.removeSession(sessionID)
				return nil
			}
			msg = clientMessage{sessionID: sessionID, isDepthQuery: true, depthQuery: query}
		} else {
			cmd, err := wire.DecodeNewOrder(frame)
			if err != nil {
				log.Error().Err(err).Str("session", sessionID.String()).Msg("netsrv: malformed frame")
				s.removeSession(sessionID)
				return nil
			}
			msg = clientMessage{sessionID: sessionID, cmd: cmd}
		}

		s.inbox <- msg
		s.pool.AddTask(conn)
	}
	return nil
}

func (s *Server) send(id uuid.UUID, payload []byte) error {
	s.sessionsMu.Lock()
	session, ok := s.sessions[id]
	s.sessionsMu.Unlock()
	if !ok {
		return fmt.Errorf("netsrv: unknown session %s", id)
	}
	_, err := session.conn.Write(payload)
	return err
}

func (s *Server) addSession(conn net.Conn) uuid.UUID {
	id := uuid.New()
	s.sessionsMu.Lock()
	s.sessions[id] = clientSession{id: id, conn: conn}
	s.connIDs[conn] = id
	s.sessionsMu.Unlock()
	return id
}

func (s *Server) sessionIDFor(conn net.Conn) (uuid.UUID, bool) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	id, ok := s.connIDs[conn]
	return id, ok
}

func (s *Server) removeSession(id uuid.UUID) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	if session, ok := s.sessions[id]; ok {
		if err := session.conn.Close(); err != nil {
			log.Error().Err(err).Msg("netsrv: error closing connection")
		}
		delete(s.connIDs, session.conn)
		delete(s.sessions, id)
	}
}
