package packet_codec

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: tcp
   @2024 4月 周日 14:36
*/

// Dial connects to a server and wraps the connection as the client
// side of the protocol: ServerBound writes, ClientBound reads,
// starting in the Handshaking state unless overridden.
func Dial(remoteAddr string, ops ...DialOption) (*Conn, error) {
	conn, err := net.DialTimeout("tcp", remoteAddr, DialTimeout)
	if err != nil {
		return nil, err
	}
	return Wrap(conn, wire.ServerBound, ops...), nil
}

// Wrap adapts an accepted or dialed net.Conn. writeDir is the
// direction of packets this peer writes.
func Wrap(conn net.Conn, writeDir wire.Direction, ops ...DialOption) *Conn {
	op := parseDialOp(ops...)
	c := NewConnWithState(conn, writeDir, op.State)
	c.SetMaxPacketSize(op.MaxPacketSize)
	return c
}

// Server accepts TCP connections and hands each one to a handler as a
// wrapped server-side Conn (ClientBound writes).
type Server struct {
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	handle func(conn *Conn) error
}

// Serve starts the accept loop. The handler runs on its own goroutine
// per connection; the connection is closed when it returns.
func (s *Server) Serve(listener net.Listener, handle func(conn *Conn) error, ops ...AcceptorOptions) {
	op := parseAcceptorOp(ops...)
	ctx, cancel := context.WithCancel(context.Background())
	s.listener = listener
	s.ctx = ctx
	s.cancel = cancel
	s.handle = handle
	go s.acceptLoop(op)
}

// Stop closes the listener and stops the accept loop. Live
// connections are left to their handlers.
func (s *Server) Stop() {
	s.cancel()
	_ = s.listener.Close()
}

func (s *Server) acceptLoop(op AcceptorOptions) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
				time.Sleep(100 * time.Millisecond)
				continue
			}
		}

		go s.handleConn(conn, op)
	}
}

func (s *Server) handleConn(conn net.Conn, op AcceptorOptions) {
	defer func() {
		_ = conn.Close()
	}()

	wrapped := Wrap(conn, wire.ClientBound, DialOption{MaxPacketSize: op.MaxPacketSize})
	if err := s.handle(wrapped); err != nil {
		log.Println("conn handler failed: ", err.Error())
	}
}
