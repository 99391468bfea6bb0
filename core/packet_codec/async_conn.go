package packet_codec

import (
	"context"
	"io"

	"github.com/orbit-w/golib/bases/packet"
	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

/*
   @Author: orbit-w
   @File: async_conn
   @2024 4月 周日 16:33
*/

// AsyncConn drives a Conn with pump goroutines so callers never block
// on the transport directly: Send enqueues onto a lock-free queue
// drained by a single writer goroutine, and a read pump delivers
// inbound packets through a ReceiveBuf to Recv.
//
// Each pump is the sole user of its half of the Conn, preserving the
// codec's single-owner rule. Configuration calls (state, threshold,
// encryption) touch both halves, so make them from the receive loop
// between packets, the way the Minecraft login sequence does.
type AsyncConn struct {
	conn   *Conn
	state  atomic.Uint32
	sw     *SenderWrapper
	rb     *ReceiveBuf
	gr     *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAsyncConn wraps c and starts the pumps.
func NewAsyncConn(c *Conn) *AsyncConn {
	ctx, cancel := context.WithCancel(context.Background())
	ac := &AsyncConn{
		conn:   c,
		rb:     NewReceiveBuf(DefaultRecvBufSize),
		ctx:    ctx,
		cancel: cancel,
	}
	ac.sw = NewSender(ac.sendPacket)

	ac.gr, _ = errgroup.WithContext(ctx)
	ac.gr.Go(ac.readPump)
	return ac
}

// Send copies body into a pooled buffer and enqueues it. The copy is
// required: the queue outlives the caller's slice.
func (ac *AsyncConn) Send(id int32, body []byte) error {
	if ac.state.Load() == StatusDisconnected {
		return codec_err.ErrConnDone
	}
	w := packet.Writer()
	w.Write(body)
	if closed := ac.sw.Send(id, w); closed {
		w.Return()
		return codec_err.ErrConnDone
	}
	return nil
}

// Recv returns the next inbound packet as a pooled copy; the caller
// must Return it. Terminal conditions surface as io.EOF (clean
// disconnect) or the read error that killed the pump; the packet is
// always nil on error. Packets queued before the pump died are still
// delivered, in order, ahead of the terminal error.
func (ac *AsyncConn) Recv() (wire.Id, packet.IPacket, error) {
	// drain queued packets before honoring shutdown
	select {
	case msg, ok := <-ac.rb.get():
		return ac.recvMsg(msg, ok)
	default:
	}

	select {
	case msg, ok := <-ac.rb.get():
		return ac.recvMsg(msg, ok)
	case <-ac.ctx.Done():
		return wire.Id{}, nil, codec_err.ErrConnDone
	}
}

func (ac *AsyncConn) recvMsg(msg PacketMsg, ok bool) (wire.Id, packet.IPacket, error) {
	if !ok {
		return wire.Id{}, nil, codec_err.ErrConnDone
	}
	ac.rb.load()
	if msg.err != nil {
		if msg.buf != nil {
			msg.buf.Return()
		}
		return msg.id, nil, msg.err
	}
	return msg.id, msg.buf, nil
}

// SetState switches the protocol state on both halves.
func (ac *AsyncConn) SetState(next wire.State) {
	ac.conn.SetState(next)
}

// SetCompressionThreshold mirrors the threshold onto both halves.
func (ac *AsyncConn) SetCompressionThreshold(threshold int) {
	ac.conn.SetCompressionThreshold(threshold)
}

// EnableEncryption installs the cipher pair on both halves.
func (ac *AsyncConn) EnableEncryption(readKey, readIV, writeKey, writeIV []byte) error {
	return ac.conn.EnableEncryption(readKey, readIV, writeKey, writeIV)
}

// Close tears the connection down: the send queue stops accepting,
// the underlying stream is closed and the read pump unblocks.
func (ac *AsyncConn) Close() error {
	if !ac.state.CompareAndSwap(StatusConnected, StatusDisconnected) {
		return nil
	}
	ac.sw.OnClose()
	ac.cancel()
	if closer, ok := ac.conn.Unwrap().(io.Closer); ok {
		_ = closer.Close()
	}
	return nil
}

// Wait blocks until the read pump has exited.
func (ac *AsyncConn) Wait() error {
	return ac.gr.Wait()
}

func (ac *AsyncConn) sendPacket(id int32, body packet.IPacket) error {
	defer body.Return()
	return ac.conn.WriteRawPacket(wire.RawPacket{
		ID:   wire.Id{ID: id},
		Body: body.Data(),
	})
}

func (ac *AsyncConn) readPump() error {
	defer ac.rb.OnClose()

	for {
		raw, err := ac.conn.ReadRawPacket()
		if err != nil {
			_ = ac.rb.put(PacketMsg{err: err})
			_ = ac.Close()
			return err
		}
		if raw == nil {
			// clean disconnect
			_ = ac.rb.put(PacketMsg{err: io.EOF})
			_ = ac.Close()
			return nil
		}

		// copy out of the reader's buffer before the next read
		w := packet.Writer()
		w.Write(raw.Body)
		if perr := ac.rb.put(PacketMsg{id: raw.ID, buf: w}); perr != nil {
			w.Return()
			return perr
		}
	}
}
