package packet_codec

import (
	"sync"

	"github.com/orbit-w/golib/bases/packet"
	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: control
   @2024 4月 周日 15:47
*/

// PacketMsg is one inbound packet delivered through a ReceiveBuf: the
// id, a pooled copy of the body, or a terminal error.
type PacketMsg struct {
	id  wire.Id
	buf packet.IPacket
	err error
}

// ReceiveBuf buffers inbound packets between the read pump and Recv
// callers, unbounded so the pump never blocks on a slow consumer.
//
// Closing stops new puts but keeps draining: packets queued before
// OnClose are still delivered, and the channel is closed only once the
// backlog is empty.
type ReceiveBuf struct {
	c       chan PacketMsg
	mu      sync.Mutex
	buf     []PacketMsg
	err     error
	closed  bool
	chEnded bool
}

func NewReceiveBuf(size int) *ReceiveBuf {
	return &ReceiveBuf{
		c:   make(chan PacketMsg, 1),
		buf: make([]PacketMsg, 0, size),
	}
}

func (rb *ReceiveBuf) OnClose() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.closed {
		return
	}
	rb.closed = true
	if rb.err == nil {
		rb.err = codec_err.ErrConnDone
	}
	rb.endIfDrained()
}

func (rb *ReceiveBuf) put(m PacketMsg) error {
	rb.mu.Lock()
	if rb.closed || rb.err != nil {
		rb.mu.Unlock()
		return rb.err
	}

	if m.err != nil {
		rb.err = m.err
	}
	if len(rb.buf) == 0 {
		select {
		case rb.c <- m:
			rb.mu.Unlock()
			return nil
		default:
		}
	}
	rb.buf = append(rb.buf, m)
	rb.mu.Unlock()
	return nil
}

// load shifts the next buffered message into the channel, if any.
func (rb *ReceiveBuf) load() {
	rb.mu.Lock()
	if len(rb.buf) > 0 && !rb.chEnded {
		select {
		case rb.c <- rb.buf[0]:
			rb.buf[0] = PacketMsg{}
			rb.buf = rb.buf[1:]
		default:
		}
	}
	rb.endIfDrained()
	rb.mu.Unlock()
}

// endIfDrained closes the channel once the buf is closed and empty.
// Callers hold rb.mu.
func (rb *ReceiveBuf) endIfDrained() {
	if rb.closed && len(rb.buf) == 0 && !rb.chEnded {
		rb.chEnded = true
		close(rb.c)
	}
}

func (rb *ReceiveBuf) get() <-chan PacketMsg {
	return rb.c
}
