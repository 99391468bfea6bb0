package packet_codec

import (
	"io"
	"testing"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
	"github.com/stretchr/testify/assert"
)

func Test_ReceiveBufDrainAfterClose(t *testing.T) {
	rb := NewReceiveBuf(DefaultRecvBufSize)

	// one message in flight, two queued behind a slow consumer
	for i := int32(0); i < 3; i++ {
		assert.NoError(t, rb.put(PacketMsg{id: wire.Id{ID: i}}))
	}
	rb.OnClose()

	// the backlog still drains, in order, and loading past the end
	// must not panic on the closed channel
	assert.NotPanics(t, func() {
		for i := int32(0); i < 3; i++ {
			msg, ok := <-rb.get()
			assert.True(t, ok)
			assert.Equal(t, i, msg.id.ID)
			rb.load()
		}
	})

	_, ok := <-rb.get()
	assert.False(t, ok)
}

func Test_ReceiveBufPutAfterClose(t *testing.T) {
	rb := NewReceiveBuf(DefaultRecvBufSize)
	rb.OnClose()
	rb.OnClose() // idempotent

	assert.ErrorIs(t, rb.put(PacketMsg{id: wire.Id{ID: 1}}), codec_err.ErrConnDone)
	_, ok := <-rb.get()
	assert.False(t, ok)
}

func Test_ReceiveBufErrorIsTerminal(t *testing.T) {
	rb := NewReceiveBuf(DefaultRecvBufSize)
	assert.NoError(t, rb.put(PacketMsg{id: wire.Id{ID: 1}}))
	assert.NoError(t, rb.put(PacketMsg{err: io.EOF}))
	assert.ErrorIs(t, rb.put(PacketMsg{id: wire.Id{ID: 2}}), io.EOF)

	msg, ok := <-rb.get()
	assert.True(t, ok)
	assert.Equal(t, int32(1), msg.id.ID)
	rb.load()

	msg, ok = <-rb.get()
	assert.True(t, ok)
	assert.ErrorIs(t, msg.err, io.EOF)
}
