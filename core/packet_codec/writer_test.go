package packet_codec

import (
	"bytes"
	"testing"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
	"github.com/stretchr/testify/assert"
)

func Test_WriteWireFormatPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)

	assert.NoError(t, w.WriteRawPacket(wire.RawPacket{
		ID:   wire.Id{ID: 0},
		Body: []byte{0xDE, 0xAD},
	}))
	assert.Equal(t, []byte{0x03, 0x00, 0xDE, 0xAD}, buf.Bytes())
}

func Test_WriteBelowThresholdWireFormat(t *testing.T) {
	// identical to the uncompressed frame except for the extra
	// varint(0) data-length prefix
	raw := wire.RawPacket{ID: wire.Id{ID: 0}, Body: []byte{0xDE, 0xAD}}

	var plain bytes.Buffer
	assert.NoError(t, NewWriter(&plain, wire.ServerBound).WritePacket(raw))

	var comp bytes.Buffer
	cw := NewWriter(&comp, wire.ServerBound)
	cw.SetCompressionThreshold(256)
	assert.NoError(t, cw.WritePacket(raw))

	want := append([]byte{plain.Bytes()[0] + 1, 0x00}, plain.Bytes()[1:]...)
	assert.Equal(t, want, comp.Bytes())
}

func Test_WriteRoundTripPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ClientBound)
	r := NewReader(&buf, wire.ClientBound)

	bodies := [][]byte{
		{},
		{0x42},
		bytes.Repeat([]byte{0xEE}, 300),
	}
	for i, body := range bodies {
		assert.NoError(t, w.WriteRawPacket(wire.RawPacket{
			ID:   wire.Id{ID: int32(i * 3)},
			Body: body,
		}))
	}
	for i, body := range bodies {
		raw, err := r.ReadRawPacket()
		assert.NoError(t, err)
		assert.Equal(t, int32(i*3), raw.ID.ID)
		assert.Equal(t, wire.ClientBound, raw.ID.Direction)
		if len(body) == 0 {
			assert.Empty(t, raw.Body)
		} else {
			assert.Equal(t, body, raw.Body)
		}
	}
}

func Test_WriteRoundTripThresholdSpan(t *testing.T) {
	// bodies on both sides of the threshold share one stream
	const threshold = 8

	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)
	w.SetCompressionThreshold(threshold)
	r := NewReader(&buf, wire.ServerBound)
	r.SetCompressionThreshold(threshold)

	for size := 0; size <= threshold*2; size++ {
		body := bytes.Repeat([]byte{byte(size)}, size)
		assert.NoError(t, w.WriteRawPacket(wire.RawPacket{
			ID:   wire.Id{ID: int32(size)},
			Body: body,
		}))

		raw, err := r.ReadRawPacket()
		assert.NoError(t, err)
		assert.Equal(t, int32(size), raw.ID.ID)
		if size == 0 {
			assert.Empty(t, raw.Body)
		} else {
			assert.Equal(t, body, raw.Body)
		}
	}
}

func Test_WriteEncrypted(t *testing.T) {
	key := []byte("k0k1k2k3k4k5k6k7")
	iv := []byte("i0i1i2i3i4i5i6i7")

	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)
	assert.NoError(t, w.EnableEncryption(key, iv))

	assert.NoError(t, w.WriteRawPacket(wire.RawPacket{
		ID:   wire.Id{ID: 0},
		Body: []byte{0xDE, 0xAD},
	}))

	// ciphertext differs from the plain frame and decrypts back to it
	out := append([]byte(nil), buf.Bytes()...)
	assert.NotEqual(t, []byte{0x03, 0x00, 0xDE, 0xAD}, out)

	dec, err := NewCipher(key, iv, false)
	assert.NoError(t, err)
	dec.Decrypt(out)
	assert.Equal(t, []byte{0x03, 0x00, 0xDE, 0xAD}, out)
}

func Test_WritePacketTooLarge(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)
	w.SetMaxPacketSize(8)

	err := w.WriteRawPacket(wire.RawPacket{
		ID:   wire.Id{ID: 0},
		Body: make([]byte, 16),
	})
	assert.True(t, codec_err.IsPacketTooLarge(err))
	assert.Zero(t, buf.Len())
}

func Test_MaxPacketSizeAssert(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)
	assert.Panics(t, func() { w.SetMaxPacketSize(5) })

	r := NewReader(&buf, wire.ServerBound)
	assert.Panics(t, func() { r.SetMaxPacketSize(0) })
}

func Test_WriterScratchReuse(t *testing.T) {
	// consecutive writes reuse the scratch buffer without leaking
	// bytes from the previous frame
	var buf bytes.Buffer
	w := NewWriter(&buf, wire.ServerBound)

	assert.NoError(t, w.WriteRawPacket(wire.RawPacket{ID: wire.Id{ID: 1}, Body: bytes.Repeat([]byte{0xFF}, 32)}))
	buf.Reset()
	assert.NoError(t, w.WriteRawPacket(wire.RawPacket{ID: wire.Id{ID: 1}, Body: []byte{0x01}}))
	assert.Equal(t, []byte{0x02, 0x01, 0x01}, buf.Bytes())
}
