package packet_codec

import (
	"io"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: writer
   @2024 4月 周日 10:27
*/

// prefixGap reserves room at the front of the scratch buffer for the
// outer length varint plus the optional data-length varint.
const prefixGap = 2 * wire.MaxVarIntLen

// Writer frames packets onto a byte stream: id-varint ++ body,
// optionally zlib-compressed above the threshold, length-prefixed,
// optionally CFB8-encrypted, handed to the sink in a single write.
//
// A Writer is single-owner; it must not be used from more than one
// goroutine. A Reader and a Writer wrapping the two halves of one
// connection may run in parallel, they share no state.
type Writer struct {
	inner         io.Writer
	scratch       []byte
	frameBuf      []byte
	maxPacketSize int
	threshold     int
	state         wire.State
	direction     wire.Direction
	encrypt       *Cipher
	comp          compressor
}

// NewWriter wraps inner, framing packets tagged with direction and
// the Handshaking state.
func NewWriter(inner io.Writer, direction wire.Direction) *Writer {
	return NewWriterWithState(inner, direction, wire.Handshaking)
}

func NewWriterWithState(inner io.Writer, direction wire.Direction, state wire.State) *Writer {
	return &Writer{
		inner:         inner,
		maxPacketSize: DefaultMaxPacketSize,
		threshold:     -1,
		state:         state,
		direction:     direction,
	}
}

// Unwrap releases and returns the underlying byte stream.
func (w *Writer) Unwrap() io.Writer {
	return w.inner
}

func (w *Writer) SetState(next wire.State) {
	w.state = next
}

func (w *Writer) SetCompressionThreshold(threshold int) {
	w.threshold = threshold
}

func (w *Writer) EnableEncryption(key, iv []byte) error {
	return setupCipher(&w.encrypt, key, iv, true)
}

func (w *Writer) SetMaxPacketSize(n int) {
	if n < minPacketSize {
		panic("packet_codec: max packet size must be at least 6 bytes")
	}
	w.maxPacketSize = n
}

// WriteRawPacket frames an undecoded (id, body) pair.
func (w *Writer) WriteRawPacket(raw wire.RawPacket) error {
	return w.WritePacket(raw)
}

// WritePacket serializes p and writes one frame to the sink.
func (w *Writer) WritePacket(p wire.Packet) error {
	w.scratch = w.scratch[:0]
	for i := 0; i < prefixGap; i++ {
		w.scratch = append(w.scratch, 0)
	}
	w.scratch = wire.AppendVarInt(w.scratch, p.Id().ID)

	var err error
	if w.scratch, err = p.Marshal(w.scratch); err != nil {
		return codec_err.PacketFailed(err)
	}

	inner := w.scratch[prefixGap:]
	if len(inner) > w.maxPacketSize {
		return codec_err.PacketTooLarge(len(inner), w.maxPacketSize)
	}

	frame, payloadStart := w.scratch, prefixGap
	if w.threshold >= 0 {
		if len(inner) >= w.threshold {
			compressed, cerr := w.comp.compress(inner)
			if cerr != nil {
				return codec_err.CompressFailed(cerr)
			}
			// rebuild the payload: data-length varint ++ deflated body
			w.frameBuf = w.frameBuf[:0]
			for i := 0; i < wire.MaxVarIntLen; i++ {
				w.frameBuf = append(w.frameBuf, 0)
			}
			w.frameBuf = wire.AppendVarInt(w.frameBuf, int32(len(inner)))
			w.frameBuf = append(w.frameBuf, compressed...)
			frame, payloadStart = w.frameBuf, wire.MaxVarIntLen
		} else {
			// a data length of 0 marks the body as uncompressed
			w.scratch[prefixGap-1] = 0
			payloadStart = prefixGap - 1
		}
	}

	payload := frame[payloadStart:]
	if len(payload) > w.maxPacketSize {
		return codec_err.PacketTooLarge(len(payload), w.maxPacketSize)
	}

	start := payloadStart - wire.VarIntLen(int32(len(payload)))
	wire.PutVarInt(frame[start:], int32(len(payload)))

	out := frame[start:]
	if w.encrypt != nil {
		// one bulk call; CFB8 chains per byte internally
		w.encrypt.Encrypt(out)
	}
	if _, werr := w.inner.Write(out); werr != nil {
		return codec_err.WriteFailed(werr)
	}
	return nil
}
