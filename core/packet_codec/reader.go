package packet_codec

import (
	"io"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: reader
   @2024 4月 周日 09:12
*/

// Reader deframes length-prefixed (optionally compressed, optionally
// encrypted) packets from a byte stream.
//
// The reader keeps a ready window [rawOffset, rawOffset+rawReady) of
// bytes pulled from the transport but not yet consumed as a packet.
// Every byte in the window has been decrypted exactly once: ingestion
// is the only place decryption happens, because CFB8 chains its
// feedback register across packet boundaries and re-decrypting a byte
// would corrupt the stream.
//
// A Reader is single-owner; it must not be used from more than one
// goroutine.
type Reader struct {
	inner         io.Reader
	rawBuf        []byte
	rawOffset     int
	rawReady      int
	pendingLen    int
	maxPacketSize int
	threshold     int
	state         wire.State
	direction     wire.Direction
	decrypt       *Cipher
	decomp        decompressor
}

// NewReader wraps inner, producing packets tagged with direction and
// the Handshaking state.
func NewReader(inner io.Reader, direction wire.Direction) *Reader {
	return NewReaderWithState(inner, direction, wire.Handshaking)
}

func NewReaderWithState(inner io.Reader, direction wire.Direction, state wire.State) *Reader {
	return &Reader{
		inner:         inner,
		pendingLen:    -1,
		maxPacketSize: DefaultMaxPacketSize,
		threshold:     -1,
		state:         state,
		direction:     direction,
	}
}

// Unwrap releases and returns the underlying byte stream.
func (r *Reader) Unwrap() io.Reader {
	return r.inner
}

func (r *Reader) SetState(next wire.State) {
	r.state = next
}

func (r *Reader) SetCompressionThreshold(threshold int) {
	r.threshold = threshold
}

func (r *Reader) EnableEncryption(key, iv []byte) error {
	return setupCipher(&r.decrypt, key, iv, false)
}

func (r *Reader) SetMaxPacketSize(n int) {
	if n < minPacketSize {
		panic("packet_codec: max packet size must be at least 6 bytes")
	}
	r.maxPacketSize = n
}

// EnsureBufCapacity pre-grows the raw buffer, clamped at the max
// packet size.
func (r *Reader) EnsureBufCapacity(capacity int) {
	if capacity > r.maxPacketSize {
		capacity = r.maxPacketSize
	}
	r.moveReadyToFront()
	wire.SizedBuf(&r.rawBuf, 0, capacity)
}

// EnsureCompressionBufCapacity pre-grows the decompression buffer,
// clamped at the max packet size.
func (r *Reader) EnsureCompressionBufCapacity(capacity int) {
	if capacity > r.maxPacketSize {
		capacity = r.maxPacketSize
	}
	wire.SizedBuf(&r.decomp.buf, 0, capacity)
}

// ReadPacket deframes the next packet and hands (Id, body) to create.
// Returns (nil, nil) on clean disconnect.
func (r *Reader) ReadPacket(create wire.Factory) (wire.Packet, error) {
	raw, err := r.ReadRawPacket()
	if raw == nil || err != nil {
		return nil, err
	}
	p, err := create(raw.ID, raw.Body)
	if err != nil {
		return nil, codec_err.PacketFailed(err)
	}
	return p, nil
}

// ReadRawPacket returns the next packet on the stream, or (nil, nil)
// when the transport reports end-of-input; partial progress stays in
// the buffer, so the caller may retry once more bytes can arrive.
// The returned Body borrows the reader's internal buffer and is valid
// until the next read call.
func (r *Reader) ReadRawPacket() (*wire.RawPacket, error) {
	size, ok, err := r.readFrame()
	if !ok || err != nil {
		return nil, err
	}
	return r.packetInBuf(size)
}

// readFrame reads the outer length prefix, validates it and pulls the
// whole frame extent into the ready window. On success the frame
// occupies [rawOffset, rawOffset+size).
//
// A decoded length whose payload has not fully arrived is parked in
// pendingLen, so a retry after end-of-input resumes waiting for the
// payload instead of re-reading a length from payload bytes.
func (r *Reader) readFrame() (size int, ok bool, err error) {
	r.moveReadyToFront()

	size = r.pendingLen
	if size < 0 {
		length, lok, lerr := r.readPacketLen()
		if !lok || lerr != nil {
			return 0, lok, lerr
		}

		size = int(length)
		if size < 0 || size > r.maxPacketSize {
			return 0, false, codec_err.PacketTooLarge(size, r.maxPacketSize)
		}
		r.pendingLen = size
	}

	if ok, err = r.ensureReady(size); !ok || err != nil {
		return 0, ok, err
	}
	r.pendingLen = -1
	return size, true, nil
}

// readPacketLen decodes the outer length varint from the front of the
// ready window, ingesting (and thereby decrypting) one byte at a
// time. Bytes are only consumed once the varint completes, so an
// end-of-input mid-varint leaves the partial prefix ready for a later
// retry.
func (r *Reader) readPacketLen() (v int32, ok bool, err error) {
	for position := 0; ; position++ {
		if ok, err = r.ensureReady(position + 1); !ok || err != nil {
			return 0, ok, err
		}

		b := r.rawBuf[r.rawOffset+position]
		v |= int32(b&0x7F) << (position * 7)
		if b&0x80 == 0 {
			r.rawOffset += position + 1
			r.rawReady -= position + 1
			return v, true, nil
		}
		if position >= wire.MaxVarIntLen-1 {
			return 0, false, codec_err.HeaderFailed(wire.ErrVarIntTooLong)
		}
	}
}

// ensureReady grows the ready window to at least n bytes, reading
// from the transport as needed. Freshly ingested bytes are decrypted
// in place before they are counted as ready, so a caller observing
// rawReady always observes plaintext. Reads are issued against the
// full spare buffer region, so a burst of packets lands in the window
// in one transport call.
//
// Returns ok=false without error when the transport reports
// end-of-input first; whatever partial progress was made stays ready
// for a later retry.
func (r *Reader) ensureReady(n int) (ok bool, err error) {
	for r.rawReady < n {
		tail := r.rawOffset + r.rawReady
		need := r.rawOffset + n
		if min := tail + minIngestSize; need < min {
			need = min
		}
		target := wire.SizedBuf(&r.rawBuf, tail, need-tail)

		m, rerr := r.inner.Read(target)
		if m > 0 {
			if r.decrypt != nil {
				r.decrypt.Decrypt(target[:m])
			}
			r.rawReady += m
		}
		if rerr != nil {
			if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
				return false, nil
			}
			return false, codec_err.ReadFailed(rerr)
		}
	}
	return true, nil
}

// packetInBuf consumes the frame extent [rawOffset, rawOffset+size)
// and splits it into (Id, body) per the configured compression mode.
func (r *Reader) packetInBuf(size int) (*wire.RawPacket, error) {
	offset := r.rawOffset
	r.rawReady -= size
	r.rawOffset += size
	frame := r.rawBuf[offset : offset+size]

	packetBuf := frame
	if r.threshold >= 0 {
		dataLen, n, err := wire.ReadVarInt(frame)
		if err != nil {
			return nil, codec_err.HeaderFailed(err)
		}
		switch {
		case dataLen == 0:
			packetBuf = frame[n:]
		case dataLen < 0 || int(dataLen) >= r.maxPacketSize:
			return nil, codec_err.PacketTooLarge(int(dataLen), r.maxPacketSize)
		default:
			packetBuf, err = r.decomp.decompress(frame[n:], int(dataLen))
			if err != nil {
				return nil, codec_err.DecompressFailed(err)
			}
		}
	}

	rawId, n, err := wire.ReadVarInt(packetBuf)
	if err != nil {
		return nil, codec_err.HeaderFailed(err)
	}

	return &wire.RawPacket{
		ID: wire.Id{
			ID:        rawId,
			State:     r.state,
			Direction: r.direction,
		},
		Body: packetBuf[n:],
	}, nil
}

// moveReadyToFront compacts the ready window to position 0 so a frame
// never straddles the end of the buffer. A no-op when the window is
// already at the front.
func (r *Reader) moveReadyToFront() {
	if r.rawReady > 0 && r.rawOffset > 0 {
		copy(r.rawBuf, r.rawBuf[r.rawOffset:r.rawOffset+r.rawReady])
	}
	r.rawOffset = 0
}
