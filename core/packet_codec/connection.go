package packet_codec

import (
	"io"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: connection
   @2024 4月 周日 11:49
*/

// Conn pairs one Reader and one Writer over the two halves of a byte
// stream. The reader direction is the opposite of the writer
// direction: a client writes ServerBound and reads ClientBound.
//
// Configuration changes are applied to both halves. The Reader and
// Writer own disjoint state, so one goroutine may read while another
// writes; individual halves remain single-owner.
type Conn struct {
	inner io.ReadWriter
	r     *Reader
	w     *Writer
}

// NewConn wraps rw. writeDir is the direction of packets this peer
// writes.
func NewConn(rw io.ReadWriter, writeDir wire.Direction) *Conn {
	return NewConnWithState(rw, writeDir, wire.Handshaking)
}

func NewConnWithState(rw io.ReadWriter, writeDir wire.Direction, state wire.State) *Conn {
	return &Conn{
		inner: rw,
		r:     NewReaderWithState(rw, writeDir.Opposite(), state),
		w:     NewWriterWithState(rw, writeDir, state),
	}
}

// Reader returns the read half for split deployment.
func (c *Conn) Reader() *Reader { return c.r }

// Writer returns the write half for split deployment.
func (c *Conn) Writer() *Writer { return c.w }

// Unwrap releases and returns the underlying byte stream.
func (c *Conn) Unwrap() io.ReadWriter { return c.inner }

func (c *Conn) ReadRawPacket() (*wire.RawPacket, error) {
	return c.r.ReadRawPacket()
}

func (c *Conn) ReadPacket(create wire.Factory) (wire.Packet, error) {
	return c.r.ReadPacket(create)
}

func (c *Conn) WritePacket(p wire.Packet) error {
	return c.w.WritePacket(p)
}

func (c *Conn) WriteRawPacket(raw wire.RawPacket) error {
	return c.w.WriteRawPacket(raw)
}

func (c *Conn) SetState(next wire.State) {
	c.r.SetState(next)
	c.w.SetState(next)
}

func (c *Conn) SetCompressionThreshold(threshold int) {
	c.r.SetCompressionThreshold(threshold)
	c.w.SetCompressionThreshold(threshold)
}

func (c *Conn) SetMaxPacketSize(n int) {
	c.r.SetMaxPacketSize(n)
	c.w.SetMaxPacketSize(n)
}

// EnableEncryption installs the cipher pair atomically: both ciphers
// are constructed and both slots checked before either side is
// touched, so a failure leaves the connection unencrypted.
func (c *Conn) EnableEncryption(readKey, readIV, writeKey, writeIV []byte) error {
	if c.r.decrypt != nil || c.w.encrypt != nil {
		return codec_err.ErrAlreadyEnabled
	}
	dec, err := NewCipher(readKey, readIV, false)
	if err != nil {
		return err
	}
	enc, err := NewCipher(writeKey, writeIV, true)
	if err != nil {
		return err
	}
	c.r.decrypt = dec
	c.w.encrypt = enc
	return nil
}
