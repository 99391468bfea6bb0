package packet_codec

import (
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: wrapper
   @2024 4月 周六 10:55
*/

// IO is the configuration surface shared by readers, writers and
// connections. State, threshold and cipher changes take effect from
// the next packet.
type IO interface {
	// SetState switches the protocol state tagged onto packet Ids.
	// Call it after the packet that triggers a state transition has
	// been processed; the triggering packet itself decodes in the
	// pre-transition state.
	SetState(next wire.State)

	// SetCompressionThreshold enables per-packet zlib compression for
	// bodies of at least threshold bytes. A negative threshold
	// disables compression and removes the data-length field from the
	// frame format.
	SetCompressionThreshold(threshold int)

	// EnableEncryption installs the AES-128/CFB8 cipher for this
	// direction. Returns codec_err.ErrAlreadyEnabled if a cipher is
	// already installed; once installed it lives for the remainder of
	// the connection.
	EnableEncryption(key, iv []byte) error

	// SetMaxPacketSize bounds outer and inner packet lengths. Panics
	// unless n > 5.
	SetMaxPacketSize(n int)
}

// IPacketReader deframes packets from a byte stream.
type IPacketReader interface {
	IO

	// ReadRawPacket returns the next packet, or (nil, nil) when the
	// peer disconnected cleanly; the caller may retry once more bytes
	// can arrive. The returned Body borrows the reader's buffer and is
	// valid until the next read call.
	ReadRawPacket() (*wire.RawPacket, error)

	// ReadPacket deframes the next packet and hands (Id, body) to the
	// external packet constructor.
	ReadPacket(create wire.Factory) (wire.Packet, error)
}

// IPacketWriter frames packets onto a byte stream.
type IPacketWriter interface {
	IO

	WritePacket(p wire.Packet) error
	WriteRawPacket(raw wire.RawPacket) error
}

var (
	_ IPacketReader = (*Reader)(nil)
	_ IPacketWriter = (*Writer)(nil)
)

// DialOption configures Dial and Wrap.
type DialOption struct {
	MaxPacketSize int
	State         wire.State
}

// AcceptorOptions configures Server.Serve.
type AcceptorOptions struct {
	MaxPacketSize int
}

func parseDialOp(ops ...DialOption) DialOption {
	var op DialOption
	if len(ops) > 0 {
		op = ops[0]
	}
	if op.MaxPacketSize == 0 {
		op.MaxPacketSize = DefaultMaxPacketSize
	}
	return op
}

func parseAcceptorOp(ops ...AcceptorOptions) AcceptorOptions {
	var op AcceptorOptions
	if len(ops) > 0 {
		op = ops[0]
	}
	if op.MaxPacketSize == 0 {
		op.MaxPacketSize = DefaultMaxPacketSize
	}
	return op
}
