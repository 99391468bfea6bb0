package packet_codec

import (
	"bytes"
	"net"
	"testing"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func Test_ConnRoundTrip(t *testing.T) {
	clientEnd, serverEnd := net.Pipe()
	client := NewConn(clientEnd, wire.ServerBound)
	server := NewConn(serverEnd, wire.ClientBound)

	// the login sequence result: compression and encryption mirrored
	// on both peers, same shared secret for both directions
	secret := []byte("a 16 byte secret")
	client.SetCompressionThreshold(8)
	server.SetCompressionThreshold(8)
	assert.NoError(t, client.EnableEncryption(secret, secret, secret, secret))
	assert.NoError(t, server.EnableEncryption(secret, secret, secret, secret))
	client.SetState(wire.Play)
	server.SetState(wire.Play)

	bodies := [][]byte{
		{},
		{0x01},
		bytes.Repeat([]byte{0xAB}, 7),
		bytes.Repeat([]byte{0xCD}, 8),
		bytes.Repeat([]byte{0xEF}, 4096),
	}

	var gr errgroup.Group
	gr.Go(func() error {
		for i, body := range bodies {
			if err := client.WriteRawPacket(wire.RawPacket{
				ID:   wire.Id{ID: int32(i)},
				Body: body,
			}); err != nil {
				return err
			}
		}
		return clientEnd.Close()
	})

	for i, body := range bodies {
		raw, err := server.ReadRawPacket()
		assert.NoError(t, err)
		assert.NotNil(t, raw)
		assert.Equal(t, wire.Id{ID: int32(i), State: wire.Play, Direction: wire.ServerBound}, raw.ID)
		if len(body) == 0 {
			assert.Empty(t, raw.Body)
		} else {
			assert.Equal(t, body, raw.Body)
		}
	}

	assert.NoError(t, gr.Wait())
}

func Test_ConnEnableEncryptionAtomic(t *testing.T) {
	clientEnd, _ := net.Pipe()
	c := NewConn(clientEnd, wire.ServerBound)
	secret := []byte("a 16 byte secret")

	// a bad write key leaves the read side untouched as well
	err := c.EnableEncryption(secret, secret, secret[:8], secret)
	var bad *codec_err.BadKeySizeError
	assert.ErrorAs(t, err, &bad)

	assert.NoError(t, c.EnableEncryption(secret, secret, secret, secret))
	assert.ErrorIs(t, c.EnableEncryption(secret, secret, secret, secret), codec_err.ErrAlreadyEnabled)
}

func Test_ConnDirections(t *testing.T) {
	var buf bytes.Buffer
	c := NewConn(&buf, wire.ServerBound)

	assert.Equal(t, wire.ClientBound, c.Reader().direction)
	assert.Equal(t, wire.ServerBound, c.Writer().direction)
}

func Test_ConnStateMirrored(t *testing.T) {
	var buf bytes.Buffer
	c := NewConn(&buf, wire.ClientBound)

	c.SetState(wire.Login)
	assert.Equal(t, wire.Login, c.Reader().state)
	assert.Equal(t, wire.Login, c.Writer().state)

	c.SetCompressionThreshold(64)
	assert.Equal(t, 64, c.Reader().threshold)
	assert.Equal(t, 64, c.Writer().threshold)
}
