package packet_codec

import (
	"bytes"
	"testing"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/stretchr/testify/assert"
)

func Test_CompressRoundTrip(t *testing.T) {
	var c compressor
	var d decompressor

	src := bytes.Repeat([]byte{0x11, 0x22, 0x33}, 50)
	deflated, err := c.compress(src)
	assert.NoError(t, err)
	assert.Less(t, len(deflated), len(src))

	out, err := d.decompress(deflated, len(src))
	assert.NoError(t, err)
	assert.Equal(t, src, out)

	// reuse across packets
	src2 := []byte("second packet body")
	deflated2, err := c.compress(src2)
	assert.NoError(t, err)
	out, err = d.decompress(deflated2, len(src2))
	assert.NoError(t, err)
	assert.Equal(t, src2, out)
}

func Test_DecompressLengthMismatch(t *testing.T) {
	var c compressor
	var d decompressor

	src := bytes.Repeat([]byte{0x7A}, 32)
	deflated, err := c.compress(src)
	assert.NoError(t, err)

	// stream ends before the advertised length
	_, err = d.decompress(deflated, len(src)+1)
	assert.ErrorIs(t, err, codec_err.ErrDecompressShort)

	// stream holds more than the advertised length
	_, err = d.decompress(deflated, len(src)-1)
	assert.ErrorIs(t, err, codec_err.ErrDecompressOverflow)
}

func Test_DecompressGarbage(t *testing.T) {
	var d decompressor
	_, err := d.decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 4)
	assert.Error(t, err)
}
