package packet_codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

/*
   @Author: orbit-w
   @File: compress
   @2024 4月 周六 16:04
*/

// compressor deflates packet bodies that meet the compression
// threshold. The zlib writer and output buffer are reused across
// packets; the returned slice is valid until the next call.
type compressor struct {
	zw  *zlib.Writer
	buf bytes.Buffer
}

func (c *compressor) compress(src []byte) ([]byte, error) {
	c.buf.Reset()
	if c.zw == nil {
		c.zw = zlib.NewWriter(&c.buf)
	} else {
		c.zw.Reset(&c.buf)
	}
	if _, err := c.zw.Write(src); err != nil {
		return nil, err
	}
	if err := c.zw.Close(); err != nil {
		return nil, err
	}
	return c.buf.Bytes(), nil
}

// decompressor inflates compressed packet bodies. The inflater and
// output buffer are reused across packets; the returned slice is
// valid until the next call.
type decompressor struct {
	zr  io.ReadCloser
	src bytes.Reader
	buf []byte
}

// decompress inflates src, which must produce exactly dataLen bytes
// and then end. A stream that ends short or keeps going past dataLen
// is rejected, matching the strict data-length contract of the frame
// format.
func (d *decompressor) decompress(src []byte, dataLen int) ([]byte, error) {
	d.src.Reset(src)
	if d.zr == nil {
		zr, err := zlib.NewReader(&d.src)
		if err != nil {
			return nil, err
		}
		d.zr = zr
	} else if err := d.zr.(zlib.Resetter).Reset(&d.src, nil); err != nil {
		return nil, err
	}

	out := wire.SizedBuf(&d.buf, 0, dataLen)
	if _, err := io.ReadFull(d.zr, out); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, codec_err.ErrDecompressShort
		}
		return nil, err
	}

	// the stream must end exactly at dataLen
	var tail [1]byte
	if n, _ := d.zr.Read(tail[:]); n > 0 {
		return nil, codec_err.ErrDecompressOverflow
	}
	return out, nil
}
