package codec_err

import (
	"errors"
	"fmt"
)

/*
   @Author: orbit-w
   @File: error
   @2024 4月 周六 14:12
*/

var (
	// ErrAlreadyEnabled is returned when encryption is enabled on a
	// reader, writer or connection that already holds a cipher.
	ErrAlreadyEnabled = errors.New("codec_err: encryption already enabled")

	// ErrConnDone is returned by async connection operations after the
	// connection has been closed.
	ErrConnDone = errors.New("codec_err: connection done")

	// ErrDecompressShort signals that the zlib stream ended before
	// producing the advertised uncompressed length.
	ErrDecompressShort = errors.New("codec_err: zlib stream ended short of data length")

	// ErrDecompressOverflow signals that the zlib stream holds more
	// bytes than the advertised uncompressed length.
	ErrDecompressOverflow = errors.New("codec_err: zlib stream exceeds data length")
)

// PacketTooLargeError is returned when an outer frame length or an
// inner uncompressed length exceeds the configured maximum.
type PacketTooLargeError struct {
	Size int
	Max  int
}

func (e *PacketTooLargeError) Error() string {
	return fmt.Sprintf("codec_err: packet size %d exceeds max size of %d", e.Size, e.Max)
}

func PacketTooLarge(size, max int) error {
	return &PacketTooLargeError{Size: size, Max: max}
}

func IsPacketTooLarge(err error) bool {
	var e *PacketTooLargeError
	return errors.As(err, &e)
}

// BadKeySizeError is returned when a cipher key or IV is not exactly
// the required 16 bytes.
type BadKeySizeError struct {
	Component string
	Size      int
}

func (e *BadKeySizeError) Error() string {
	return fmt.Sprintf("codec_err: bad size %d for cipher %s", e.Size, e.Component)
}

func BadKeySize(component string, size int) error {
	return &BadKeySizeError{Component: component, Size: size}
}

func ReadFailed(err error) error {
	return fmt.Errorf("codec_err: i/o failure during read: %w", err)
}

func WriteFailed(err error) error {
	return fmt.Errorf("codec_err: i/o failure during write: %w", err)
}

func HeaderFailed(err error) error {
	return fmt.Errorf("codec_err: failed to read packet header: %w", err)
}

func PacketFailed(err error) error {
	return fmt.Errorf("codec_err: failed to build packet: %w", err)
}

func DecompressFailed(err error) error {
	return fmt.Errorf("codec_err: failed to decompress packet: %w", err)
}

func CompressFailed(err error) error {
	return fmt.Errorf("codec_err: failed to compress packet: %w", err)
}
