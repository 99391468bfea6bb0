package wire

import "errors"

/*
   @Author: orbit-w
   @File: varint
   @2024 4月 周六 11:40
*/

// MaxVarIntLen is the longest encoding of a 32-bit varint.
const MaxVarIntLen = 5

var (
	// ErrVarIntTooLong is returned when the fifth byte of a varint still
	// has its continuation bit set. A decoder must surface this instead
	// of silently truncating the value.
	ErrVarIntTooLong = errors.New("wire: VarInt longer than 5 bytes")

	// ErrVarIntShort is returned when the buffer ends mid-varint.
	ErrVarIntShort = errors.New("wire: VarInt truncated")
)

// ReadVarInt decodes a varint from the front of buf, returning the
// value and the number of bytes consumed. Values are little-endian
// 7-bit septets with a continuation bit in the MSB of each byte.
func ReadVarInt(buf []byte) (int32, int, error) {
	var v int32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(buf) {
			return 0, 0, ErrVarIntShort
		}
		b := buf[i]
		v |= int32(b&0x7F) << (i * 7)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrVarIntTooLong
}

// AppendVarInt appends the varint encoding of v to dst.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

// PutVarInt writes the varint encoding of v into dst, which must hold
// at least VarIntLen(v) bytes, and returns the number written.
func PutVarInt(dst []byte, v int32) int {
	n := 0
	u := uint32(v)
	for u >= 0x80 {
		dst[n] = byte(u) | 0x80
		u >>= 7
		n++
	}
	dst[n] = byte(u)
	return n + 1
}

// VarIntLen reports the encoded size of v in bytes.
func VarIntLen(v int32) int {
	n := 1
	for u := uint32(v); u >= 0x80; u >>= 7 {
		n++
	}
	return n
}
