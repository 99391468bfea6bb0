package wire

/*
   @Author: orbit-w
   @File: buffer
   @2024 4月 周六 12:05
*/

// SizedBuf returns a slice of *buf covering [start, start+size),
// growing the buffer as needed. Growth at least doubles the current
// length so repeated reservations amortize. The buffer never shrinks
// and existing bytes below start+size keep their values; only the
// newly extended region is zeroed (by allocation).
func SizedBuf(buf *[]byte, start, size int) []byte {
	need := start + size
	if need > len(*buf) {
		newLen := len(*buf) * 2
		if newLen < need {
			newLen = need
		}
		grown := make([]byte, newLen)
		copy(grown, *buf)
		*buf = grown
	}
	return (*buf)[start:need]
}
