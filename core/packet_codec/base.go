package packet_codec

import "time"

/*
   @Author: orbit-w
   @File: base
   @2024 4月 周六 10:48
*/

const (
	// DefaultMaxPacketSize bounds both the outer frame length and the
	// inner uncompressed length. 32MB, matching vanilla servers.
	DefaultMaxPacketSize = 32 * 1000 * 1000

	// minPacketSize is the smallest legal max-packet-size setting.
	minPacketSize = 6

	// minIngestSize is the smallest transport read the reader issues,
	// so that length-prefix reads can pull a following packet into the
	// ready window in the same syscall.
	minIngestSize = 512

	// DefaultRecvBufSize is the initial inbound buffer size of an
	// async connection.
	DefaultRecvBufSize = 512

	// DefaultSendQueueSize is the outbound queue depth of an async
	// connection.
	DefaultSendQueueSize = 2048
)

const (
	StatusConnected = iota
	StatusDisconnected
)

const (
	WriteTimeout = time.Second * 5
	DialTimeout  = time.Second * 5
)
