package packet_codec

import (
	"log"
	"runtime/debug"

	"github.com/alphadose/zenq/v2"
	"github.com/orbit-w/golib/bases/packet"
)

/*
   @Author: orbit-w
   @File: sender
   @2024 4月 周日 15:18
*/

// SenderWrapper pumps queued outbound packets through a single writer
// goroutine, keeping the Writer single-owner while callers enqueue
// from anywhere.
type SenderWrapper struct {
	sender func(id int32, body packet.IPacket) error
	zq     *zenq.ZenQ[sendParams]
}

type sendParams struct {
	id  int32
	buf packet.IPacket
}

func NewSender(sender func(id int32, body packet.IPacket) error) *SenderWrapper {
	ins := &SenderWrapper{
		sender: sender,
		zq:     zenq.New[sendParams](DefaultSendQueueSize),
	}

	go func() {
		defer func() {
			if x := recover(); x != nil {
				debug.PrintStack()
			}
		}()

		for {
			msg, open := ins.zq.Read()
			if !open {
				break
			}
			if err := ins.sender(msg.id, msg.buf); err != nil {
				log.Println("send packet failed: ", err.Error())
			}
		}
	}()

	return ins
}

// Send enqueues one packet; the pump returns buf to its pool after
// writing. Reports whether the queue was already closed.
func (ins *SenderWrapper) Send(id int32, buf packet.IPacket) (writeClosed bool) {
	writeClosed = ins.zq.Write(sendParams{id: id, buf: buf})
	return
}

func (ins *SenderWrapper) OnClose() {
	ins.zq.Close()
}
