package mc_net

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/orbit-w/mc-net/core/packet_codec"
	"github.com/orbit-w/mc-net/core/packet_codec/wire"
)

func PacketCodecClient(host string) {
	conn, err := packet_codec.Dial(host)
	if err != nil {
		panic(err.Error())
	}

	// handshake: id 0x00, next state = Status
	body := wire.AppendVarInt(nil, 765)
	if err = conn.WriteRawPacket(wire.RawPacket{
		ID:   wire.Id{ID: 0x00, State: wire.Handshaking, Direction: wire.ServerBound},
		Body: body,
	}); err != nil {
		log.Println("write handshake failed: ", err.Error())
		return
	}
	conn.SetState(wire.Status)

	raw, err := conn.ReadRawPacket()
	if err != nil {
		log.Println("read failed: ", err.Error())
		return
	}
	if raw == nil {
		log.Println("server closed the connection")
		return
	}
	log.Println("status response id: ", raw.ID.ID)
}

func PacketCodecServer(host string) {
	listener, err := net.Listen("tcp", host)
	if err != nil {
		panic(err.Error())
	}

	log.Println("start serve...")
	server := new(packet_codec.Server)
	server.Serve(listener, func(conn *packet_codec.Conn) error {
		for {
			raw, err := conn.ReadRawPacket()
			if err != nil {
				return err
			}
			if raw == nil {
				return nil
			}
			// echo the packet back
			if err = conn.WriteRawPacket(*raw); err != nil {
				return err
			}
		}
	})
}

func AsyncPacketCodecClient(host string) {
	conn, err := packet_codec.Dial(host)
	if err != nil {
		panic(err.Error())
	}

	ac := packet_codec.NewAsyncConn(conn)
	defer func() {
		_ = ac.Close()
	}()

	_ = ac.Send(0x00, []byte{0x01, 0x02})
	for {
		id, buf, err := ac.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println("Recv failed: ", err.Error())
			}
			break
		}
		log.Println("receive packet: ", id.ID, buf.Data())
		buf.Return()
	}
}
