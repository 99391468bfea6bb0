package wire

/*
   @Author: orbit-w
   @File: types
   @2024 4月 周六 11:23
*/

// Direction is the direction a packet travels on the wire.
type Direction uint8

const (
	// ServerBound packets are sent by the client to the server.
	ServerBound Direction = iota
	// ClientBound packets are sent by the server to the client.
	ClientBound
)

func (d Direction) String() string {
	switch d {
	case ServerBound:
		return "ServerBound"
	case ClientBound:
		return "ClientBound"
	}
	return "UnknownBound"
}

// Opposite returns the mirrored direction. Within one peer the reader
// direction is always the opposite of the writer direction.
func (d Direction) Opposite() Direction {
	if d == ServerBound {
		return ClientBound
	}
	return ServerBound
}

// State is the protocol state of a connection. It disambiguates
// otherwise-colliding numeric packet ids; the codec treats it as an
// opaque tag attached to outgoing Ids.
type State uint8

const (
	Handshaking State = iota
	Status
	Login
	Play
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshaking"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Play:
		return "Play"
	}
	return "UnknownState"
}

// Id identifies a packet: the numeric id plus the state and direction
// it was read or written under.
type Id struct {
	ID        int32
	State     State
	Direction Direction
}

// Packet is the serialization contract between the codec and external
// packet catalogs. Marshal appends the packet body (without the id
// varint, which the writer emits itself) to dst and returns the
// extended slice.
type Packet interface {
	Id() Id
	Marshal(dst []byte) ([]byte, error)
}

// Factory constructs a typed packet from a deframed (id, body) pair.
// Implementations live in packet catalogs outside this module. body
// borrows the reader's internal buffer and must not be retained past
// the call; copy it if the packet keeps a reference.
type Factory func(id Id, body []byte) (Packet, error)

// RawPacket is an undecoded packet: the id plus the raw body bytes.
//
// When produced by a reader, Body points into the reader's internal
// buffer and is only valid until the next read call.
type RawPacket struct {
	ID   Id
	Body []byte
}

func (p RawPacket) Id() Id { return p.ID }

func (p RawPacket) Marshal(dst []byte) ([]byte, error) {
	return append(dst, p.Body...), nil
}
