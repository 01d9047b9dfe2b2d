// Package packets implements the Semtech UDP packet-forwarder protocol's six
// frame types, encoded exactly as the reference packet-forwarder expects:
// a fixed 4-byte header (protocol version, random token, packet identifier)
// optionally followed by the gateway's 8-byte EUI and a JSON payload.
package packets

import "fmt"

// PacketType identifies one of the six Semtech UDP frame kinds.
type PacketType byte

const (
	PushData PacketType = 0x00
	PushACK  PacketType = 0x01
	PullData PacketType = 0x02
	PullResp PacketType = 0x03
	PullACK  PacketType = 0x04
	TXACK    PacketType = 0x05
)

func (p PacketType) String() string {
	switch p {
	case PushData:
		return "PushData"
	case PushACK:
		return "PushACK"
	case PullData:
		return "PullData"
	case PullResp:
		return "PullResp"
	case PullACK:
		return "PullACK"
	case TXACK:
		return "TXACK"
	default:
		return fmt.Sprintf("Unknown(%#02x)", byte(p))
	}
}

// ProtocolVersion2 is the only packet-forwarder protocol version this
// package understands.
const ProtocolVersion2 uint8 = 0x02

// GetPacketType returns the packet type of a raw UDP frame.
func GetPacketType(data []byte) (PacketType, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("packets: frame too short (%d bytes)", len(data))
	}
	switch PacketType(data[3]) {
	case PushData, PushACK, PullData, PullResp, PullACK, TXACK:
		return PacketType(data[3]), nil
	default:
		return 0, fmt.Errorf("packets: unknown packet identifier %#02x", data[3])
	}
}
