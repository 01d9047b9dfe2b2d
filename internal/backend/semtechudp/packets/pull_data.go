package packets

import (
	"encoding/binary"
	"fmt"

	"github.com/loraforward/gateway-bridge/internal/link"
)

// PullDataPacket is sent periodically by the gateway to keep its NAT
// binding open and to request any queued downlinks: version + token + 0x02
// + 8-byte gateway EUI, no JSON payload.
type PullDataPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
	GatewayMAC      link.EUI64
}

// MarshalBinary encodes the frame.
func (p PullDataPacket) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 12)
	out = append(out, p.ProtocolVersion)
	out = binary.BigEndian.AppendUint16(out, p.RandomToken)
	out = append(out, byte(PullData))
	out = append(out, p.GatewayMAC[:]...)
	return out, nil
}

// UnmarshalBinary decodes a raw UDP frame into the packet.
func (p *PullDataPacket) UnmarshalBinary(data []byte) error {
	if len(data) != 12 {
		return fmt.Errorf("pull_data: expected 12 bytes, got %d", len(data))
	}
	p.ProtocolVersion = data[0]
	p.RandomToken = binary.BigEndian.Uint16(data[1:3])
	copy(p.GatewayMAC[:], data[4:12])
	return nil
}
