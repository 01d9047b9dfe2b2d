package packets

import (
	"encoding/binary"
	"fmt"
)

// PushACKPacket acknowledges a PushDataPacket: version + token + 0x01, no
// further payload.
type PushACKPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
}

func (p PushACKPacket) MarshalBinary() ([]byte, error) {
	return marshalHeaderOnly(p.ProtocolVersion, p.RandomToken, PushACK), nil
}

func (p *PushACKPacket) UnmarshalBinary(data []byte) error {
	v, t, err := unmarshalHeaderOnly(data, PushACK)
	if err != nil {
		return fmt.Errorf("push_ack: %w", err)
	}
	p.ProtocolVersion, p.RandomToken = v, t
	return nil
}

// PullACKPacket acknowledges a PullDataPacket: version + token + 0x04, no
// further payload.
type PullACKPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
}

func (p PullACKPacket) MarshalBinary() ([]byte, error) {
	return marshalHeaderOnly(p.ProtocolVersion, p.RandomToken, PullACK), nil
}

func (p *PullACKPacket) UnmarshalBinary(data []byte) error {
	v, t, err := unmarshalHeaderOnly(data, PullACK)
	if err != nil {
		return fmt.Errorf("pull_ack: %w", err)
	}
	p.ProtocolVersion, p.RandomToken = v, t
	return nil
}

func marshalHeaderOnly(version uint8, token uint16, typ PacketType) []byte {
	out := make([]byte, 0, 4)
	out = append(out, version)
	out = binary.BigEndian.AppendUint16(out, token)
	out = append(out, byte(typ))
	return out
}

func unmarshalHeaderOnly(data []byte, want PacketType) (version uint8, token uint16, err error) {
	if len(data) != 4 {
		return 0, 0, fmt.Errorf("expected 4 bytes, got %d", len(data))
	}
	if PacketType(data[3]) != want {
		return 0, 0, fmt.Errorf("expected packet identifier %s, got %s", want, PacketType(data[3]))
	}
	return data[0], binary.BigEndian.Uint16(data[1:3]), nil
}
