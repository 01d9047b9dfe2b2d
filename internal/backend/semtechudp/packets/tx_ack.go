package packets

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/loraforward/gateway-bridge/internal/link"
)

// TXAckError classifies the gateway's reason for rejecting (or confirming)
// a scheduled downlink.
type TXAckError string

const (
	TXAckNone           TXAckError = "NONE"
	TXAckTooLate        TXAckError = "TOO_LATE"
	TXAckTooEarly       TXAckError = "TOO_EARLY"
	TXAckCollisionPacket TXAckError = "COLLISION_PACKET"
	TXAckCollisionBeacon TXAckError = "COLLISION_BEACON"
	TXAckTxFreq         TXAckError = "TX_FREQ"
	TXAckTxPower        TXAckError = "TX_POWER"
	TXAckGPSUnlocked    TXAckError = "GPS_UNLOCKED"
)

// Fatal reports whether this TX ack reflects a rejected transmission.
func (e TXAckError) Fatal() bool {
	return e != TXAckNone && e != ""
}

// TXACKPacket is sent by the gateway in response to a PULL_RESP frame to
// report whether the scheduled transmission succeeded: version + token +
// 0x05 + 8-byte gateway EUI + JSON {"txpk_ack":{"error":"..."}}.
type TXACKPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
	GatewayMAC      link.EUI64
	Payload         struct {
		TXPKACK struct {
			Error TXAckError `json:"error"`
		} `json:"txpk_ack"`
	}
}

func (p TXACKPacket) MarshalBinary() ([]byte, error) {
	jsonBytes, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("tx_ack: marshal payload: %w", err)
	}
	out := make([]byte, 0, 12+len(jsonBytes))
	out = append(out, p.ProtocolVersion)
	out = binary.BigEndian.AppendUint16(out, p.RandomToken)
	out = append(out, byte(TXACK))
	out = append(out, p.GatewayMAC[:]...)
	out = append(out, jsonBytes...)
	return out, nil
}

func (p *TXACKPacket) UnmarshalBinary(data []byte) error {
	if len(data) < 12 {
		return fmt.Errorf("tx_ack: frame too short (%d bytes)", len(data))
	}
	p.ProtocolVersion = data[0]
	p.RandomToken = binary.BigEndian.Uint16(data[1:3])
	copy(p.GatewayMAC[:], data[4:12])
	if len(data) > 12 {
		if err := json.Unmarshal(data[12:], &p.Payload); err != nil {
			return fmt.Errorf("tx_ack: unmarshal json: %w", err)
		}
	}
	return nil
}
