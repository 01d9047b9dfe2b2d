package packets

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loraforward/gateway-bridge/internal/link"
)

// PushDataPacket is sent by the gateway for every received radio frame and
// every periodic status report: protocol version + random token + 0x00 +
// 8-byte gateway EUI + JSON {"rxpk":[...], "stat":{...}}.
type PushDataPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
	GatewayMAC      link.EUI64
	Payload         struct {
		RXPK []RXPK `json:"rxpk,omitempty"`
		Stat *Stat  `json:"stat,omitempty"`
	}
}

// MarshalBinary encodes the frame.
func (p PushDataPacket) MarshalBinary() ([]byte, error) {
	jsonBytes, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("push_data: marshal payload: %w", err)
	}
	out := make([]byte, 0, 4+8+len(jsonBytes))
	out = append(out, p.ProtocolVersion)
	out = binary.BigEndian.AppendUint16(out, p.RandomToken)
	out = append(out, byte(PushData))
	out = append(out, p.GatewayMAC[:]...)
	out = append(out, jsonBytes...)
	return out, nil
}

// UnmarshalBinary decodes a raw UDP frame into the packet.
func (p *PushDataPacket) UnmarshalBinary(data []byte) error {
	if len(data) < 12 {
		return fmt.Errorf("push_data: frame too short (%d bytes)", len(data))
	}
	p.ProtocolVersion = data[0]
	p.RandomToken = binary.BigEndian.Uint16(data[1:3])
	copy(p.GatewayMAC[:], data[4:12])
	if len(data) > 12 {
		if err := json.Unmarshal(data[12:], &p.Payload); err != nil {
			return fmt.Errorf("push_data: unmarshal json: %w", err)
		}
	}
	return nil
}

// GetUplinkFrames converts the RXPK array into LinkPackets. Frames with an
// RSSI/SNR-only CRC failure are skipped unless skipCRC is set. fakeRxTime
// fills in the RXPK's "time" field with the current time when the gateway
// omits it (common on concentrators without GPS lock); LinkPacket has no
// wall-clock time field, so the value does not reach the returned packets.
func (p *PushDataPacket) GetUplinkFrames(skipCRC, fakeRxTime bool) ([]*link.LinkPacket, error) {
	var out []*link.LinkPacket
	for _, rxpk := range p.Payload.RXPK {
		if !skipCRC && rxpk.Stat != 1 {
			continue
		}
		phy, err := rxpk.PHYPayload()
		if err != nil {
			return nil, err
		}
		if fakeRxTime && rxpk.Time == nil {
			now := time.Now().UTC().Format(time.RFC3339Nano)
			rxpk.Time = &now
		}
		// Routing key from the LoRaWAN MHDR: a join request (MType 0)
		// carries AppEUI then DevEUI, data frames (MType 2-5) a DevAddr,
		// all little-endian on air.
		var routing *link.RoutingKey
		if len(phy) > 0 {
			switch mtype := phy[0] >> 5; {
			case mtype == 0 && len(phy) >= 17:
				k := link.EUIRoutingKey(binary.LittleEndian.Uint64(phy[1:9]), binary.LittleEndian.Uint64(phy[9:17]))
				routing = &k
			case mtype >= 2 && mtype <= 5 && len(phy) >= 5:
				k := link.DevAddrRoutingKey(link.DevAddr(binary.LittleEndian.Uint32(phy[1:5])))
				routing = &k
			}
		}
		out = append(out, &link.LinkPacket{
			GatewayMAC: p.GatewayMAC,
			Direction:  link.Uplink,
			Timestamp:  rxpk.Tmst,
			RSSI:       rxpk.RSSI,
			SNR:        rxpk.LSNR,
			Payload:    phy,
			Routing:    routing,
		})
	}
	return out, nil
}

// GetGatewayStats returns the status report carried by this frame, if any.
func (p *PushDataPacket) GetGatewayStats() (*Stat, error) {
	if p.Payload.Stat == nil {
		return nil, fmt.Errorf("push_data: frame carries no stat object")
	}
	return p.Payload.Stat, nil
}
