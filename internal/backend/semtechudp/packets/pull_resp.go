package packets

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/loraforward/gateway-bridge/internal/link"
)

// PullRespPacket pushes one downlink frame to the gateway: version + token
// + 0x03 + JSON {"txpk":{...}}. There is no gateway EUI in this frame; the
// gateway is identified by the UDP socket address the PULL_DATA keep-alive
// was received from.
type PullRespPacket struct {
	ProtocolVersion uint8
	RandomToken     uint16
	Payload         struct {
		TXPK TXPK `json:"txpk"`
	}
}

func (p PullRespPacket) MarshalBinary() ([]byte, error) {
	jsonBytes, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("pull_resp: marshal payload: %w", err)
	}
	out := make([]byte, 0, 4+len(jsonBytes))
	out = append(out, p.ProtocolVersion)
	out = binary.BigEndian.AppendUint16(out, p.RandomToken)
	out = append(out, byte(PullResp))
	out = append(out, jsonBytes...)
	return out, nil
}

func (p *PullRespPacket) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("pull_resp: frame too short (%d bytes)", len(data))
	}
	p.ProtocolVersion = data[0]
	p.RandomToken = binary.BigEndian.Uint16(data[1:3])
	if err := json.Unmarshal(data[4:], &p.Payload); err != nil {
		return fmt.Errorf("pull_resp: unmarshal json: %w", err)
	}
	return nil
}

// GetPullRespPacket builds the PULL_RESP frame for window 1 or 2 of a
// downlink LinkPacket. window must be 1 or 2; requesting window 2 on a
// downlink whose Window2 is nil is an error, mirroring the "RX2 was not
// offered" case.
func GetPullRespPacket(randomToken uint16, window int, downlink *link.LinkPacket) (PullRespPacket, error) {
	var w *link.TxWindow
	switch window {
	case 1:
		w = downlink.Window1
	case 2:
		w = downlink.Window2
	default:
		return PullRespPacket{}, fmt.Errorf("pull_resp: invalid window %d", window)
	}
	if w == nil {
		return PullRespPacket{}, fmt.Errorf("pull_resp: window %d was not offered for this downlink", window)
	}

	var p PullRespPacket
	p.ProtocolVersion = ProtocolVersion2
	p.RandomToken = randomToken
	p.Payload.TXPK = NewTXPK(downlink.Payload, w.Frequency, w.DataRate, w.CodingRate, downlink.Timestamp, w.Power)
	if window == 2 {
		// RX2 is a fixed delay after RX1's timestamp rather than the
		// uplink-relative Timestamp carried on the packet; the router is
		// expected to have already resolved this into the window itself,
		// so only the frequency/datarate differ here.
		p.Payload.TXPK.Tmst = downlink.Timestamp
	}
	return p, nil
}
