package packets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loraforward/gateway-bridge/internal/link"
)

func TestGetPacketType(t *testing.T) {
	assert := assert.New(t)

	typ, err := GetPacketType([]byte{0x02, 0x01, 0x02, 0x00})
	assert.NoError(err)
	assert.Equal(PushData, typ)

	_, err = GetPacketType([]byte{0x02, 0x01, 0x02})
	assert.Error(err)

	_, err = GetPacketType([]byte{0x02, 0x01, 0x02, 0xff})
	assert.Error(err)
}

func TestPushDataPacketRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var p PushDataPacket
	p.ProtocolVersion = ProtocolVersion2
	p.RandomToken = 1234
	p.GatewayMAC = link.EUI64{1, 2, 3, 4, 5, 6, 7, 8}
	p.Payload.Stat = &Stat{Time: "2016-01-01 00:00:00 GMT", RXNb: 1, RXOK: 1}

	b, err := p.MarshalBinary()
	assert.NoError(err)

	var out PushDataPacket
	assert.NoError(out.UnmarshalBinary(b))
	assert.Equal(p.GatewayMAC, out.GatewayMAC)
	assert.Equal(p.RandomToken, out.RandomToken)
	assert.Equal(p.Payload.Stat.RXNb, out.Payload.Stat.RXNb)
}

func TestPushDataGetUplinkFrames(t *testing.T) {
	assert := assert.New(t)

	var p PushDataPacket
	p.GatewayMAC = link.EUI64{8, 7, 6, 5, 4, 3, 2, 1}
	p.Payload.RXPK = []RXPK{
		{Tmst: 100, RSSI: -50, LSNR: 5.5, Stat: 1, Data: "AAEC", DatR: "SF7BW125"},
		{Tmst: 200, RSSI: -60, LSNR: 2.5, Stat: -1, Data: "AwQF", DatR: "SF7BW125"},
	}

	frames, err := p.GetUplinkFrames(false, true)
	assert.NoError(err)
	assert.Len(frames, 1)
	assert.Equal(uint32(100), frames[0].Timestamp)
	assert.Equal(p.GatewayMAC, frames[0].GatewayMAC)
	assert.Equal(link.Uplink, frames[0].Direction)

	frames, err = p.GetUplinkFrames(true, true)
	assert.NoError(err)
	assert.Len(frames, 2)
}

func TestPullRespRoundTrip(t *testing.T) {
	assert := assert.New(t)

	dl := &link.LinkPacket{
		GatewayMAC: link.EUI64{1, 1, 1, 1, 1, 1, 1, 1},
		Direction:  link.Downlink,
		Timestamp:  5000000,
		Payload:    []byte{0xde, 0xad, 0xbe, 0xef},
		Window1: &link.TxWindow{
			Frequency:  868100000,
			DataRate:   "SF7BW125",
			CodingRate: "4/5",
		},
	}

	p, err := GetPullRespPacket(42, 1, dl)
	assert.NoError(err)
	assert.Equal("SF7BW125", p.Payload.TXPK.DatR)

	_, err = GetPullRespPacket(42, 2, dl)
	assert.Error(err, "window 2 was not offered")

	b, err := p.MarshalBinary()
	assert.NoError(err)

	var out PullRespPacket
	assert.NoError(out.UnmarshalBinary(b))
	assert.Equal(p.Payload.TXPK.DatR, out.Payload.TXPK.DatR)

	phy, err := out.Payload.TXPK.PHYPayload()
	assert.NoError(err)
	assert.Equal(dl.Payload, phy)
}

func TestTXAckError(t *testing.T) {
	assert := assert.New(t)
	assert.False(TXAckNone.Fatal())
	assert.True(TXAckTooLate.Fatal())

	var ack TXACKPacket
	ack.GatewayMAC = link.EUI64{1, 2, 3, 4, 5, 6, 7, 8}
	ack.Payload.TXPKACK.Error = TXAckTooEarly

	b, err := ack.MarshalBinary()
	assert.NoError(err)

	var out TXACKPacket
	assert.NoError(out.UnmarshalBinary(b))
	assert.Equal(TXAckTooEarly, out.Payload.TXPKACK.Error)
}

func TestPushACKPullACKRoundTrip(t *testing.T) {
	assert := assert.New(t)

	ack := PushACKPacket{ProtocolVersion: ProtocolVersion2, RandomToken: 99}
	b, err := ack.MarshalBinary()
	assert.NoError(err)
	var out PushACKPacket
	assert.NoError(out.UnmarshalBinary(b))
	assert.Equal(ack, out)

	pack := PullACKPacket{ProtocolVersion: ProtocolVersion2, RandomToken: 99}
	b, err = pack.MarshalBinary()
	assert.NoError(err)
	var pout PullACKPacket
	assert.NoError(pout.UnmarshalBinary(b))
	assert.Equal(pack, pout)
}
