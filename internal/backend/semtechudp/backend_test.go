package semtechudp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loraforward/gateway-bridge/internal/backend/semtechudp/packets"
	"github.com/loraforward/gateway-bridge/internal/link"
)

func TestGatewayNoRX2AfterRX1Success(t *testing.T) {
	assert := assert.New(t)

	uplinks := make(chan *link.LinkPacket, 10)
	downlinks := make(chan *link.LinkPacket, 10)

	gw, err := New("127.0.0.1:0", uplinks, downlinks, true, false)
	assert.NoError(err)

	shutdown := make(chan struct{})
	go gw.Run(context.Background(), shutdown)
	defer close(shutdown)

	concentrator, err := net.DialUDP("udp", nil, gw.conn.LocalAddr().(*net.UDPAddr))
	assert.NoError(err)
	defer concentrator.Close()

	mac := link.EUI64{1, 2, 3, 4, 5, 6, 7, 8}
	pullData := packets.PullDataPacket{ProtocolVersion: packets.ProtocolVersion2, RandomToken: 7, GatewayMAC: mac}
	b, err := pullData.MarshalBinary()
	assert.NoError(err)
	_, err = concentrator.Write(b)
	assert.NoError(err)

	// drain pull ack
	buf := make([]byte, 65507)
	concentrator.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = concentrator.Read(buf)
	assert.NoError(err)

	downlinks <- &link.LinkPacket{
		GatewayMAC: mac,
		Direction:  link.Downlink,
		Payload:    []byte{1, 2, 3},
		Window1:    &link.TxWindow{Frequency: 868100000, DataRate: "SF7BW125", CodingRate: "4/5"},
		Window2:    &link.TxWindow{Frequency: 869525000, DataRate: "SF12BW125", CodingRate: "4/5"},
	}

	// read rx1 pull_resp
	concentrator.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := concentrator.Read(buf)
	assert.NoError(err)
	var resp1 packets.PullRespPacket
	assert.NoError(resp1.UnmarshalBinary(buf[:n]))

	ack := packets.TXACKPacket{ProtocolVersion: packets.ProtocolVersion2, RandomToken: resp1.RandomToken, GatewayMAC: mac}
	ack.Payload.TXPKACK.Error = packets.TXAckNone
	ackBytes, err := ack.MarshalBinary()
	assert.NoError(err)
	_, err = concentrator.Write(ackBytes)
	assert.NoError(err)

	// no second pull_resp should arrive for RX2
	concentrator.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, err = concentrator.Read(buf)
	assert.Error(err, "expected no rx2 dispatch after rx1 success")
}
