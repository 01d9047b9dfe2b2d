package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loraforward/gateway-bridge/internal/link"
)

type fakeSigner struct {
	signCalls int
	pub       []byte
}

func (s *fakeSigner) PublicKey() []byte { return s.pub }
func (s *fakeSigner) Sign(msg []byte) ([]byte, error) {
	s.signCalls++
	return []byte("sig"), nil
}

func TestHandleUplinkNoRoutingProducesNoFanOut(t *testing.T) {
	assert := assert.New(t)

	downlinks := make(chan *link.LinkPacket, 1)
	r := &Router{downlinks: downlinks, signer: &fakeSigner{}}

	uplink := &link.LinkPacket{Direction: link.Uplink}
	assert.Nil(uplink.Routing)

	err := r.handleUplink(uplink)
	assert.NoError(err)
	select {
	case <-downlinks:
		t.Fatal("expected no downlink activity for a routing-less uplink")
	default:
	}
}

func TestBuildStateChannelMessageSignsOnce(t *testing.T) {
	assert := assert.New(t)

	signer := &fakeSigner{pub: []byte("pub")}
	key := link.DevAddrRoutingKey(link.DevAddr(0x01020304))
	uplink := &link.LinkPacket{
		Direction: link.Uplink,
		Payload:   []byte{1, 2, 3},
		Routing:   &key,
	}

	msg, err := buildStateChannelMessage(uplink, signer, 0)
	assert.NoError(err)
	assert.Equal(1, signer.signCalls)
	assert.Equal([]byte("sig"), msg.Signature)
}
