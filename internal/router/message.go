package router

import (
	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/routerpb"
)

// buildStateChannelMessage builds the signed envelope for an uplink
// LinkPacket: the wire fields plus the signer's public key and region,
// signed over the serialized unsigned payload. Errors here are surfaced
// to the caller (handle_uplink) and logged at debug level; they never
// stop the Router's main loop.
func buildStateChannelMessage(uplink *link.LinkPacket, signer Signer, region routerpb.Region) (*routerpb.StateChannelMessageV1, error) {
	if uplink.Routing == nil {
		return nil, errors.New("router: uplink carries no routing information")
	}

	msg := &routerpb.StateChannelMessageV1{
		GatewayMac: uplink.GatewayMAC[:],
		Timestamp:  uplink.Timestamp,
		Rssi:       uplink.RSSI,
		Snr:        uplink.SNR,
		Payload:    uplink.Payload,
		Routing:    toRoutingInformation(*uplink.Routing),
		PublicKey:  signer.PublicKey(),
		Region:     region,
	}

	unsigned, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal unsigned envelope")
	}

	sig, err := signer.Sign(unsigned)
	if err != nil {
		return nil, errors.Wrap(err, "sign envelope")
	}
	msg.Signature = sig

	return msg, nil
}

func toRoutingInformation(key link.RoutingKey) *routerpb.RoutingInformation {
	switch key.Kind {
	case link.RoutingKeyEUI:
		return &routerpb.RoutingInformation{
			Data: &routerpb.RoutingInformation_Eui{
				Eui: &routerpb.EUI{AppEui: key.AppEUI, DevEui: key.DevEUI},
			},
		}
	case link.RoutingKeyDevAddr:
		return &routerpb.RoutingInformation{
			Data: &routerpb.RoutingInformation_DevAddr{DevAddr: uint32(key.DevAddr)},
		}
	default:
		return nil
	}
}

// downlinkFromResponse builds a downlink LinkPacket from a router's
// response envelope, targeting the gateway the originating uplink came
// from. Returns nil if the response carried no downlink.
func downlinkFromResponse(resp *routerpb.StateChannelMessageV1, gatewayMAC link.EUI64) *link.LinkPacket {
	if resp == nil || resp.Downlink == nil {
		return nil
	}

	dl := &link.LinkPacket{
		GatewayMAC: gatewayMAC,
		Direction:  link.Downlink,
		Timestamp:  resp.Downlink.Timestamp,
		Payload:    resp.Downlink.Payload,
	}
	if w := resp.Downlink.Rx1; w != nil {
		dl.Window1 = &link.TxWindow{
			Frequency:  w.Frequency,
			DataRate:   w.DataRate,
			CodingRate: w.CodingRate,
			Power:      int8(w.Power),
		}
	}
	if w := resp.Downlink.Rx2; w != nil {
		dl.Window2 = &link.TxWindow{
			Frequency:  w.Frequency,
			DataRate:   w.DataRate,
			CodingRate: w.CodingRate,
			Power:      int8(w.Power),
		}
	}
	return dl
}
