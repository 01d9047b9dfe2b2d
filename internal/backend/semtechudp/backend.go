// Package semtechudp implements the Gateway component: it terminates the
// Semtech UDP packet-forwarder protocol, lifts received frames into the
// internal LinkPacket form, and schedules downlinks onto RX1 with RX2
// fallback.
package semtechudp

import (
	"context"
	"encoding/base64"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/loraforward/gateway-bridge/internal/backend/semtechudp/packets"
	"github.com/loraforward/gateway-bridge/internal/bridgeerr"
	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/internal/metadata"
	"github.com/loraforward/gateway-bridge/internal/metrics"
	"github.com/loraforward/gateway-bridge/internal/tracing"
)

// DownlinkTimeout is how long the Gateway waits for a concentrator's
// TX_ACK per transmit window before treating the window as failed.
const DownlinkTimeout = 5 * time.Second

// gatewayCleanupInterval governs how often the stale-binding sweep runs.
const gatewayCleanupInterval = time.Minute

var (
	udpReadCounter  func(string)
	udpWriteCounter func(string)
	uplinkCounter   func(string)
)

func init() {
	udpReadCounter = metrics.MustRegisterNewSingleLabelCounter(
		"gateway_udp_read",
		"Per packet-type counter for frames read from the UDP socket.",
		"type",
	)
	udpWriteCounter = metrics.MustRegisterNewSingleLabelCounter(
		"gateway_udp_write",
		"Per packet-type counter for frames written to the UDP socket.",
		"type",
	)
	uplinkCounter = metrics.MustRegisterNewSingleLabelCounter(
		"gateway_uplink_event",
		"Per outcome counter for uplink frame handling.",
		"event",
	)
}

// udpPacket is a raw datagram paired with its source/destination address.
type udpPacket struct {
	addr *net.UDPAddr
	data []byte
}

// Gateway terminates the Semtech UDP protocol on a single local address
// and bridges it onto the uplinks/downlinks queues.
type Gateway struct {
	conn *net.UDPConn

	uplinks   chan<- *link.LinkPacket
	downlinks <-chan *link.LinkPacket

	udpSendChan chan udpPacket
	gateways    gateways

	fakeRxTime   bool
	skipCRCCheck bool

	waitersMu sync.Mutex
	waiters   map[uint16]chan packets.TXAckError

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New binds a UDP listener on bindAddr and constructs a Gateway.
// fakeRxTime is passed on to PushDataPacket.GetUplinkFrames, whose
// LinkPackets carry no wall-clock time, so it does not change the
// uplinks that are enqueued; skipCRCCheck disables the CRC-failure drop so malformed
// frames can still be inspected during development.
func New(bindAddr string, uplinks chan<- *link.LinkPacket, downlinks <-chan *link.LinkPacket, fakeRxTime, skipCRCCheck bool) (*Gateway, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, errors.Wrap(err, "resolve udp addr")
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "listen udp")
	}
	log.WithField("addr", addr).Info("gateway: listening for packet-forwarder traffic")

	return &Gateway{
		conn:         conn,
		uplinks:      uplinks,
		downlinks:    downlinks,
		udpSendChan:  make(chan udpPacket),
		gateways:     newGateways(),
		fakeRxTime:   fakeRxTime,
		skipCRCCheck: skipCRCCheck,
		waiters:      make(map[uint16]chan packets.TXAckError),
	}, nil
}

// Run blocks until shutdown fires, ctx is cancelled, or the UDP socket
// fails unrecoverably.
// A broken local UDP socket is fatal; a closed downlinks queue is not --
// the Gateway logs and keeps processing uplinks.
func (g *Gateway) Run(ctx context.Context, shutdown <-chan struct{}) error {
	udpErrCh := make(chan error, 1)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := g.readPackets(); err != nil && !g.isClosed() {
			udpErrCh <- err
		}
	}()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.sendPackets()
	}()

	cleanupTicker := time.NewTicker(gatewayCleanupInterval)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-shutdown:
			log.Info("gateway: shutting down")
			g.close()
			return nil

		case <-ctx.Done():
			log.Info("gateway: context cancelled, shutting down")
			g.close()
			return nil

		case err := <-udpErrCh:
			g.close()
			return bridgeerr.Wrap(bridgeerr.Transport, err, "gateway: udp transport")

		case <-cleanupTicker.C:
			if err := g.gateways.cleanup(); err != nil {
				log.WithError(err).Error("gateway: registry cleanup failed")
			}

		case downlink, ok := <-g.downlinks:
			if !ok {
				log.Debug("gateway: downlinks queue closed")
				continue
			}
			go g.dispatchDownlink(downlink)
		}
	}
}

func (g *Gateway) close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()

	g.conn.Close()
	close(g.udpSendChan)
	g.wg.Wait()
}

func (g *Gateway) isClosed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closed
}

func (g *Gateway) readPackets() error {
	buf := make([]byte, 65507)
	for {
		n, addr, err := g.conn.ReadFromUDP(buf)
		if err != nil {
			if g.isClosed() {
				return nil
			}
			return err
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		up := udpPacket{addr: addr, data: data}

		go func() {
			if err := g.handlePacket(up); err != nil {
				fields := log.Fields{
					"addr":        up.addr,
					"data_base64": base64.StdEncoding.EncodeToString(up.data),
				}
				if kind, ok := bridgeerr.KindOf(err); ok {
					fields["kind"] = kind.String()
				}
				log.WithError(err).WithFields(fields).Debug("gateway: could not handle packet")
			}
		}()
	}
}

func (g *Gateway) sendPackets() {
	for p := range g.udpSendChan {
		pt, err := packets.GetPacketType(p.data)
		if err != nil {
			log.WithError(err).Warn("gateway: send: unparseable outgoing frame")
			continue
		}
		udpWriteCounter(pt.String())

		if _, err := g.conn.WriteToUDP(p.data, p.addr); err != nil {
			log.WithError(err).WithField("addr", p.addr).Warn("gateway: write to udp error")
		}
	}
}

func (g *Gateway) handlePacket(up udpPacket) error {
	span := opentracing.StartSpan("handlePacket")
	ctx := opentracing.ContextWithSpan(context.Background(), span)
	defer span.Finish()

	if g.isClosed() {
		return nil
	}

	pt, err := packets.GetPacketType(up.data)
	if err != nil {
		log.WithField("addr", up.addr).Debug("gateway: unparseable frame")
		return nil
	}
	udpReadCounter(pt.String())

	switch pt {
	case packets.PushData:
		return g.handlePushData(ctx, up)
	case packets.PullData:
		return g.handlePullData(up)
	case packets.TXACK:
		return g.handleTXAck(up)
	default:
		log.WithField("type", pt).Warn("gateway: unexpected packet type from concentrator")
		return nil
	}
}

func (g *Gateway) handlePullData(up udpPacket) error {
	var p packets.PullDataPacket
	if err := p.UnmarshalBinary(up.data); err != nil {
		return bridgeerr.Wrap(bridgeerr.Protocol, err, "unmarshal pull_data")
	}

	_, err := g.gateways.get(p.GatewayMAC)
	isNew := err != nil

	if err := g.gateways.set(p.GatewayMAC, gatewayBinding{
		addr:            up.addr,
		lastSeen:        time.Now().UTC(),
		protocolVersion: p.ProtocolVersion,
	}); err != nil {
		return errors.Wrap(err, "set gateway binding")
	}

	if isNew {
		log.WithFields(log.Fields{"mac": p.GatewayMAC, "addr": up.addr}).Info("gateway: new client")
	} else {
		log.WithFields(log.Fields{"mac": p.GatewayMAC, "addr": up.addr}).Debug("gateway: updated client")
	}

	ack := packets.PullACKPacket{ProtocolVersion: p.ProtocolVersion, RandomToken: p.RandomToken}
	data, err := ack.MarshalBinary()
	if err != nil {
		return err
	}
	g.udpSendChan <- udpPacket{addr: up.addr, data: data}
	return nil
}

func (g *Gateway) handleTXAck(up udpPacket) error {
	var p packets.TXACKPacket
	if err := p.UnmarshalBinary(up.data); err != nil {
		return bridgeerr.Wrap(bridgeerr.Protocol, err, "unmarshal tx_ack")
	}

	g.waitersMu.Lock()
	ch, ok := g.waiters[p.RandomToken]
	g.waitersMu.Unlock()
	if !ok {
		log.WithField("token", p.RandomToken).Debug("gateway: tx ack for unknown token")
		return nil
	}
	ch <- p.Payload.TXPKACK.Error
	return nil
}

func (g *Gateway) handlePushData(ctx context.Context, up udpPacket) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handlePushData")
	defer span.Finish()

	var p packets.PushDataPacket
	if err := p.UnmarshalBinary(up.data); err != nil {
		return bridgeerr.Wrap(bridgeerr.Protocol, err, "unmarshal push_data")
	}

	ack := packets.PushACKPacket{ProtocolVersion: p.ProtocolVersion, RandomToken: p.RandomToken}
	data, err := ack.MarshalBinary()
	if err != nil {
		return err
	}
	g.udpSendChan <- udpPacket{addr: up.addr, data: data}

	if stat, err := p.GetGatewayStats(); err == nil {
		log.WithFields(log.Fields{
			"mac":      p.GatewayMAC,
			"rxnb":     stat.RXNb,
			"rxok":     stat.RXOK,
			"txnb":     stat.TXNb,
			"metadata": metadata.Get(),
		}).Info("gateway: status report")
	}

	frames, err := p.GetUplinkFrames(g.skipCRCCheck, g.fakeRxTime)
	if err != nil {
		return bridgeerr.Wrap(bridgeerr.Protocol, err, "get uplink frames")
	}

	carrier, err := tracing.InjectSpanContextIntoBinaryCarrier(tracing.Tracer, span)
	if err != nil {
		log.WithError(err).Debug("gateway: inject span context error")
	}

	for _, f := range frames {
		f.CorrelationID = uuid.NewString()
		if f.IsLongFi() {
			log.WithField("correlation_id", f.CorrelationID).Debug("gateway: dropping longfi frame")
			uplinkCounter("longfi_drop")
			continue
		}
		f.Carrier = carrier
		log.WithField("correlation_id", f.CorrelationID).Debug("gateway: uplink enqueued")
		uplinkCounter("enqueued")
		g.uplinks <- f
	}
	return nil
}

// dispatchDownlink implements §4.1's RX1/RX2 scheduling. Any outcome from
// the RX2 attempt is terminal; the Gateway never retries past two
// windows because the end-device has closed its receive windows by then.
func (g *Gateway) dispatchDownlink(dl *link.LinkPacket) {
	logger := log.WithField("correlation_id", dl.CorrelationID)

	binding, err := g.gateways.get(dl.GatewayMAC)
	if err != nil {
		logger.WithError(err).WithField("mac", dl.GatewayMAC).Warn("gateway: unknown mac on downlink dispatch")
		return
	}

	ackErr, err := g.sendWindow(binding, dl, 1)
	if err != nil {
		logger.WithError(err).Debug("gateway: rx1 dispatch error")
		return
	}
	if ackErr == packets.TXAckNone || ackErr == "" {
		return
	}
	if ackErr != packets.TXAckTooEarly && ackErr != packets.TXAckTooLate {
		logger.WithField("error", ackErr).Debug("gateway: rx1 rejected, not retrying")
		return
	}
	if dl.Window2 == nil {
		logger.Debug("gateway: rx1 missed and no rx2 window offered")
		return
	}

	if _, err := g.sendWindow(binding, dl, 2); err != nil {
		logger.WithError(err).Debug("gateway: rx2 dispatch error")
	}
}

func (g *Gateway) sendWindow(binding gatewayBinding, dl *link.LinkPacket, window int) (packets.TXAckError, error) {
	token := uint16(rand.Uint32())

	pullResp, err := packets.GetPullRespPacket(token, window, dl)
	if err != nil {
		return "", errors.Wrap(err, "build pull_resp")
	}
	data, err := pullResp.MarshalBinary()
	if err != nil {
		return "", errors.Wrap(err, "marshal pull_resp")
	}

	waitCh := make(chan packets.TXAckError, 1)
	g.waitersMu.Lock()
	g.waiters[token] = waitCh
	g.waitersMu.Unlock()
	defer func() {
		g.waitersMu.Lock()
		delete(g.waiters, token)
		g.waitersMu.Unlock()
	}()

	g.udpSendChan <- udpPacket{addr: binding.addr, data: data}

	select {
	case ackErr := <-waitCh:
		return ackErr, nil
	case <-time.After(DownlinkTimeout):
		return "", errors.New("downlink ack timeout")
	}
}
