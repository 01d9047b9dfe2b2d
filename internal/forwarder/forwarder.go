// Package forwarder wires the Gateway and Router components together:
// it owns the bounded uplinks/downlinks queues and the shared shutdown
// signal, and runs both components' main loops concurrently.
package forwarder

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/loraforward/gateway-bridge/internal/backend/semtechudp"
	"github.com/loraforward/gateway-bridge/internal/config"
	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/internal/router"
	"github.com/loraforward/gateway-bridge/routerpb"
)

// queueDepth bounds the uplinks/downlinks queues between the Gateway and
// the Router; a full queue applies backpressure to its producer.
const queueDepth = 100

var regionByName = map[string]routerpb.Region{
	"US915": routerpb.Region_US915,
	"EU868": routerpb.Region_EU868,
	"EU433": routerpb.Region_EU433,
	"CN470": routerpb.Region_CN470,
	"CN779": routerpb.Region_CN779,
	"AU915": routerpb.Region_AU915,
	"AS923": routerpb.Region_AS923,
	"KR920": routerpb.Region_KR920,
	"IN865": routerpb.Region_IN865,
}

// Forwarder owns the Gateway, the Router, and the queues between them.
type Forwarder struct {
	gateway *semtechudp.Gateway
	router  *router.Router
}

// Setup constructs the Gateway and Router components per conf and wires
// them together. No network I/O beyond binding the local UDP listener and
// lazily dialing gRPC channels happens here.
func Setup(conf config.Config) (*Forwarder, error) {
	region, ok := regionByName[conf.Router.Region]
	if !ok {
		return nil, errors.Errorf("forwarder: unknown region %q", conf.Router.Region)
	}

	signer, err := router.NewSignerFromFile(conf.Router.SignerKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "forwarder: construct signer")
	}

	uplinks := make(chan *link.LinkPacket, queueDepth)
	downlinks := make(chan *link.LinkPacket, queueDepth)

	gw, err := semtechudp.New(conf.Gateway.UDPBind, uplinks, downlinks, conf.Gateway.FakeRxTime, conf.Gateway.SkipCRCCheck)
	if err != nil {
		return nil, errors.Wrap(err, "forwarder: construct gateway")
	}

	rt, err := router.New(downlinks, uplinks, signer, region, conf.Router.ValidatorURI, conf.Router.DefaultRouterURIs)
	if err != nil {
		return nil, errors.Wrap(err, "forwarder: construct router")
	}

	return &Forwarder{gateway: gw, router: rt}, nil
}

// Run blocks until shutdown fires or either component returns a fatal
// error, in which case the shared context is cancelled and the other
// component exits on observing that cancellation.
func (f *Forwarder) Run(ctx context.Context, shutdown <-chan struct{}) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := f.gateway.Run(ctx, shutdown); err != nil {
			log.WithError(err).Error("forwarder: gateway exited")
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := f.router.Run(ctx, shutdown); err != nil {
			log.WithError(err).Error("forwarder: router exited")
			return err
		}
		return nil
	})

	return g.Wait()
}
