// Package router implements the Router component: it maintains a routing
// table from a streamed control-plane feed, fans uplinks out to matching
// routers, and forwards router-originated downlinks back to the Gateway.
package router

import (
	"context"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/loraforward/gateway-bridge/internal/bridgeerr"
	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/internal/metrics"
	"github.com/loraforward/gateway-bridge/internal/router/filter"
	"github.com/loraforward/gateway-bridge/internal/router/table"
	"github.com/loraforward/gateway-bridge/internal/tracing"
	"github.com/loraforward/gateway-bridge/routerpb"
)

var (
	routingUpdateCounter func(string)
	uplinkEventCounter   func(string)
)

func init() {
	routingUpdateCounter = metrics.MustRegisterNewSingleLabelCounter(
		"router_routing_update",
		"Per outcome counter for routing-table updates.",
		"outcome",
	)
	uplinkEventCounter = metrics.MustRegisterNewSingleLabelCounter(
		"router_uplink_event",
		"Per outcome counter for uplink handling.",
		"outcome",
	)
}

// Router maintains the routing table and fans uplinks out to the routers
// it names, forwarding router-originated downlinks back onto the
// downlinks queue.
type Router struct {
	downlinks chan<- *link.LinkPacket
	uplinks   <-chan *link.LinkPacket

	signer    Signer
	region    routerpb.Region
	validator *ValidatorClient

	table          *table.Table
	defaultClients []table.RouterEndpoint
}

// New constructs a Router. defaultRouterURIs and validatorURI name the
// fallback router endpoints and the control-plane endpoint; both dial
// lazily (no network I/O happens here beyond channel setup).
func New(
	downlinks chan<- *link.LinkPacket,
	uplinks <-chan *link.LinkPacket,
	signer Signer,
	region routerpb.Region,
	validatorURI string,
	defaultRouterURIs []string,
) (*Router, error) {
	validator, err := NewValidatorClient(validatorURI)
	if err != nil {
		return nil, errors.Wrap(err, "router: construct validator client")
	}

	var defaults []table.RouterEndpoint
	for _, uri := range defaultRouterURIs {
		c, err := NewRouterClient(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "router: construct default router client %s", uri)
		}
		defaults = append(defaults, c)
	}

	return &Router{
		downlinks:      downlinks,
		uplinks:        uplinks,
		signer:         signer,
		region:         region,
		validator:      validator,
		table:          table.New(),
		defaultClients: defaults,
	}, nil
}

// Run blocks until shutdown fires or an unrecoverable error occurs. A
// routing-stream transport error is currently fatal: the source this
// design is grounded on panics on stream error rather than retrying, and
// that observable behavior is preserved here rather than silently
// redesigned (bounded reconnection is an open policy question, not an
// implementation decision this run loop makes unilaterally).
func (r *Router) Run(ctx context.Context, shutdown <-chan struct{}) error {
	log.Info("router: starting")

	stream, err := r.validator.Client().Routing(ctx, &routerpb.RoutingRequest{Height: 1})
	if err != nil {
		return errors.Wrap(err, "router: open routing stream")
	}

	type routingMsg struct {
		resp *routerpb.RoutingResponse
		err  error
	}
	routingCh := make(chan routingMsg)
	go func() {
		for {
			resp, err := stream.Recv()
			routingCh <- routingMsg{resp, err}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-shutdown:
			log.Info("router: shutting down")
			return nil

		case m := <-routingCh:
			if m.err != nil {
				if m.err == io.EOF {
					log.Info("router: routing stream closed")
					continue
				}
				log.WithError(m.err).Error("router: routing stream error")
				return bridgeerr.Wrap(bridgeerr.Transport, m.err, "router: routing stream")
			}
			r.handleRoutingUpdate(m.resp)

		case uplink, ok := <-r.uplinks:
			if !ok {
				log.Debug("router: uplinks queue closed")
				continue
			}
			if err := r.handleUplink(uplink); err != nil {
				log.WithError(err).Debug("router: ignoring failed uplink")
			}
		}
	}
}

// handleRoutingUpdate applies every row of resp to the table, then
// unconditionally overwrites the table's height -- even when resp.Height
// is not strictly greater than the current height. This mirrors the
// control plane's replay behavior bit-for-bit; it may be a quirk of the
// upstream source rather than intentional, but changing it would change
// observable behavior, so it is preserved and only logged about.
func (r *Router) handleRoutingUpdate(resp *routerpb.RoutingResponse) {
	if resp.Height <= r.table.Height() {
		log.WithFields(log.Fields{
			"incoming_height": resp.Height,
			"current_height":  r.table.Height(),
		}).Warn("router: routing update height did not advance")
		routingUpdateCounter("stale_height")
	}

	for _, row := range resp.Routings {
		entry, err := buildRoutingEntry(row)
		if err != nil {
			fields := log.Fields{"oui": row.Oui}
			if kind, ok := bridgeerr.KindOf(err); ok {
				fields["kind"] = kind.String()
			}
			log.WithError(err).WithFields(fields).Warn("router: failed to construct routing entry")
			routingUpdateCounter("entry_error")
			continue
		}
		r.table.Put(entry)
		routingUpdateCounter("applied")
	}

	r.table.SetHeight(resp.Height)
	log.WithField("height", r.table.Height()).Info("router: updated routing table")
}

func buildRoutingEntry(row *routerpb.Routing) (table.RoutingEntry, error) {
	entry := table.RoutingEntry{OUI: row.Oui}

	for _, blob := range row.Filters {
		f, err := filter.NewEuiFilter(blob)
		if err != nil {
			return table.RoutingEntry{}, bridgeerr.Wrap(bridgeerr.Protocol, err, "parse eui filter")
		}
		entry.Filters = append(entry.Filters, f)
	}
	for _, blob := range row.Subnets {
		f, err := filter.NewDevAddrFilter(blob)
		if err != nil {
			return table.RoutingEntry{}, bridgeerr.Wrap(bridgeerr.Protocol, err, "parse devaddr filter")
		}
		entry.Subnets = append(entry.Subnets, f)
	}
	for _, addr := range row.Addresses {
		c, err := NewRouterClient(string(addr.Uri))
		if err != nil {
			return table.RoutingEntry{}, bridgeerr.Wrap(bridgeerr.Transport, err, "construct router client")
		}
		entry.Endpoints = append(entry.Endpoints, c)
	}

	return entry, nil
}

// handleUplink signs the uplink exactly once, resolves its target
// endpoints, and spawns one fire-and-forget fan-out goroutine per target.
// Fan-out goroutines are never joined: completion is observed only
// through effects on the downlinks queue.
func (r *Router) handleUplink(uplink *link.LinkPacket) error {
	if !uplink.HasRouting() {
		log.Debug("router: ignoring uplink with no routing data")
		uplinkEventCounter("no_routing")
		return nil
	}

	message, err := buildStateChannelMessage(uplink, r.signer, r.region)
	if err != nil {
		uplinkEventCounter("sign_error")
		return bridgeerr.Wrap(bridgeerr.Crypto, err, "build state channel message")
	}

	targets := r.table.Match(*uplink.Routing)
	if len(targets) == 0 {
		targets = r.defaultClients
	}
	if len(targets) == 0 {
		uplinkEventCounter("no_targets")
		return nil
	}

	gatewayMAC := uplink.GatewayMAC
	correlationID := uplink.CorrelationID
	carrier := uplink.Carrier
	for _, t := range targets {
		endpoint, ok := t.(*RouterClientEndpoint)
		if !ok {
			continue
		}
		go r.fanOut(endpoint, message, gatewayMAC, correlationID, carrier)
	}

	uplinkEventCounter("dispatched")
	return nil
}

func (r *Router) fanOut(endpoint *RouterClientEndpoint, message *routerpb.StateChannelMessageV1, gatewayMAC link.EUI64, correlationID string, carrier []byte) {
	logger := log.WithFields(log.Fields{"uri": endpoint.URI(), "correlation_id": correlationID})

	ctx := context.Background()
	if len(carrier) > 0 {
		if parent, err := tracing.ExtractSpanContextFromBinaryCarrier(tracing.Tracer, carrier); err == nil {
			span := opentracing.StartSpan("router.route", opentracing.ChildOf(parent))
			defer span.Finish()
			ctx = opentracing.ContextWithSpan(ctx, span)
		} else {
			logger.WithError(err).Debug("router: extract span context error")
		}
	}

	resp, err := endpoint.Client().Route(ctx, message)
	if err != nil {
		err = bridgeerr.Wrap(bridgeerr.RPC, err, "route rpc")
		logger.WithError(err).Debug("router: route rpc failed")
		return
	}

	downlink := downlinkFromResponse(resp, gatewayMAC)
	if downlink == nil {
		return
	}
	downlink.CorrelationID = correlationID

	r.downlinks <- downlink
}
