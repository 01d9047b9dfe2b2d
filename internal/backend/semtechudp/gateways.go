package semtechudp

import (
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/loraforward/gateway-bridge/internal/link"
)

// gatewayCleanupDuration is how long a concentrator may go without a
// PULL_DATA keep-alive before it is evicted from the registry.
const gatewayCleanupDuration = 2 * time.Minute

var errGatewayDoesNotExist = errors.New("gateway does not exist")

// gatewayBinding tracks the last known UDP address of one concentrator.
type gatewayBinding struct {
	addr            *net.UDPAddr
	lastSeen        time.Time
	protocolVersion uint8
}

// gateways is the in-memory registry of concentrators that have sent at
// least one PULL_DATA keep-alive, keyed by gateway MAC. It is the runtime
// binding the Gateway component uses to know where to send a downlink.
type gateways struct {
	sync.RWMutex
	bindings map[link.EUI64]gatewayBinding
}

func newGateways() gateways {
	return gateways{
		bindings: make(map[link.EUI64]gatewayBinding),
	}
}

// get returns the binding for the given gateway MAC.
func (g *gateways) get(mac link.EUI64) (gatewayBinding, error) {
	g.RLock()
	defer g.RUnlock()

	b, ok := g.bindings[mac]
	if !ok {
		return gatewayBinding{}, errGatewayDoesNotExist
	}
	return b, nil
}

// set records (or updates) a binding. The caller (handlePullData) already
// logs new-vs-updated client on first sight of a given MAC.
func (g *gateways) set(mac link.EUI64, b gatewayBinding) error {
	g.Lock()
	defer g.Unlock()

	g.bindings[mac] = b
	return nil
}

// cleanup evicts bindings that have not been refreshed within
// gatewayCleanupDuration, logging each eviction.
func (g *gateways) cleanup() error {
	g.Lock()
	var stale []link.EUI64
	for mac, b := range g.bindings {
		if time.Since(b.lastSeen) > gatewayCleanupDuration {
			stale = append(stale, mac)
			delete(g.bindings, mac)
		}
	}
	g.Unlock()

	for _, mac := range stale {
		log.WithField("mac", mac).Info("gateway: client disconnected")
	}
	return nil
}
