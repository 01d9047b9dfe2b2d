package router

import (
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/loraforward/gateway-bridge/routerpb"
)

// ConnectTimeout is the lazy gRPC connect timeout applied to every router
// and validator endpoint. It is the only deadline in the dial path; there
// is no separate per-RPC call deadline (see UplinkTimeoutSecs).
const ConnectTimeout = 10 * time.Second

// UplinkTimeoutSecs names the nominal uplink handling budget. It is
// exposed for documentation and metrics purposes only: the current
// design does not enforce it as a second deadline on top of the gRPC
// channel's connect timeout.
const UplinkTimeoutSecs = 6

// dialLazy opens a gRPC connection without blocking for the TCP/TLS
// handshake; grpc.WithConnectParams bounds how long any future RPC will
// wait for that handshake to complete before failing.
func dialLazy(uri string) (*grpc.ClientConn, error) {
	return grpc.Dial(
		uri,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{MinConnectTimeout: ConnectTimeout}),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    30 * time.Second,
			Timeout: ConnectTimeout,
		}),
	)
}

// RouterClientEndpoint is a lazily-connected handle to one remote
// router's unary route RPC. It implements table.RouterEndpoint.
type RouterClientEndpoint struct {
	uri    string
	conn   *grpc.ClientConn
	client routerpb.RouterServiceClient
}

// NewRouterClient dials (lazily) the router at uri.
func NewRouterClient(uri string) (*RouterClientEndpoint, error) {
	conn, err := dialLazy(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "dial router %s", uri)
	}
	return &RouterClientEndpoint{
		uri:    uri,
		conn:   conn,
		client: routerpb.NewRouterServiceClient(conn),
	}, nil
}

// URI implements table.RouterEndpoint.
func (c *RouterClientEndpoint) URI() string { return c.uri }

// Client returns the underlying generated client for issuing the route
// RPC.
func (c *RouterClientEndpoint) Client() routerpb.RouterServiceClient { return c.client }

// ValidatorClient is a lazily-connected handle to the control-plane
// routing stream.
type ValidatorClient struct {
	conn   *grpc.ClientConn
	client routerpb.RoutingServiceClient
}

// NewValidatorClient dials (lazily) the validator at uri.
func NewValidatorClient(uri string) (*ValidatorClient, error) {
	conn, err := dialLazy(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "dial validator %s", uri)
	}
	return &ValidatorClient{conn: conn, client: routerpb.NewRoutingServiceClient(conn)}, nil
}

// Client returns the underlying generated client for opening the routing
// stream.
func (v *ValidatorClient) Client() routerpb.RoutingServiceClient { return v.client }
