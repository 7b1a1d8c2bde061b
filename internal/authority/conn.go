// Package authority implements the client subsystem for the central
// identity authority: one shared secured gRPC connection with transparent
// single-retry reconnects, and the typed operation surface over it.
package authority

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"github.com/mvoronin/authgate/internal/authority/pb"
	"github.com/mvoronin/authgate/internal/logging"
)

// Port is the fixed port the authority listens on.
const Port = 50051

// ErrConfig marks a missing required setting. It is fatal at startup and
// never retried.
var ErrConfig = errors.New("authority: missing required configuration")

// Config carries the settings required to reach the authority. Host,
// ServiceName and SubServiceName are mandatory; RootCertPath points at the
// trust-anchor certificate for the secured channel.
type Config struct {
	Host           string
	ServiceName    string
	SubServiceName string
	RootCertPath   string
}

func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: authority host", ErrConfig)
	}
	if c.ServiceName == "" {
		return fmt.Errorf("%w: service name", ErrConfig)
	}
	if c.SubServiceName == "" {
		return fmt.Errorf("%w: sub-service name", ErrConfig)
	}
	if c.RootCertPath == "" {
		return fmt.Errorf("%w: root certificate path", ErrConfig)
	}
	return nil
}

// Invoker runs a call against the current authority stub, transparently
// replacing the connection and retrying exactly once on transient
// transport failures.
type Invoker interface {
	Invoke(ctx context.Context, call func(stub pb.AuthorityServiceClient) error) error
	Close() error
}

// Conn owns the single shared channel and stub to the authority. The
// connection is created lazily on first use and replaced at most once per
// failure episode; the mutex serializes replacement so concurrent callers
// never race to reconnect.
type Conn struct {
	cfg Config
	log logging.Logger

	mu   sync.Mutex
	conn *grpc.ClientConn
	stub pb.AuthorityServiceClient
	gen  uint64

	// seams for tests
	dial    func(cfg Config) (*grpc.ClientConn, error)
	newStub func(cc grpc.ClientConnInterface) pb.AuthorityServiceClient
}

// NewConn validates cfg and returns an unconnected Conn; the channel is
// dialed on first use. A validation failure is a fatal configuration
// error, not a runtime one.
func NewConn(cfg Config, log logging.Logger) (*Conn, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Conn{
		cfg:     cfg,
		log:     log,
		dial:    dialSecure,
		newStub: pb.NewAuthorityServiceClient,
	}, nil
}

func dialSecure(cfg Config) (*grpc.ClientConn, error) {
	creds, err := credentials.NewClientTLSFromFile(cfg.RootCertPath, "")
	if err != nil {
		return nil, fmt.Errorf("load root certificate %s: %w", cfg.RootCertPath, err)
	}
	return grpc.NewClient(fmt.Sprintf("%s:%d", cfg.Host, Port), grpc.WithTransportCredentials(creds))
}

// current returns the stub and the generation it belongs to, dialing
// lazily on first use.
func (c *Conn) current() (pb.AuthorityServiceClient, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stub == nil {
		if err := c.replaceLocked(); err != nil {
			return nil, 0, err
		}
	}
	return c.stub, c.gen, nil
}

// reconnect replaces the connection, but only if no other caller already
// replaced it since failedGen was handed out. Either way it returns the
// stub that is current afterwards.
func (c *Conn) reconnect(ctx context.Context, failedGen uint64) (pb.AuthorityServiceClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != failedGen {
		return c.stub, nil
	}

	c.log.Warn(ctx, "replacing authority connection", "generation", c.gen)
	reconnects.Inc()

	if err := c.replaceLocked(); err != nil {
		return nil, err
	}
	return c.stub, nil
}

func (c *Conn) replaceLocked() error {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.stub = nil
	}

	conn, err := c.dial(c.cfg)
	if err != nil {
		return err
	}

	c.conn = conn
	c.stub = c.newStub(conn)
	c.gen++
	return nil
}

// Invoke runs call against the current stub. If it fails with a transient
// transport code, the connection is replaced and the call retried exactly
// once; the retry's outcome is final. Any other failure propagates
// unmodified.
func (c *Conn) Invoke(ctx context.Context, call func(stub pb.AuthorityServiceClient) error) error {
	stub, gen, err := c.current()
	if err != nil {
		return err
	}

	err = call(stub)
	if err == nil || !isTransient(err) {
		return err
	}

	stub, rerr := c.reconnect(ctx, gen)
	if rerr != nil {
		// reconnect itself failed; surface the original transport error
		c.log.Error(ctx, "authority reconnect failed", "error", rerr)
		return err
	}

	return call(stub)
}

// Close releases the channel. Registered as a teardown action by the
// binary; safe to call on a never-dialed Conn.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.stub = nil
	return err
}

// isTransient reports whether err belongs to the failure class expected
// to be resolved by reconnecting: unavailable, internal, deadline
// exceeded, or unknown/unclassified.
func isTransient(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.Unavailable, codes.Internal, codes.DeadlineExceeded, codes.Unknown:
		return true
	default:
		return false
	}
}
