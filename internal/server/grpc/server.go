// Package grpc exposes the standard grpc.health.v1 service. Its status
// follows a periodic ping of the storage backend.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "gophauth.Auth"

// DefaultProbeInterval is how often the store is pinged.
const DefaultProbeInterval = 10 * time.Second

// Pinger is satisfied by repomanager.RepositoryManager.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	address  string
	probe    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
	health   *health.Server
	serving  bool
}

// NewHealthServer builds a health server for address. timeout bounds each
// ping; interval <= 0 selects DefaultProbeInterval and timeout <= 0 falls
// back to the interval.
func NewHealthServer(address string, l logging.Logger, probe Pinger, interval, timeout time.Duration) *HealthServer {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if timeout <= 0 {
		timeout = interval
	}
	return &HealthServer{
		address:  address,
		probe:    probe,
		interval: interval,
		timeout:  timeout,
		logger:   l.With("module", "grpc_health"),
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	// first status is known before the first request arrives
	s.check(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.check(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// check pings the store and publishes the result. Only transitions are logged.
func (s *HealthServer) check(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.probe.Ping(pctx)
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)

	if serving := err == nil; serving != s.serving {
		s.serving = serving
		if serving {
			s.logger.Info(ctx, "store reachable")
		} else {
			s.logger.Warn(ctx, "store unreachable", "error", err)
		}
	}
}
