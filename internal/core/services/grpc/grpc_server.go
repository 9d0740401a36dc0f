package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the whole dashboard.
const ServiceName = "cyberdash"

// HealthServer exposes the standard gRPC health protocol. Every resource is
// a service of its own: NOT_SERVING while its last fetch failed, SERVING
// otherwise. The overall service is always SERVING while the server runs.
type HealthServer struct {
	server    *grpc.Server
	health    *health.Server
	resources []string
	logger    *slog.Logger

	unsubscribe func()
}

// NewHealthServer builds the server and starts tracking st.
func NewHealthServer(st *store.Store, resources []string, logger *slog.Logger) *HealthServer {
	if logger == nil {
		logger = slog.Default()
	}
	h := &HealthServer{
		server:    grpc.NewServer(),
		health:    health.NewServer(),
		resources: resources,
		logger:    logger.With("component", "grpc"),
	}
	healthpb.RegisterHealthServer(h.server, h.health)
	reflection.Register(h.server)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	h.sync(st.State(), "")
	h.unsubscribe = st.Subscribe(func(a store.Action, s store.State) {
		h.sync(s, a.Slice())
	})
	return h
}

// sync updates the status of every resource, or only of slice when set.
func (h *HealthServer) sync(s store.State, slice store.SliceID) {
	for _, res := range h.resources {
		if slice != "" && string(slice) != res {
			continue
		}
		c, ok := screens.Collection(s, res)
		if !ok {
			continue
		}
		status := healthpb.HealthCheckResponse_SERVING
		if c.Error != "" {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		h.health.SetServingStatus(res, status)
	}
}

// Status returns the current status of service.
func (h *HealthServer) Status(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := h.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// Server returns the underlying gRPC server.
func (h *HealthServer) Server() *grpc.Server {
	return h.server
}

// Run serves on addr until ctx is done.
func (h *HealthServer) Run(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen error: %w", err)
	}
	return h.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then drains and stops.
func (h *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		h.unsubscribe()
		h.health.Shutdown()
		h.server.GracefulStop()
	}()

	h.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	if err := h.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server error: %w", err)
	}
	return nil
}
