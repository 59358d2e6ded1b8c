package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.Server = (*GRPCServer)(nil)

// shutdowner flips every health status to NOT_SERVING.
type shutdowner interface {
	Shutdown()
}

// GRPCServer wraps the operational gRPC server with its address and health state.
type GRPCServer struct {
	server *grpc.Server
	health shutdowner
	addr   string
}

// NewGRPCServer creates a GRPCServer with given server and address.
func NewGRPCServer(server *grpc.Server, health shutdowner, addr string) *GRPCServer {
	return &GRPCServer{server: server, health: health, addr: addr}
}

// Start starts serving on the configured address using the provided security layer.
func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.server.Serve(listener)
}

// Stop reports NOT_SERVING to health checks and drains in-flight calls.
// If ctx ends first the server is stopped forcibly.
func (s *GRPCServer) Stop(ctx context.Context) error {
	if s.health != nil {
		s.health.Shutdown()
	}

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}

// Address returns the configured listen address.
func (s *GRPCServer) Address() string {
	return s.addr
}
