package grpchealth

import (
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server exposes grpc.health.v1.Health so orchestrators can probe the
// service without going through the REST surface.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

func New(services ...string) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	for _, svc := range append([]string{""}, services...) {
		hs.SetServingStatus(svc, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return &Server{grpc: gs, health: hs}
}

// SetServing flips every registered service (and the overall "" entry).
func (s *Server) SetServing(serving bool, services ...string) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	for _, svc := range append([]string{""}, services...) {
		s.health.SetServingStatus(svc, status)
	}
}

func (s *Server) Health() healthpb.HealthServer {
	return s.health
}

func (s *Server) Serve(port string) error {
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		return err
	}
	return s.grpc.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
