package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/Deadmanswitch/encryption/internal/config"
	myGRPC "github.com/Deadmanswitch/encryption/internal/handler/grpc"
	"github.com/Deadmanswitch/encryption/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		logger.Error().Msgf("gRPC listener on %s: %v\n", cfg.GRPCAddress, err)
		return nil
	}

	return &grpcServer{
		handler:         handler,
		server:          grpc.NewServer(),
		gRPCNetListener: listener,
		logger:          logger,
	}
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v\n", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
