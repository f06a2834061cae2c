package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/eduvox/backend/pkg/json"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/fluency/analysis"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/storage"
	"github.com/eduvox/backend/services/fluency/usecase"
)

type Server struct {
	usecase usecase.Usecase
	log     *slog.Logger
	health  *health.Server
}

var _ FluencyServiceServer = (*Server)(nil)

func NewServerOptions(usecase usecase.Usecase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		usecase: usecase,
		log:     log.With("component", "fluency.Server"),
		health:  health.NewServer(),
	}
}

// NewServer builds a grpc.Server with the fluency and health services
// registered. Both report SERVING until Shutdown is called.
func (s *Server) NewServer() (*grpc.Server, error) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.logInterceptor))
	RegisterFluencyServiceServer(srv, s)
	healthgrpc.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthgrpc.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthgrpc.HealthCheckResponse_SERVING)
	return srv, nil
}

// Shutdown flips the health status to NOT_SERVING.
func (s *Server) Shutdown() {
	s.health.Shutdown()
}

func (s *Server) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &entity.AnalyzeRequest{}
	if err := json.FromStruct(in, req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed analyze request: %v", err)
	}

	res, err := s.usecase.Analyze(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}

	return encode(res)
}

func (s *Server) GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &entity.GetReportRequest{}
	if err := json.FromStruct(in, req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed get report request: %v", err)
	}

	res, err := s.usecase.GetReport(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}

	return encode(res)
}

func (s *Server) ListReports(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &entity.ListReportsRequest{}
	if err := json.FromStruct(in, req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed list reports request: %v", err)
	}

	res, err := s.usecase.ListReports(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}

	return encode(res)
}

func (s *Server) logInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := s.log.With("method", info.FullMethod)
	ctx = logger.WithContext(ctx, log)

	started := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{
		"code", code.String(),
		"duration_ms", time.Since(started).Milliseconds(),
	}
	if code == codes.Internal || code == codes.Unknown {
		log.Error("request failed", append(args, "error", err.Error())...)
	} else {
		log.Info("request handled", args...)
	}

	return resp, err
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest), errors.Is(err, analysis.ErrEmptyTranscript):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func encode(v any) (*structpb.Struct, error) {
	out, err := json.ToStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}
