package server_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	config "github.com/eduvox/backend/config/fluency"
	"github.com/eduvox/backend/pkg/json"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/server"
	"github.com/eduvox/backend/services/fluency/storage"
	"github.com/eduvox/backend/services/fluency/usecase"
)

const bufSize = 1024 * 1024

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	t.Cleanup(func() { lis.Close() })

	usc := usecase.New(&config.Config{PauseThreshold: 0.5}, storage.New(), nil)
	srv := server.NewServerOptions(usc, logger.Discard())
	grpcServer, err := srv.NewServer()
	if err != nil {
		t.Fatalf("NewServer() returned error: %v", err)
	}
	t.Cleanup(grpcServer.Stop)

	go func() {
		if err := grpcServer.Serve(lis); err != nil &&
			!errors.Is(err, grpc.ErrServerStopped) &&
			!errors.Is(err, net.ErrClosed) &&
			err.Error() != "closed" {
			t.Errorf("Serve() error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestAnalyzeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := server.NewFluencyServiceClient(startServer(t))

	in, err := json.ToStruct(&entity.AnalyzeRequest{
		OwnerID: "alice",
		Source:  "speech.json",
		Transcription: entity.Transcription{
			Text:     "This is a test test of the system",
			Duration: 10,
		},
	})
	if err != nil {
		t.Fatalf("ToStruct() returned error: %v", err)
	}

	out, err := client.Analyze(ctx, in)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}

	var resp entity.AnalyzeResponse
	if err := json.FromStruct(out, &resp); err != nil {
		t.Fatalf("FromStruct() returned error: %v", err)
	}
	if resp.Report == nil || resp.Report.Fluency.FluencyScore != 84 || resp.Report.Fluency.WordsPerMinute != 48 {
		t.Fatalf("unexpected report %+v", resp.Report)
	}

	getIn, _ := json.ToStruct(&entity.GetReportRequest{ID: resp.Report.ID})
	getOut, err := client.GetReport(ctx, getIn)
	if err != nil {
		t.Fatalf("GetReport() returned error: %v", err)
	}
	var stored entity.Report
	if err := json.FromStruct(getOut, &stored); err != nil {
		t.Fatalf("FromStruct() returned error: %v", err)
	}
	if stored.Rendered != resp.Report.Rendered {
		t.Fatalf("stored rendering differs from the analyze response")
	}

	listIn, _ := json.ToStruct(&entity.ListReportsRequest{OwnerID: "alice"})
	listOut, err := client.ListReports(ctx, listIn)
	if err != nil {
		t.Fatalf("ListReports() returned error: %v", err)
	}
	var list entity.ListReportsResponse
	if err := json.FromStruct(listOut, &list); err != nil {
		t.Fatalf("FromStruct() returned error: %v", err)
	}
	if len(list.Reports) != 1 || list.Reports[0].ID != resp.Report.ID {
		t.Fatalf("unexpected list %+v", list.Reports)
	}
}

func TestStatusCodes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := server.NewFluencyServiceClient(startServer(t))

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "empty transcript",
			call: func() error {
				in, _ := json.ToStruct(&entity.AnalyzeRequest{OwnerID: "a", Transcription: entity.Transcription{Text: " "}})
				_, err := client.Analyze(ctx, in)
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "missing owner",
			call: func() error {
				in, _ := json.ToStruct(&entity.AnalyzeRequest{Transcription: entity.Transcription{Text: "hi"}})
				_, err := client.Analyze(ctx, in)
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown report",
			call: func() error {
				in, _ := json.ToStruct(&entity.GetReportRequest{ID: "nope"})
				_, err := client.GetReport(ctx, in)
				return err
			},
			want: codes.NotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if got := status.Code(err); got != tc.want {
				t.Fatalf("expected %s, got %s (%v)", tc.want, got, err)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := healthgrpc.NewHealthClient(startServer(t))
	resp, err := client.Check(ctx, &healthgrpc.HealthCheckRequest{Service: server.ServiceName})
	if err != nil {
		t.Fatalf("Check() returned error: %v", err)
	}
	if resp.GetStatus() != healthgrpc.HealthCheckResponse_SERVING {
		t.Fatalf("unexpected health status %s", resp.GetStatus())
	}
}
