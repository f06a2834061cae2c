package fluency

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	config "github.com/eduvox/backend/config/web"
	"github.com/eduvox/backend/pkg/json"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/server"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

type Client struct {
	conn   *grpc.ClientConn
	client server.FluencyServiceClient
}

func New(cfg *config.ServiceConfig) (*Client, error) {
	conn, err := grpc.NewClient(
		cfg.Address(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc connection: %w", err)
	}

	return NewWithConn(conn), nil
}

// NewWithConn wraps an existing connection. The client owns conn afterwards.
func NewWithConn(conn *grpc.ClientConn) *Client {
	return &Client{
		conn:   conn,
		client: server.NewFluencyServiceClient(conn),
	}
}

func (c *Client) Analyze(ctx context.Context, req *entity.AnalyzeRequest) (*entity.Report, error) {
	res := &entity.AnalyzeResponse{}
	if err := c.call(ctx, c.client.Analyze, req, res); err != nil {
		return nil, err
	}
	if res.Report == nil {
		return nil, fmt.Errorf("fluency service returned no report")
	}
	return res.Report, nil
}

func (c *Client) GetReport(ctx context.Context, req *entity.GetReportRequest) (*entity.Report, error) {
	res := &entity.Report{}
	if err := c.call(ctx, c.client.GetReport, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ListReports(ctx context.Context, req *entity.ListReportsRequest) (*entity.ListReportsResponse, error) {
	res := &entity.ListReportsResponse{}
	if err := c.call(ctx, c.client.ListReports, req, res); err != nil {
		return nil, err
	}
	if res.Reports == nil {
		res.Reports = []*entity.Report{}
	}
	return res, nil
}

func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (c *Client) call(ctx context.Context, method rpc, req, res any) error {
	in, err := json.ToStruct(req)
	if err != nil {
		return err
	}

	out, err := method(ctx, in)
	if err != nil {
		return fromStatus(err)
	}

	return json.FromStruct(out, res)
}

func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	default:
		return fmt.Errorf("fluency service: %w", err)
	}
}
