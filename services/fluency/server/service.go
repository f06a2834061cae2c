package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Messages are
// google.protobuf.Struct values carrying the JSON form of the entity types.
const ServiceName = "eduvox.fluency.v1.FluencyService"

const (
	AnalyzeMethod     = "/" + ServiceName + "/Analyze"
	GetReportMethod   = "/" + ServiceName + "/GetReport"
	ListReportsMethod = "/" + ServiceName + "/ListReports"
)

type FluencyServiceServer interface {
	Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListReports(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FluencyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler: unaryHandler(AnalyzeMethod, func(srv FluencyServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.Analyze(ctx, in)
			}),
		},
		{
			MethodName: "GetReport",
			Handler: unaryHandler(GetReportMethod, func(srv FluencyServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetReport(ctx, in)
			}),
		},
		{
			MethodName: "ListReports",
			Handler: unaryHandler(ListReportsMethod, func(srv FluencyServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListReports(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eduvox/fluency/v1/fluency.proto",
}

func RegisterFluencyServiceServer(s grpc.ServiceRegistrar, srv FluencyServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryCall func(srv FluencyServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FluencyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FluencyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type FluencyServiceClient interface {
	Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type fluencyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFluencyServiceClient(cc grpc.ClientConnInterface) FluencyServiceClient {
	return &fluencyServiceClient{cc: cc}
}

func (c *fluencyServiceClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AnalyzeMethod, in, opts...)
}

func (c *fluencyServiceClient) GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetReportMethod, in, opts...)
}

func (c *fluencyServiceClient) ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListReportsMethod, in, opts...)
}

func (c *fluencyServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
