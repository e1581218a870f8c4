package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service exchanges google.protobuf.Struct messages whose fields mirror
// the REST JSON bodies, so no generated stubs are needed.
const ServiceName = "hubalert.v1.HubAlertService"

const (
	MethodIngest       = "/" + ServiceName + "/Ingest"
	MethodGetAlerts    = "/" + ServiceName + "/GetAlerts"
	MethodResolveAlert = "/" + ServiceName + "/ResolveAlert"
	MethodPostLimiter  = "/" + ServiceName + "/PostLimiter"
)

type HubAlertServiceServer interface {
	Ingest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv HubAlertServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HubAlertServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HubAlertServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var HubAlertServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HubAlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ingest",
			Handler: unaryHandler(MethodIngest, func(srv HubAlertServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.Ingest(ctx, in)
			}),
		},
		{
			MethodName: "GetAlerts",
			Handler: unaryHandler(MethodGetAlerts, func(srv HubAlertServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetAlerts(ctx, in)
			}),
		},
		{
			MethodName: "ResolveAlert",
			Handler: unaryHandler(MethodResolveAlert, func(srv HubAlertServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ResolveAlert(ctx, in)
			}),
		},
		{
			MethodName: "PostLimiter",
			Handler: unaryHandler(MethodPostLimiter, func(srv HubAlertServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.PostLimiter(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hubalert/v1/hub_alert.proto",
}

func RegisterHubAlertServiceServer(s grpc.ServiceRegistrar, srv HubAlertServiceServer) {
	s.RegisterService(&HubAlertServiceDesc, srv)
}

type HubAlertServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHubAlertServiceClient(cc grpc.ClientConnInterface) *HubAlertServiceClient {
	return &HubAlertServiceClient{cc: cc}
}

func (c *HubAlertServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HubAlertServiceClient) Ingest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodIngest, in, opts...)
}

func (c *HubAlertServiceClient) GetAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAlerts, in, opts...)
}

func (c *HubAlertServiceClient) ResolveAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResolveAlert, in, opts...)
}

func (c *HubAlertServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostLimiter, in, opts...)
}
