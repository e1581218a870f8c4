package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/metrics"
)

// hubIDOf reads the hub a request targets. Ingest carries it as source_id.
func hubIDOf(req any) string {
	s, ok := req.(*structpb.Struct)
	if !ok {
		return ""
	}
	for _, key := range []string{"source_id", "hub_id"} {
		if v, found := s.GetFields()[key]; found {
			if id := v.GetStringValue(); id != "" {
				return id
			}
		}
	}
	return ""
}

func (s *HubAlertServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if hubID := hubIDOf(req); hubID != "" && !s.CheckHubLimiter(hubID) {
				return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
			}
		}

		return handler(ctx, req)
	}
}

func CreateObserverInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		metrics.GrpcRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()

		logger := common.GetLoggerWith(common.LoggerNameGrpcServer)
		logger.Info("Request completed",
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
