package grpc

import (
	"golang.org/x/time/rate"
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
)

type HubAlertServer struct {
	Engine           *alerting.Engine
	RateLimiterStore *alerting.RateLimiterStore
}

func (s *HubAlertServer) GetLimiter(hubID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(hubID)
	}
}

func (s *HubAlertServer) CheckHubLimiter(hubID string) bool {
	limiter := s.GetLimiter(hubID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}
