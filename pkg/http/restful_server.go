package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
)

type RestfulServer struct {
	Server           *gin.Engine
	Engine           *alerting.Engine
	RateLimiterStore *alerting.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(hubID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(hubID)
	}
}

func (rs *RestfulServer) CheckHubLimiter(hubID string) bool {
	limiter := rs.GetLimiter(hubID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(hubID string, hubRate float64, hubBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(hubID, rate.Limit(hubRate), hubBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(RequestObserver())

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rs.Server.POST("/ingest", rs.PostIngest)

	hubs := rs.Server.Group("/hubs/:hub_id")
	{
		hubs.PUT("", rs.PutHub)
		hubs.GET("/alerts", rs.GetAlerts)
		hubs.GET("/readings", rs.GetReadings)
		hubs.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.POST("/alerts/:alert_id/resolve", rs.PostResolveAlert)

	owners := rs.Server.Group("/owners/:owner_id")
	{
		owners.GET("/preferences", rs.GetPreference)
		owners.PUT("/preferences", rs.PutPreference)
	}
}
