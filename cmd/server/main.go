package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"gorm.io/gorm"
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/db"
	hubGrpc "liyu1981.xyz/hub-alert-service/pkg/grpc"
	hubHttp "liyu1981.xyz/hub-alert-service/pkg/http"
	hubMqtt "liyu1981.xyz/hub-alert-service/pkg/mqtt"
	"liyu1981.xyz/hub-alert-service/pkg/notify"
)

func main() {
	if err := godotenv.Load(); err != nil && !common.IsProduction() {
		log.Println("No .env file loaded, copy .env.example to .env first if in development")
	}

	settings, err := common.LoadSettings()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	var dialector gorm.Dialector
	switch settings.DBType {
	case "file":
		dialector = db.UseSqliteDialector()
	case "memory":
		dialector = db.UseMemorySqliteDialector()
	case "postgres":
		dialector = db.UsePostgresDialector(settings.PostgresDSN)
	}
	dbInstance := db.GetInstance(dialector)

	logger := common.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := alerting.NewEngine(db.NewStore(dbInstance), alerting.Thresholds{
		TemperatureMax: settings.TemperatureMax,
		HumidityMax:    settings.HumidityMax,
	})
	opts := alerting.ServiceOpts{
		Senders: notify.BuildSenders(settings),
		Locker:  alerting.NewSourceLocker(),
	}
	if len(settings.KafkaBrokers) > 0 {
		publisher, err := notify.NewKafkaPublisher(settings.KafkaBrokers, settings.KafkaAlertTopic)
		if err != nil {
			log.Fatal("Failed to create kafka publisher: ", err)
		}
		defer publisher.Close()
		opts.Publisher = publisher
		logger.Info("Publishing alert events to kafka",
			zap.Strings("brokers", settings.KafkaBrokers),
			zap.String("topic", settings.KafkaAlertTopic))
	}
	engine.WithServices(opts)

	limiterStore := alerting.NewRateLimiterStore(rate.Limit(settings.DefaultRate), settings.DefaultBurst)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := limiterStore.Prune(time.Hour); n > 0 {
					logger.Info("Pruned idle rate limiters", zap.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	defaultLimiter := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", settings.DefaultRate, settings.DefaultBurst))

	if settings.GrpcHostPort != "" {
		hubAlertServer := hubGrpc.HubAlertServer{
			Engine:           engine,
			RateLimiterStore: limiterStore,
		}
		s := grpc.NewServer(grpc.ChainUnaryInterceptor(
			hubGrpc.CreateObserverInterceptor(),
			hubAlertServer.CreateRateLimitInterceptor([]string{
				hubGrpc.MethodIngest,
				hubGrpc.MethodGetAlerts,
			}),
		))
		hubGrpc.RegisterHubAlertServiceServer(s, &hubAlertServer)
		logger.Info("gRPC server created with:", defaultLimiter)

		listener, err := net.Listen("tcp", settings.GrpcHostPort)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		go func() {
			logger.Info("start gRPC server on " + settings.GrpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
		defer s.GracefulStop()
	}

	if settings.MQTTBrokerURL != "" {
		sub := &hubMqtt.Subscriber{Engine: engine, RateLimiterStore: limiterStore}
		client := hubMqtt.BuildClient(ctx, settings, sub)
		go func() {
			if err := hubMqtt.ConnectWithBackoff(ctx, client, 2*time.Second, 30*time.Second); err != nil {
				logger.Warn("MQTT subscriber not started", zap.Error(err))
			}
		}()
		defer client.Disconnect(250)
	}

	if !common.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &hubHttp.RestfulServer{
		Server:           gin.Default(),
		Engine:           engine,
		RateLimiterStore: limiterStore,
	}
	rs.Setup()

	logger.Info("http server created with:", defaultLimiter)

	srv := &http.Server{
		Addr:    settings.HttpHostPort,
		Handler: rs.Server,
	}
	go func() {
		logger.Info("Starting HTTP server on: " + settings.HttpHostPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
