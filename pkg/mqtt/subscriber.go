package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/metrics"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// Subscriber feeds readings published on hubs/<hub_id>/readings into the engine.
type Subscriber struct {
	Engine           *alerting.Engine
	RateLimiterStore *alerting.RateLimiterStore
}

// HubIDFromTopic returns the segment following "hubs", or "" when the topic has none.
func HubIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "hubs" {
			return parts[i+1]
		}
	}
	return ""
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func (s *Subscriber) HandleMessage(ctx context.Context, msg paho.Message) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMQTTSubscriber,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	payload := msg.Payload()
	logger.Info("Received reading message",
		zap.String("topic", msg.Topic()),
		zap.Uint8("qos", msg.Qos()),
		zap.Int("bytes", len(payload)),
	)

	reject := func(err error) error {
		metrics.MQTTMessagesTotal.WithLabelValues("rejected").Inc()
		logger.Warn("Rejected reading message",
			zap.String("topic", msg.Topic()),
			zap.String("payload", truncate(payload, 512)),
			zap.Error(err),
		)
		return err
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return reject(fmt.Errorf("decode payload: %w", err))
	}
	if data == nil {
		data = map[string]any{}
	}
	if id, ok := data["source_id"].(string); !ok || strings.TrimSpace(id) == "" {
		data["source_id"] = HubIDFromTopic(msg.Topic())
	}

	req, err := alerting.ParseReading(data)
	if err != nil {
		return reject(err)
	}

	if !s.RateLimiterStore.Allow(req.SourceID) {
		return reject(fmt.Errorf("hub %s: %w", req.SourceID, ErrRateLimited))
	}

	result, err := s.Engine.HandleMeasurement(ctx, req.Measurement())
	if err != nil {
		metrics.MQTTMessagesTotal.WithLabelValues("failed").Inc()
		logger.Error("Failed to process reading message", zap.String("hub_id", req.SourceID), zap.Error(err))
		return err
	}

	metrics.MQTTMessagesTotal.WithLabelValues("accepted").Inc()
	logger.Info("Processed reading message",
		zap.String("hub_id", req.SourceID),
		zap.Bool("alert_triggered", result.AlertTriggered),
		zap.Bool("alert_created", result.AlertCreated()),
	)
	return nil
}

// MessageHandler adapts HandleMessage to paho's callback. Errors are already logged.
func (s *Subscriber) MessageHandler(ctx context.Context) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		_ = s.HandleMessage(ctx, msg)
	}
}
