package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AlertEvent is the record written to the alert topic for every opened alert.
type AlertEvent struct {
	Type        string           `json:"type"`
	AlertID     uint             `json:"alert_id"`
	HubID       string           `json:"hub_id"`
	Kind        models.AlertKind `json:"kind"`
	Message     string           `json:"message"`
	Temperature float64          `json:"temperature"`
	Humidity    float64          `json:"humidity"`
	CreatedAt   time.Time        `json:"created_at"`
}

// KafkaPublisher writes alert events keyed by hub id, so events of one hub stay ordered.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: topic}, nil
}

func (p *KafkaPublisher) PublishAlert(ctx context.Context, alert *models.Alert) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotifier,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEventPublisher),
	)

	data, err := json.Marshal(AlertEvent{
		Type:        "alert.opened",
		AlertID:     alert.ID,
		HubID:       alert.HubID,
		Kind:        alert.Kind,
		Message:     alert.Message,
		Temperature: alert.Temperature,
		Humidity:    alert.Humidity,
		CreatedAt:   alert.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(alert.HubID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "hub_id", Value: []byte(alert.HubID)},
			{Key: "alert_id", Value: []byte(strconv.FormatUint(uint64(alert.ID), 10))},
			{Key: "kind", Value: []byte(alert.Kind)},
		},
		Time: alert.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write alert event to %s: %w", p.topic, err)
	}

	logger.Info("Alert event published", zap.String("topic", p.topic), zap.Uint("alert_id", alert.ID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
