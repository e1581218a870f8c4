package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type gatewayRequest struct {
	Channel     models.Channel `json:"channel"`
	PhoneNumber string         `json:"phone_number"`
	Message     string         `json:"message"`
}

// GatewaySender delivers phone based channels (sms, whatsapp) through a webhook gateway.
type GatewaySender struct {
	poster
	channel models.Channel
}

func NewGatewaySender(channel models.Channel, url string, timeout time.Duration) *GatewaySender {
	return &GatewaySender{poster: newPoster(url, timeout), channel: channel}
}

func (s *GatewaySender) Send(ctx context.Context, n models.Notification) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotifier,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryGateway),
	)

	err := s.post(ctx, gatewayRequest{
		Channel:     s.channel,
		PhoneNumber: n.Recipient,
		Message:     n.Body,
	})
	if err != nil {
		return err
	}

	logger.Info("Gateway notification accepted",
		zap.String("channel", string(s.channel)),
		zap.String("phone_number", n.Recipient),
	)
	return nil
}
