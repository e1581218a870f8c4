package notify

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// LogSender stands in for a channel with no configured gateway.
type LogSender struct {
	Channel models.Channel
}

func (s LogSender) Send(_ context.Context, n models.Notification) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotifier,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryGateway),
	)

	logger.Info("Would send notification",
		zap.String("channel", string(s.Channel)),
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
	)
	return nil
}
