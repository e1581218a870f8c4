package notify

import (
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// BuildSenders returns one sender per channel. Channels without a configured
// endpoint fall back to LogSender.
func BuildSenders(s *common.Settings) map[models.Channel]alerting.Sender {
	senders := map[models.Channel]alerting.Sender{
		models.ChannelEmail:    LogSender{Channel: models.ChannelEmail},
		models.ChannelSMS:      LogSender{Channel: models.ChannelSMS},
		models.ChannelWhatsApp: LogSender{Channel: models.ChannelWhatsApp},
	}

	if s.EmailAPIURL != "" {
		senders[models.ChannelEmail] = NewEmailSender(s.EmailAPIURL, s.NotifyTimeout)
	}
	if s.SMSGatewayURL != "" {
		senders[models.ChannelSMS] = NewGatewaySender(models.ChannelSMS, s.SMSGatewayURL, s.NotifyTimeout)
	}
	if s.WhatsAppGatewayURL != "" {
		senders[models.ChannelWhatsApp] = NewGatewaySender(models.ChannelWhatsApp, s.WhatsAppGatewayURL, s.NotifyTimeout)
	}

	return senders
}
