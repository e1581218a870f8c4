package alerting

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/metrics"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// PlanNotifications lists one notification per enabled channel that has a
// usable destination. Email needs an address, sms and whatsapp need a phone number.
func PlanNotifications(
	alert *models.Alert,
	hub *models.Hub,
	pref *models.NotificationPreference,
	t Thresholds,
) []models.Notification {
	if alert == nil || hub == nil || pref == nil {
		return nil
	}

	email := strings.TrimSpace(pref.Email)
	phone := strings.TrimSpace(pref.PhoneNumber)

	candidates := []struct {
		channel   models.Channel
		enabled   bool
		recipient string
	}{
		{models.ChannelEmail, pref.EmailEnabled, email},
		{models.ChannelSMS, pref.SMSEnabled, phone},
		{models.ChannelWhatsApp, pref.WhatsAppEnabled, phone},
	}

	var notifications []models.Notification
	for _, c := range candidates {
		if !c.enabled || c.recipient == "" {
			continue
		}
		notifications = append(notifications, models.Notification{
			Channel:   c.channel,
			Recipient: c.recipient,
			Subject:   notificationSubject(alert, hub),
			Body:      notificationBody(c.channel, alert, hub, t),
		})
	}
	return notifications
}

// dispatch never fails the caller: lookup problems skip the fan-out and
// channel errors are only logged.
func (e *Engine) dispatch(ctx context.Context, alert *models.Alert) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
	)

	hub, err := e.Store.GetHub(ctx, alert.HubID)
	if err != nil {
		logger.Error("Failed to look up hub, skip notifications", zap.String("hub_id", alert.HubID), zap.Error(err))
		return
	}
	if hub == nil || hub.OwnerID == "" {
		logger.Warn("Hub has no owner, skip notifications", zap.String("hub_id", alert.HubID))
		return
	}

	pref, err := e.Store.GetPreference(ctx, hub.OwnerID)
	if err != nil {
		logger.Error("Failed to look up notification preference, skip notifications",
			zap.String("owner_id", hub.OwnerID), zap.Error(err))
		return
	}
	if pref == nil {
		logger.Info("Owner has no notification preference, skip notifications", zap.String("owner_id", hub.OwnerID))
		return
	}

	notifications := PlanNotifications(alert, hub, pref, e.Thresholds)
	logger.Info("Dispatching notifications",
		zap.Uint("alert_id", alert.ID),
		zap.Int("count", len(notifications)),
	)

	e.fanOut(ctx, notifications)
}

// fanOut sends every notification concurrently and waits for all of them.
func (e *Engine) fanOut(ctx context.Context, notifications []models.Notification) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
	)

	wg := sync.WaitGroup{}
	for _, n := range notifications {
		sender, exists := e.Senders[n.Channel]
		if !exists || sender == nil {
			metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "skipped").Inc()
			logger.Warn("No sender configured for channel", zap.String("channel", string(n.Channel)))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := safeSend(ctx, sender, n); err != nil {
				metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "failed").Inc()
				logger.Error("Failed to send notification",
					zap.String("channel", string(n.Channel)),
					zap.String("recipient", n.Recipient),
					zap.Error(err),
				)
				return
			}

			metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "sent").Inc()
			logger.Info("Notification sent",
				zap.String("channel", string(n.Channel)),
				zap.String("recipient", n.Recipient),
			)
		}()
	}
	wg.Wait()
}

func safeSend(ctx context.Context, sender Sender, n models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panicked: %v", r)
		}
	}()
	return sender.Send(ctx, n)
}
