package alerting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func TestBuildMessage(t *testing.T) {
	thresholds := DefaultThresholds()

	msg, ok := BuildMessage(VerdictTemperature, reading(25.0, 50.0), thresholds)
	require.True(t, ok)
	assert.Equal(t, "ALERT: Temperature (25°C) has exceeded the safe threshold of 24°C!", msg)

	msg, ok = BuildMessage(VerdictHumidity, reading(20.0, 70.5), thresholds)
	require.True(t, ok)
	assert.Equal(t, "ALERT: Humidity (70.5%) has exceeded the safe threshold of 65%!", msg)

	msg, ok = BuildMessage(VerdictBoth, reading(25.0, 70.0), thresholds)
	require.True(t, ok)
	assert.Equal(t, "ALERT: Both temperature (25°C) and humidity (70%) have exceeded safe thresholds (24°C, 65%)!", msg)

	msg, ok = BuildMessage(VerdictNone, reading(20.0, 50.0), thresholds)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestPlanNotifications(t *testing.T) {
	thresholds := DefaultThresholds()
	hub := &models.Hub{ID: "hub-1", Name: "North Greenhouse", OwnerID: "owner-1"}
	alert := &models.Alert{
		ID:          7,
		HubID:       hub.ID,
		Kind:        models.AlertKindTemperature,
		Message:     "ALERT: Temperature (25°C) has exceeded the safe threshold of 24°C!",
		Temperature: 25,
		Humidity:    50,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	cases := map[string]struct {
		pref     *models.NotificationPreference
		channels []models.Channel
	}{
		"email only": {
			pref:     &models.NotificationPreference{EmailEnabled: true, Email: "owner@example.com"},
			channels: []models.Channel{models.ChannelEmail},
		},
		"email enabled without address": {
			pref:     &models.NotificationPreference{EmailEnabled: true, Email: "  "},
			channels: nil,
		},
		"sms and whatsapp without phone": {
			pref:     &models.NotificationPreference{SMSEnabled: true, WhatsAppEnabled: true},
			channels: nil,
		},
		"address present but disabled": {
			pref:     &models.NotificationPreference{Email: "owner@example.com", PhoneNumber: "+15550100"},
			channels: nil,
		},
		"all channels": {
			pref: &models.NotificationPreference{
				EmailEnabled: true, SMSEnabled: true, WhatsAppEnabled: true,
				Email: "owner@example.com", PhoneNumber: "+15550100",
			},
			channels: []models.Channel{models.ChannelEmail, models.ChannelSMS, models.ChannelWhatsApp},
		},
		"no preference": {
			pref:     nil,
			channels: nil,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			notifications := PlanNotifications(alert, hub, tc.pref, thresholds)

			var channels []models.Channel
			for _, n := range notifications {
				channels = append(channels, n.Channel)
			}
			assert.Equal(t, tc.channels, channels)
		})
	}
}

func TestPlanNotificationsRendering(t *testing.T) {
	hub := &models.Hub{ID: "hub-1", Name: "North Greenhouse", OwnerID: "owner-1"}
	alert := &models.Alert{
		HubID:       hub.ID,
		Kind:        models.AlertKindBoth,
		Message:     "ALERT: Both temperature (25°C) and humidity (70%) have exceeded safe thresholds (24°C, 65%)!",
		Temperature: 25,
		Humidity:    70,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	pref := &models.NotificationPreference{
		EmailEnabled: true, WhatsAppEnabled: true,
		Email: "owner@example.com", PhoneNumber: "+15550100",
	}

	notifications := PlanNotifications(alert, hub, pref, DefaultThresholds())
	require.Len(t, notifications, 2)

	email := notifications[0]
	assert.Equal(t, "owner@example.com", email.Recipient)
	assert.Equal(t, "Alert: BOTH threshold exceeded at North Greenhouse", email.Subject)
	assert.Contains(t, email.Body, alert.Message)
	assert.Contains(t, email.Body, "Temperature: 25°C (threshold 24°C)")
	assert.Contains(t, email.Body, "Humidity: 70% (threshold 65%)")
	assert.Contains(t, email.Body, "2024-05-01T10:00:00Z")

	whatsapp := notifications[1]
	assert.Equal(t, models.ChannelWhatsApp, whatsapp.Channel)
	assert.Equal(t, "+15550100", whatsapp.Recipient)
	assert.Equal(t, alert.Message+" Hub: North Greenhouse", whatsapp.Body)
}
