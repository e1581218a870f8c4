package alerting

import (
	"fmt"
	"strings"
	"time"

	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type messageBuilder func(m models.Measurement, t Thresholds) string

var messageBuilders = map[Verdict]messageBuilder{
	VerdictTemperature: func(m models.Measurement, t Thresholds) string {
		return fmt.Sprintf(
			"ALERT: Temperature (%s°C) has exceeded the safe threshold of %s°C!",
			common.FormatNumber(m.Temperature), common.FormatNumber(t.TemperatureMax),
		)
	},
	VerdictHumidity: func(m models.Measurement, t Thresholds) string {
		return fmt.Sprintf(
			"ALERT: Humidity (%s%%) has exceeded the safe threshold of %s%%!",
			common.FormatNumber(m.Humidity), common.FormatNumber(t.HumidityMax),
		)
	},
	VerdictBoth: func(m models.Measurement, t Thresholds) string {
		return fmt.Sprintf(
			"ALERT: Both temperature (%s°C) and humidity (%s%%) have exceeded safe thresholds (%s°C, %s%%)!",
			common.FormatNumber(m.Temperature), common.FormatNumber(m.Humidity),
			common.FormatNumber(t.TemperatureMax), common.FormatNumber(t.HumidityMax),
		)
	},
}

// BuildMessage renders the alert text for a verdict. It reports false for VerdictNone.
func BuildMessage(v Verdict, m models.Measurement, t Thresholds) (string, bool) {
	build, ok := messageBuilders[v]
	if !ok {
		return "", false
	}
	return build(m, t), true
}

func notificationSubject(alert *models.Alert, hub *models.Hub) string {
	return fmt.Sprintf("Alert: %s threshold exceeded at %s", strings.ToUpper(string(alert.Kind)), hubName(hub))
}

func notificationBody(channel models.Channel, alert *models.Alert, hub *models.Hub, t Thresholds) string {
	if channel != models.ChannelEmail {
		return fmt.Sprintf("%s Hub: %s", alert.Message, hubName(hub))
	}

	var b strings.Builder
	b.WriteString(alert.Message)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Hub: %s\n", hubName(hub))
	fmt.Fprintf(&b, "Temperature: %s°C (threshold %s°C)\n",
		common.FormatNumber(alert.Temperature), common.FormatNumber(t.TemperatureMax))
	fmt.Fprintf(&b, "Humidity: %s%% (threshold %s%%)\n",
		common.FormatNumber(alert.Humidity), common.FormatNumber(t.HumidityMax))
	fmt.Fprintf(&b, "Time: %s\n", alert.CreatedAt.UTC().Format(time.RFC3339))
	return b.String()
}

func hubName(hub *models.Hub) string {
	if hub.Name != "" {
		return hub.Name
	}
	return hub.ID
}
