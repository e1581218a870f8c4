package alerting

import (
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type Verdict string

const (
	VerdictNone        Verdict = "none"
	VerdictTemperature Verdict = "temperature"
	VerdictHumidity    Verdict = "humidity"
	VerdictBoth        Verdict = "both"
)

// AlertKind maps a breach verdict to the kind stored on the alert. It reports
// false for VerdictNone.
func (v Verdict) AlertKind() (models.AlertKind, bool) {
	switch v {
	case VerdictTemperature:
		return models.AlertKindTemperature, true
	case VerdictHumidity:
		return models.AlertKindHumidity, true
	case VerdictBoth:
		return models.AlertKindBoth, true
	default:
		return "", false
	}
}

type Thresholds struct {
	TemperatureMax float64
	HumidityMax    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TemperatureMax: common.DefaultTemperatureMax,
		HumidityMax:    common.DefaultHumidityMax,
	}
}

// Evaluate compares with strict greater-than; a value equal to its threshold is safe.
func (t Thresholds) Evaluate(m models.Measurement) Verdict {
	hot := m.Temperature > t.TemperatureMax
	humid := m.Humidity > t.HumidityMax

	switch {
	case hot && humid:
		return VerdictBoth
	case hot:
		return VerdictTemperature
	case humid:
		return VerdictHumidity
	default:
		return VerdictNone
	}
}
