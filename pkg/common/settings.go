package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTemperatureMax float64       = 24.0
	DefaultHumidityMax    float64       = 65.0
	DefaultRate           float64       = 10
	DefaultBurst          int           = 20
	DefaultNotifyTimeout  time.Duration = 10 * time.Second
	DefaultHttpHostPort   string        = ":1080"
	DefaultMQTTTopic      string        = "hubs/+/readings"
	DefaultMQTTClientID   string        = "hub-alert-service"
	DefaultKafkaTopic     string        = "hub-alerts"
)

// Settings is the process configuration read from the environment (and .env in development).
type Settings struct {
	DBType      string
	PostgresDSN string

	HttpHostPort string
	GrpcHostPort string

	DefaultRate  float64
	DefaultBurst int

	TemperatureMax float64
	HumidityMax    float64

	EmailAPIURL        string
	SMSGatewayURL      string
	WhatsAppGatewayURL string
	NotifyTimeout      time.Duration

	MQTTBrokerURL string
	MQTTClientID  string
	MQTTTopic     string
	MQTTQoS       byte

	KafkaBrokers    []string
	KafkaAlertTopic string
}

func LoadSettings() (*Settings, error) {
	s := &Settings{
		DBType:             envString(EnvKeyHubDBType, "file"),
		PostgresDSN:        envString(EnvKeyHubPostgresDSN, ""),
		HttpHostPort:       envString(EnvKeyHubHttpHostPort, DefaultHttpHostPort),
		GrpcHostPort:       envString(EnvKeyHubGrpcHostPort, ""),
		EmailAPIURL:        envString(EnvKeyHubEmailAPIURL, ""),
		SMSGatewayURL:      envString(EnvKeyHubSMSGatewayURL, ""),
		WhatsAppGatewayURL: envString(EnvKeyHubWhatsAppGatewayURL, ""),
		MQTTBrokerURL:      envString(EnvKeyHubMQTTBrokerURL, ""),
		MQTTClientID:       envString(EnvKeyHubMQTTClientID, DefaultMQTTClientID),
		MQTTTopic:          envString(EnvKeyHubMQTTTopic, DefaultMQTTTopic),
		KafkaAlertTopic:    envString(EnvKeyHubKafkaAlertTopic, DefaultKafkaTopic),
	}

	var err error

	if s.DefaultRate, err = envFloat(EnvKeyHubDefaultRate, DefaultRate); err != nil {
		return nil, err
	}

	var burst int64
	if burst, err = envInt(EnvKeyHubDefaultBurst, int64(DefaultBurst)); err != nil {
		return nil, err
	}
	s.DefaultBurst = int(burst)

	if s.TemperatureMax, err = envFloat(EnvKeyHubTemperatureMax, DefaultTemperatureMax); err != nil {
		return nil, err
	}

	if s.HumidityMax, err = envFloat(EnvKeyHubHumidityMax, DefaultHumidityMax); err != nil {
		return nil, err
	}

	if raw := envString(EnvKeyHubNotifyTimeout, ""); raw != "" {
		if s.NotifyTimeout, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid %s %q, should be a duration like 5s: %w", EnvKeyHubNotifyTimeout, raw, err)
		}
	} else {
		s.NotifyTimeout = DefaultNotifyTimeout
	}

	var qos int64
	if qos, err = envInt(EnvKeyHubMQTTQoS, 1); err != nil {
		return nil, err
	}
	if qos < 0 || qos > 2 {
		return nil, fmt.Errorf("invalid %s %d, should be 0, 1 or 2", EnvKeyHubMQTTQoS, qos)
	}
	s.MQTTQoS = byte(qos)

	if raw := envString(EnvKeyHubKafkaBrokers, ""); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				s.KafkaBrokers = append(s.KafkaBrokers, broker)
			}
		}
	}

	switch s.DBType {
	case "file", "memory":
	case "postgres":
		if s.PostgresDSN == "" {
			return nil, fmt.Errorf("%s is required when %s=postgres", EnvKeyHubPostgresDSN, EnvKeyHubDBType)
		}
	default:
		return nil, fmt.Errorf("unknown %s: %s", EnvKeyHubDBType, s.DBType)
	}

	return s, nil
}

func envString(key, fallback string) string {
	if v, found := os.LookupEnv(key); found && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, should be a float64 value: %w", key, raw, err)
	}
	return v, nil
}

func envInt(key string, fallback int64) (int64, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, should be an int value: %w", key, raw, err)
	}
	return v, nil
}
