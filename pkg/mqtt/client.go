package mqtt

import (
	"context"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
)

func NewClientOptions(settings *common.Settings, handler paho.MessageHandler) *paho.ClientOptions {
	logger := common.GetLoggerWith(common.LoggerNameMQTTSubscriber)

	opts := paho.NewClientOptions().
		AddBroker(settings.MQTTBrokerURL).
		SetClientID(settings.MQTTClientID).
		SetOrderMatters(false).
		SetCleanSession(false).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetAutoReconnect(true)

	// resubscribe on every (re)connect
	opts.OnConnect = func(c paho.Client) {
		logger.Info("Connected to MQTT broker", zap.String("broker", settings.MQTTBrokerURL))
		if token := c.Subscribe(settings.MQTTTopic, settings.MQTTQoS, handler); token.Wait() && token.Error() != nil {
			logger.Error("Failed to subscribe", zap.String("topic", settings.MQTTTopic), zap.Error(token.Error()))
		} else {
			logger.Info("Subscribed to topic", zap.String("topic", settings.MQTTTopic), zap.Uint8("qos", settings.MQTTQoS))
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	}

	return opts
}

func BuildClient(ctx context.Context, settings *common.Settings, sub *Subscriber) paho.Client {
	return paho.NewClient(NewClientOptions(settings, sub.MessageHandler(ctx)))
}

// ConnectWithBackoff retries the first connection, doubling the wait up to max.
// Later drops are handled by paho's auto reconnect.
func ConnectWithBackoff(ctx context.Context, client paho.Client, start, max time.Duration) error {
	logger := common.GetLoggerWith(common.LoggerNameMQTTSubscriber)

	backoff := start
	for {
		token := client.Connect()
		if token.Wait() && token.Error() == nil {
			return nil
		}
		logger.Warn("MQTT connect failed, retrying", zap.Error(token.Error()), zap.Duration("backoff", backoff))

		select {
		case <-time.After(backoff):
			if backoff < max {
				backoff *= 2
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
