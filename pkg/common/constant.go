package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyHubDBType      string = "HUB_DB_TYPE"
	EnvKeyHubDbPath      string = "HUB_DB_PATH"
	EnvKeyHubPostgresDSN string = "HUB_POSTGRES_DSN"

	EnvKeyHubHttpHostPort string = "HUB_HTTP_HOST_PORT"
	EnvKeyHubGrpcHostPort string = "HUB_GRPC_HOST_PORT"

	EnvKeyHubDefaultRate  string = "HUB_DEFAULT_RATE"
	EnvKeyHubDefaultBurst string = "HUB_DEFAULT_BURST"

	EnvKeyHubTemperatureMax string = "HUB_TEMPERATURE_MAX"
	EnvKeyHubHumidityMax    string = "HUB_HUMIDITY_MAX"

	EnvKeyHubEmailAPIURL        string = "HUB_EMAIL_API_URL"
	EnvKeyHubSMSGatewayURL      string = "HUB_SMS_GATEWAY_URL"
	EnvKeyHubWhatsAppGatewayURL string = "HUB_WHATSAPP_GATEWAY_URL"
	EnvKeyHubNotifyTimeout      string = "HUB_NOTIFY_TIMEOUT"

	EnvKeyHubMQTTBrokerURL string = "HUB_MQTT_BROKER_URL"
	EnvKeyHubMQTTClientID  string = "HUB_MQTT_CLIENT_ID"
	EnvKeyHubMQTTTopic     string = "HUB_MQTT_TOPIC"
	EnvKeyHubMQTTQoS       string = "HUB_MQTT_QOS"

	EnvKeyHubKafkaBrokers    string = "HUB_KAFKA_BROKERS"
	EnvKeyHubKafkaAlertTopic string = "HUB_KAFKA_ALERT_TOPIC"

	LoggerNameAlertEngine    string = "alert_engine"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameGrpcServer     string = "grpc_server"
	LoggerNameMQTTSubscriber string = "mqtt_subscriber"
	LoggerNameNotifier       string = "notifier"

	LoggerFieldCategory          string = "category"
	LoggerCategoryReading        string = "reading"
	LoggerCategoryAlert          string = "alert"
	LoggerCategoryDispatch       string = "dispatch"
	LoggerCategoryPreference     string = "preference"
	LoggerCategoryHub            string = "hub"
	LoggerCategoryEmail          string = "email"
	LoggerCategoryGateway        string = "gateway"
	LoggerCategoryEventPublisher string = "event_publisher"
)
