package models

import "time"

type AlertKind string

const (
	AlertKindTemperature AlertKind = "temperature"
	AlertKindHumidity    AlertKind = "humidity"
	AlertKindBoth        AlertKind = "both"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Hub is a monitored unit producing measurements, owned by one user.
type Hub struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	Measurements []Measurement `gorm:"foreignKey:HubID;references:ID" json:"-"`
	Alerts       []Alert       `gorm:"foreignKey:HubID;references:ID" json:"-"`
}

type Measurement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HubID       string    `gorm:"index" json:"hub_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	RecordedAt  time.Time `gorm:"index" json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Alert is open while Resolved is false. The partial unique index keeps at most
// one open alert per hub.
type Alert struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	HubID       string     `gorm:"index:idx_alerts_hub_id;index:idx_alerts_open_hub,unique,where:resolved = false" json:"hub_id"`
	Kind        AlertKind  `gorm:"type:varchar(20);check:kind IN ('temperature','humidity','both')" json:"kind"`
	Message     string     `json:"message"`
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidity"`
	Resolved    bool       `gorm:"not null" json:"resolved"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type NotificationPreference struct {
	OwnerID         string    `gorm:"primaryKey" json:"owner_id"`
	EmailEnabled    bool      `json:"email_enabled"`
	SMSEnabled      bool      `json:"sms_enabled"`
	WhatsAppEnabled bool      `json:"whatsapp_enabled"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Notification is a rendered payload for a single channel.
type Notification struct {
	Channel   Channel `json:"channel"`
	Recipient string  `json:"recipient"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
}

type AlertFilter struct {
	HubID    string
	Kind     *AlertKind
	Resolved *bool
	Limit    int
	Offset   int
}

type MeasurementFilter struct {
	HubID  string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}
