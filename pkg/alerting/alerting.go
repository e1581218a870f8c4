package alerting

import (
	"context"

	"liyu1981.xyz/hub-alert-service/pkg/models"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Store,Sender,AlertPublisher

// Store is the persistence boundary of the engine. Lookups return nil without
// error when nothing matches.
type Store interface {
	InsertMeasurement(ctx context.Context, m *models.Measurement) error
	ListMeasurements(ctx context.Context, filter models.MeasurementFilter) ([]models.Measurement, error)
	FindLatestUnresolvedAlert(ctx context.Context, hubID string) (*models.Alert, error)
	InsertAlert(ctx context.Context, a *models.Alert) error
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, id uint) (*models.Alert, error)
	UpsertHub(ctx context.Context, hub *models.Hub) error
	GetHub(ctx context.Context, id string) (*models.Hub, error)
	UpsertPreference(ctx context.Context, pref *models.NotificationPreference) error
	GetPreference(ctx context.Context, ownerID string) (*models.NotificationPreference, error)
}

// Sender delivers one rendered notification over one channel.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// AlertPublisher emits an event for every newly opened alert.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
}

type Engine struct {
	Store      Store
	Thresholds Thresholds
	Senders    map[models.Channel]Sender
	Publisher  AlertPublisher
	Locker     *SourceLocker
}

type ServiceOpts struct {
	Senders   map[models.Channel]Sender
	Publisher AlertPublisher
	Locker    *SourceLocker
}

func NewEngine(store Store, thresholds Thresholds) *Engine {
	return &Engine{
		Store:      store,
		Thresholds: thresholds,
		Senders:    map[models.Channel]Sender{},
	}
}

func (e *Engine) WithServices(opts ServiceOpts) *Engine {
	for channel, sender := range opts.Senders {
		e.Senders[channel] = sender
	}
	if opts.Publisher != nil {
		e.Publisher = opts.Publisher
	}
	if opts.Locker != nil {
		e.Locker = opts.Locker
	}
	return e
}

// Result reports what happened to one measurement.
type Result struct {
	Reading models.Measurement
	Verdict Verdict
	// AlertTriggered is true whenever a threshold was breached, even if an
	// already open alert absorbed it.
	AlertTriggered bool
	// Alert is set only when this call opened a new alert.
	Alert *models.Alert
}

func (r *Result) AlertCreated() bool {
	return r.Alert != nil
}
