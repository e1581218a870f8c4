package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// Store is the gorm backed data store used by the alert engine.
type Store struct {
	db *DB
}

func NewStore(d *DB) *Store {
	return &Store{db: d}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.Conn.WithContext(ctx)
}

func (s *Store) InsertMeasurement(ctx context.Context, m *models.Measurement) error {
	return s.conn(ctx).Create(m).Error
}

func (s *Store) ListMeasurements(ctx context.Context, filter models.MeasurementFilter) ([]models.Measurement, error) {
	q := s.conn(ctx).Model(&models.Measurement{})
	if filter.HubID != "" {
		q = q.Where("hub_id = ?", filter.HubID)
	}
	if filter.Since != nil {
		q = q.Where("recorded_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("recorded_at <= ?", *filter.Until)
	}
	q = paginate(q.Order("recorded_at desc").Order("id desc"), filter.Limit, filter.Offset)

	measurements := []models.Measurement{}
	err := q.Find(&measurements).Error
	return measurements, err
}

// FindLatestUnresolvedAlert returns nil without error when the hub has no open alert.
func (s *Store) FindLatestUnresolvedAlert(ctx context.Context, hubID string) (*models.Alert, error) {
	var alert models.Alert
	res := s.conn(ctx).
		Where("hub_id = ? AND resolved = ?", hubID, false).
		Order("created_at desc").
		Order("id desc").
		Limit(1).
		Find(&alert)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &alert, nil
}

// InsertAlert returns an error wrapping models.ErrOpenAlertExists when the
// one-open-alert-per-hub index rejects the row.
func (s *Store) InsertAlert(ctx context.Context, a *models.Alert) error {
	err := s.conn(ctx).Create(a).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: hub %s", models.ErrOpenAlertExists, a.HubID)
	}
	return err
}

func (s *Store) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	q := s.conn(ctx).Model(&models.Alert{})
	if filter.HubID != "" {
		q = q.Where("hub_id = ?", filter.HubID)
	}
	if filter.Kind != nil {
		q = q.Where("kind = ?", *filter.Kind)
	}
	if filter.Resolved != nil {
		q = q.Where("resolved = ?", *filter.Resolved)
	}
	q = paginate(q.Order("created_at desc").Order("id desc"), filter.Limit, filter.Offset)

	alerts := []models.Alert{}
	err := q.Find(&alerts).Error
	return alerts, err
}

// ResolveAlert closes an open alert. Resolving an already resolved alert is a no-op.
func (s *Store) ResolveAlert(ctx context.Context, id uint) (*models.Alert, error) {
	now := time.Now()
	err := s.conn(ctx).
		Model(&models.Alert{}).
		Where("id = ? AND resolved = ?", id, false).
		Updates(map[string]any{"resolved": true, "resolved_at": now}).Error
	if err != nil {
		return nil, err
	}

	var alert models.Alert
	res := s.conn(ctx).Limit(1).Find(&alert, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("alert %d: %w", id, models.ErrNotFound)
	}
	return &alert, nil
}

func (s *Store) UpsertHub(ctx context.Context, hub *models.Hub) error {
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "owner_id"}),
	}).Create(hub).Error
}

// GetHub returns nil without error when the hub is unknown.
func (s *Store) GetHub(ctx context.Context, id string) (*models.Hub, error) {
	var hub models.Hub
	res := s.conn(ctx).Limit(1).Find(&hub, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &hub, nil
}

func (s *Store) UpsertPreference(ctx context.Context, pref *models.NotificationPreference) error {
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		UpdateAll: true,
	}).Create(pref).Error
}

// GetPreference returns nil without error when the owner never saved preferences.
func (s *Store) GetPreference(ctx context.Context, ownerID string) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	res := s.conn(ctx).Limit(1).Find(&pref, "owner_id = ?", ownerID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &pref, nil
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
