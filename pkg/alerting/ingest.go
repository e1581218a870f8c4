package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/metrics"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// HandleMeasurement records a reading and opens an alert when it breaches a
// threshold and the hub has no open alert yet. A newly opened alert is
// published and dispatched to the hub owner before returning.
//
// The returned Result is non-nil whenever the reading was persisted, including
// when alert handling failed afterwards.
func (e *Engine) HandleMeasurement(ctx context.Context, m models.Measurement) (*Result, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}

	logger.Info("Received reading for hub", zap.Reflect("reading", m))

	if err := e.Store.InsertMeasurement(ctx, &m); err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}

	verdict := e.Thresholds.Evaluate(m)
	metrics.ReadingsTotal.WithLabelValues(string(verdict)).Inc()

	logger.Info("Saved reading for hub", zap.Reflect("reading", m), zap.String("verdict", string(verdict)))

	result := &Result{
		Reading:        m,
		Verdict:        verdict,
		AlertTriggered: verdict != VerdictNone,
	}
	if verdict == VerdictNone {
		return result, nil
	}

	alert, err := e.openAlert(ctx, m, verdict)
	if err != nil {
		return result, err
	}
	if alert == nil {
		return result, nil
	}
	result.Alert = alert

	// The alert is committed; a client disconnect must not cancel its event
	// or notifications. Senders bound each call with their own timeout.
	detached := context.WithoutCancel(ctx)
	e.publishAlert(detached, alert)
	e.dispatch(detached, alert)

	return result, nil
}

// openAlert returns nil without error when an open alert already covers the hub.
func (e *Engine) openAlert(ctx context.Context, m models.Measurement, verdict Verdict) (*models.Alert, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	if e.Locker != nil {
		unlock := e.Locker.Lock(m.HubID)
		defer unlock()
	}

	existing, err := e.Store.FindLatestUnresolvedAlert(ctx, m.HubID)
	if err != nil {
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	if existing != nil {
		metrics.AlertsDeduplicatedTotal.Inc()
		logger.Info("Open alert exists for hub, skip creating",
			zap.String("hub_id", m.HubID), zap.Uint("alert_id", existing.ID))
		return nil, nil
	}

	kind, _ := verdict.AlertKind()
	message, _ := BuildMessage(verdict, m, e.Thresholds)
	alert := &models.Alert{
		HubID:       m.HubID,
		Kind:        kind,
		Message:     message,
		Temperature: m.Temperature,
		Humidity:    m.Humidity,
		Resolved:    false,
	}

	logger.Info("Alert found", zap.Reflect("alert", alert))

	if err := e.Store.InsertAlert(ctx, alert); err != nil {
		if errors.Is(err, models.ErrOpenAlertExists) {
			metrics.AlertsDeduplicatedTotal.Inc()
			logger.Info("Open alert inserted concurrently for hub, skip creating", zap.String("hub_id", m.HubID))
			return nil, nil
		}
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	metrics.AlertsCreatedTotal.WithLabelValues(string(kind)).Inc()
	logger.Info("Alert saved", zap.Reflect("alert", alert))

	return alert, nil
}

func (e *Engine) publishAlert(ctx context.Context, alert *models.Alert) {
	if e.Publisher == nil {
		return
	}

	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEventPublisher),
	)

	if err := e.Publisher.PublishAlert(ctx, alert); err != nil {
		metrics.AlertEventsPublishedTotal.WithLabelValues("failed").Inc()
		logger.Error("Failed to publish alert event", zap.Uint("alert_id", alert.ID), zap.Error(err))
		return
	}
	metrics.AlertEventsPublishedTotal.WithLabelValues("published").Inc()
}
