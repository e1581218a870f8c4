package alerting

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func (e *Engine) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	return e.Store.ListAlerts(ctx, filter)
}

// ResolveAlert closes an alert so the next breach on its hub opens a new one.
// Resolving twice is not an error. Unknown ids yield models.ErrNotFound.
func (e *Engine) ResolveAlert(ctx context.Context, id uint) (*models.Alert, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	alert, err := e.Store.ResolveAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info("Alert resolved", zap.Reflect("alert", alert))
	return alert, nil
}

func (e *Engine) ListReadings(ctx context.Context, filter models.MeasurementFilter) ([]models.Measurement, error) {
	return e.Store.ListMeasurements(ctx, filter)
}
