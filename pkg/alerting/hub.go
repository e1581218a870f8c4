package alerting

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func (e *Engine) RegisterHub(ctx context.Context, input *models.Hub) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryHub),
	)

	hub := models.Hub{
		ID:      input.ID,
		Name:    input.Name,
		OwnerID: input.OwnerID,
	}

	logger.Info("Received hub registration", zap.Reflect("hub", hub))

	if err := e.Store.UpsertHub(ctx, &hub); err != nil {
		return fmt.Errorf("upsert hub: %w", err)
	}

	logger.Info("Upserted hub", zap.Reflect("hub", hub))
	return nil
}

// GetHub returns models.ErrNotFound for an unknown hub.
func (e *Engine) GetHub(ctx context.Context, id string) (*models.Hub, error) {
	hub, err := e.Store.GetHub(ctx, id)
	if err != nil {
		return nil, err
	}
	if hub == nil {
		return nil, fmt.Errorf("hub %s: %w", id, models.ErrNotFound)
	}
	return hub, nil
}
