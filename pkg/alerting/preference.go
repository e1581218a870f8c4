package alerting

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func (e *Engine) UpsertPreference(ctx context.Context, ownerID string, input *models.NotificationPreference) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPreference),
	)

	pref := models.NotificationPreference{
		OwnerID:         ownerID,
		EmailEnabled:    input.EmailEnabled,
		SMSEnabled:      input.SMSEnabled,
		WhatsAppEnabled: input.WhatsAppEnabled,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
	}

	logger.Info("Received notification preference for owner", zap.Reflect("preference", pref))

	if err := e.Store.UpsertPreference(ctx, &pref); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}

	logger.Info("Upserted notification preference for owner", zap.Reflect("preference", pref))
	return nil
}

// GetPreference returns models.ErrNotFound when the owner never saved preferences.
func (e *Engine) GetPreference(ctx context.Context, ownerID string) (*models.NotificationPreference, error) {
	pref, err := e.Store.GetPreference(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, fmt.Errorf("preference for owner %s: %w", ownerID, models.ErrNotFound)
	}
	return pref, nil
}
