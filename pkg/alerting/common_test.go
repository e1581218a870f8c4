package alerting

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/hub-alert-service/pkg/alerting/mocks"
	"liyu1981.xyz/hub-alert-service/pkg/db"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func GetEngineWithMemorySqliteDialector(t *testing.T) (*Engine, *db.Store) {
	t.Helper()

	store := db.NewStore(db.GetInstance(db.UseMemorySqliteDialector()))
	engine := NewEngine(store, DefaultThresholds())
	return engine, store
}

func GetEngineWithMockStore(t *testing.T) (*gomock.Controller, *Engine, *mocks.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	engine := NewEngine(store, DefaultThresholds())
	return ctrl, engine, store
}

// seedHub registers a fresh hub and, when pref is non-nil, its owner's preferences.
func seedHub(t *testing.T, engine *Engine, pref *models.NotificationPreference) *models.Hub {
	t.Helper()
	ctx := context.Background()

	hub := &models.Hub{ID: uuid.NewString(), Name: "Greenhouse " + uuid.NewString()[:8], OwnerID: uuid.NewString()}
	require.NoError(t, engine.RegisterHub(ctx, hub))

	if pref != nil {
		require.NoError(t, engine.UpsertPreference(ctx, hub.OwnerID, pref))
	}
	return hub
}

func countAlerts(t *testing.T, engine *Engine, hubID string) int {
	t.Helper()
	alerts, err := engine.ListAlerts(context.Background(), models.AlertFilter{HubID: hubID})
	require.NoError(t, err)
	return len(alerts)
}

func countReadings(t *testing.T, engine *Engine, hubID string) int {
	t.Helper()
	readings, err := engine.ListReadings(context.Background(), models.MeasurementFilter{HubID: hubID})
	require.NoError(t, err)
	return len(readings)
}

// recordingSender collects every notification it is asked to deliver.
type recordingSender struct {
	mu   sync.Mutex
	sent []models.Notification
	fail bool
}

func (s *recordingSender) Send(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	if s.fail {
		return errors.New("gateway unavailable")
	}
	return nil
}

func (s *recordingSender) Sent() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.sent...)
}

type panickingSender struct{}

func (panickingSender) Send(context.Context, models.Notification) error {
	panic("provider sdk exploded")
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		if m, ok := l.(map[string]any); ok && m["msg"] == msg {
			return m
		}
	}
	return nil
}
