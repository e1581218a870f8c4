package db

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
	_ "liyu1981.xyz/hub-alert-service/pkg/testing"

	"gorm.io/gorm"
)

// schemaObjectExists looks up a table or index in the sqlite catalog.
func schemaObjectExists(db *gorm.DB, kind, name string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type=? AND name=?`, kind, name,
	).Scan(&count).Error
	return err == nil && count > 0
}

func TestMigrateMemorySqlite(t *testing.T) {
	common.SetTestLoggerNop()

	instance := GetInstance(UseMemorySqliteDialector())
	if instance == nil {
		t.Fatal("Expected non-nil DB instance")
	}

	for _, table := range []string{"hubs", "measurements", "alerts", "notification_preferences"} {
		if !schemaObjectExists(instance.Conn, "table", table) {
			t.Errorf("Expected table %q to exist after migration", table)
		}
	}

	for _, index := range []string{"idx_alerts_open_hub", "idx_alerts_hub_id"} {
		if !schemaObjectExists(instance.Conn, "index", index) {
			t.Errorf("Expected index %q to exist after migration", index)
		}
	}
}

func TestMigrate_Constraints(t *testing.T) {
	common.SetTestLoggerNop()

	conn := GetInstance(UseMemorySqliteDialector()).Conn
	hub := models.Hub{ID: uuid.NewString(), Name: "Shed", OwnerID: uuid.NewString()}
	if err := conn.Create(&hub).Error; err != nil {
		t.Fatalf("create hub: %v", err)
	}

	orphan := models.Measurement{HubID: uuid.NewString(), Temperature: 20, Humidity: 40, RecordedAt: time.Now()}
	if err := conn.Create(&orphan).Error; err == nil {
		t.Error("Expected foreign key violation for a measurement of an unknown hub")
	}

	open := models.Alert{HubID: hub.ID, Kind: models.AlertKindHumidity, Message: "first"}
	if err := conn.Create(&open).Error; err != nil {
		t.Fatalf("create alert: %v", err)
	}

	second := models.Alert{HubID: hub.ID, Kind: models.AlertKindHumidity, Message: "second"}
	if err := conn.Create(&second).Error; err == nil {
		t.Error("Expected the partial unique index to reject a second open alert")
	}

	closed := models.Alert{HubID: hub.ID, Kind: models.AlertKindHumidity, Message: "closed", Resolved: true}
	if err := conn.Create(&closed).Error; err != nil {
		t.Errorf("Expected resolved alerts to be outside the unique index, got %v", err)
	}

	invalid := models.Alert{HubID: hub.ID, Kind: "pressure", Message: "bad kind", Resolved: true}
	if err := conn.Create(&invalid).Error; err == nil {
		t.Error("Expected kind check constraint to reject an unknown kind")
	}
}

func TestSingletonConcurrency(t *testing.T) {
	common.SetTestLoggerNop()

	const goroutineCount = 20

	var wg sync.WaitGroup
	instances := make(chan *DB, goroutineCount)

	for range goroutineCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instance := GetInstance(UseMemorySqliteDialector())
			instances <- instance
		}()
	}

	wg.Wait()
	close(instances)

	var first *DB
	for inst := range instances {
		if first == nil {
			first = inst
			continue
		}
		if inst != first {
			t.Error("Expected all instances to be the same (singleton), but found different ones")
		}
	}
}
