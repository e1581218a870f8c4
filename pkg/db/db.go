package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	constant "liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		if dialector.Name() == "sqlite" {
			// sqlite has a single writer; one connection avoids "database table is locked"
			// on the shared in-memory cache and keeps PRAGMAs applied
			sqlDB, err := conn.DB()
			if err != nil {
				log.Fatal("Failed to get sqlite connection pool:", err)
			}
			sqlDB.SetMaxOpenConns(1)
		}

		instance = &DB{Conn: conn}

		if err := Migrate(instance.Conn); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")
	})
	return instance
}

func Migrate(conn *gorm.DB) error {
	if conn.Dialector.Name() == "sqlite" {
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return err
		}
	}

	return conn.AutoMigrate(
		&models.Hub{},
		&models.Measurement{},
		&models.Alert{},
		&models.NotificationPreference{},
	)
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyHubDbPath); !found {
		dbPath = "hubs.db"
	}
	return sqlite.Open(dbPath + "?_foreign_keys=1&_journal_mode=WAL&_busy_timeout=5000")
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared&_foreign_keys=1")
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
