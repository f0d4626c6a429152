package database

import (
	"fmt"

	"eventplanner/config"
	"eventplanner/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig, appCfg config.AppConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)

	logLevel := logger.Info
	if appCfg.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// Migrate creates or updates every table. Referenced tables come first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Upload{},
		&entity.User{},
		&entity.Category{},
		&entity.NotificationType{},
		&entity.Event{},
		&entity.EventAttendee{},
		&entity.AttendeeTask{},
		&entity.Feedback{},
		&entity.Report{},
		&entity.BlockUser{},
		&entity.QuestionType{},
		&entity.QuestionTypeResponse{},
		&entity.SuggestedItem{},
		&entity.Notification{},
		&entity.FAQ{},
		&entity.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.Info("Database schema migrated")
	return nil
}
