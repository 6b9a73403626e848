package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seopilot/internal/models"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.SeoRun{}, &models.SeoDecision{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &Database{DB: db}, nil
}

// SaveRun records the run summary and its per-product decision rows.
func (d *Database) SaveRun(summary *models.RunSummary) error {
	run := models.SeoRun{
		ID:         summary.RunID,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		BatchSize:  summary.BatchSize,
		DryRun:     summary.DryRun,
		Updated:    summary.Updated,
		NoChange:   summary.NoChange,
		Ineligible: summary.Ineligible,
		Errors:     summary.Errors,
	}
	if err := d.DB.Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	for _, dec := range summary.Decisions {
		row := models.SeoDecision{
			RunID:     summary.RunID,
			ProductID: dec.ProductID,
			Handle:    dec.Handle,
			Action:    dec.Action,
			Reason:    dec.Reason,
			MetaTitle: dec.MetaTitle,
		}
		if err := d.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save decision: %w", err)
		}
	}
	return nil
}

// RecentRuns returns the latest run rows for the report endpoint.
func (d *Database) RecentRuns(limit int) ([]models.SeoRun, error) {
	var runs []models.SeoRun
	err := d.DB.Order("started_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
