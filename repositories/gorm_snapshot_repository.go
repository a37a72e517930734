package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/match-tagger/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

type gormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository migrates the entry table and returns a repository on top of it.
// Used with the embedded sqlite store.
func NewGormSnapshotRepository(db *gorm.DB) (SnapshotRepository, error) {
	if err := db.AutoMigrate(&SnapshotEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot entries: %w", err)
	}
	return &gormSnapshotRepository{db: db}, nil
}

func (r *gormSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	var rows []SnapshotEntry
	if err := r.db.WithContext(ctx).Where("entry_key IN ?", snapshotKeys).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshot entries: %w", err)
	}

	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		entries[row.Key] = row.Value
	}
	return decodeSnapshot(entries)
}

func (r *gormSnapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	entries, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	now := time.Now()
	rows := make([]SnapshotEntry, 0, len(snapshotKeys))
	for _, key := range snapshotKeys {
		rows = append(rows, SnapshotEntry{Key: key, Value: entries[key], UpdatedAt: now})
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot entries: %w", err)
	}
	return nil
}
