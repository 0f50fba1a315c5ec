package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DescriptionRun is one row per pipeline invocation. It is the only place an
// operator can see which phase a failed invocation died in, since post-ack
// failures produce no response.
type DescriptionRun struct {
	RunID     string `gorm:"primaryKey"`
	ProductID string
	Phase     string
	Status    string
	Detail    string
	ImageURL  string
	UpdatedAt time.Time
}

type RunStore struct {
	db        *gorm.DB
	tableName string
}

func NewRunStore(db *gorm.DB, tableName string) *RunStore {
	if tableName == "" {
		tableName = "description_runs"
	}

	if err := db.Table(tableName).AutoMigrate(&DescriptionRun{}); err != nil {
		// AutoMigrate error is ignored here to keep constructor signature simple.
		// The caller is expected to have validated connectivity beforehand.
	}

	return &RunStore{
		db:        db,
		tableName: tableName,
	}
}

func (s *RunStore) UpsertRun(ctx context.Context, runID, productID, phase, status, detail, imageURL string) error {
	run := DescriptionRun{
		RunID:     runID,
		ProductID: productID,
		Phase:     phase,
		Status:    status,
		Detail:    detail,
		ImageURL:  imageURL,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Table(s.tableName).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"product_id", "phase", "status", "detail", "image_url", "updated_at"}),
		}).Create(&run).Error
}
