// Package history records produced reciprocity reports in the optional
// MySQL database.
//
// Each completed run, regardless of input channel, leaves one row with the
// summary counts. The table gives a cheap time series of follower churn
// without persisting any identifier lists beyond the snapshot store.
package history

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run is one recorded checker run.
type Run struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Target              string    `gorm:"size:191;index" json:"target"`
	Source              string    `gorm:"size:32" json:"source"`
	Followers           int       `json:"followers"`
	Following           int       `json:"following"`
	NotFollowingBack    int       `json:"not_following_back"`
	FansNotFollowedBack int       `json:"fans_not_followed_back"`
	Stale               bool      `json:"stale"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName sets the explicit table name for Run records.
func (Run) TableName() string {
	return "follow_runs"
}

// Recorder persists and queries run history.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder and ensures the schema exists.
func NewRecorder(db *gorm.DB, logger *zap.Logger) (*Recorder, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &Recorder{db: db, logger: logger}, nil
}

// Record inserts one run row.
func (r *Recorder) Record(ctx context.Context, run Run) error {
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	r.logger.Debug("Run recorded",
		zap.String("target", run.Target),
		zap.String("source", run.Source),
	)
	return nil
}

// Recent returns the most recent runs for a target, newest first.
func (r *Recorder) Recent(ctx context.Context, target string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := r.db.WithContext(ctx).
		Where("target = ?", target).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	return runs, nil
}
