package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

type Activity struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string

	Date     time.Time `gorm:"not null"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   *time.Time

	RequiresSubmission bool   `gorm:"not null;default:false"`
	SubmissionKind     string // "file", "text" or "link"; empty when no submission required
	MaxSizeMiB         int64  // file kind only

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

func (d *ActivityDAO) Insert(ctx context.Context, activity Activity) (Activity, error) {
	result := d.db.WithContext(ctx).Create(&activity)
	if result.Error != nil {
		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) FindByID(ctx context.Context, id uint) (Activity, error) {
	var activity Activity

	result := d.db.WithContext(ctx).First(&activity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Activity{}, ErrActivityNotFound
		}

		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) List(ctx context.Context) ([]Activity, error) {
	var activities []Activity

	result := d.db.WithContext(ctx).Order("date, starts_at").Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (d *ActivityDAO) Update(ctx context.Context, activity Activity) (Activity, error) {
	result := d.db.WithContext(ctx).
		Model(&Activity{ID: activity.ID}).
		Updates(map[string]any{
			"title":               activity.Title,
			"description":         activity.Description,
			"date":                activity.Date,
			"starts_at":           activity.StartsAt,
			"ends_at":             activity.EndsAt,
			"requires_submission": activity.RequiresSubmission,
			"submission_kind":     activity.SubmissionKind,
			"max_size_mib":        activity.MaxSizeMiB,
		})
	if result.Error != nil {
		return Activity{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Activity{}, ErrActivityNotFound
	}

	return d.FindByID(ctx, activity.ID)
}
