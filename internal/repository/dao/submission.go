package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSubmissionExists   = errors.New("submission already exists")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Submission carries a composite unique index on (student_id,
// activity_id). The index, not a check-then-insert, is what guarantees
// at most one row per pair under concurrent writers: the second writer
// gets a unique violation which Insert maps to ErrSubmissionExists.
type Submission struct {
	ID uint `gorm:"primaryKey"`

	StudentID  uint `gorm:"not null;uniqueIndex:idx_submissions_student_activity"`
	ActivityID uint `gorm:"not null;uniqueIndex:idx_submissions_student_activity"`

	Kind     string `gorm:"not null"` // "file", "text" or "link"
	Content  string // text and link kinds
	FileURL  string
	FileName string
	FileSize int64

	Status string `gorm:"not null;default:'submitted'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	result := d.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_submissions_student_activity") {
			return Submission{}, ErrSubmissionExists
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) ExistsByStudentAndActivity(ctx context.Context, studentID, activityID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("student_id = ? AND activity_id = ?", studentID, activityID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// UpdateStatus touches the status column only; every other column is
// immutable after Insert.
func (d *SubmissionDAO) UpdateStatus(ctx context.Context, id uint, status string) (Submission, error) {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Submission{}, ErrSubmissionNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *SubmissionDAO) List(ctx context.Context) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).Order("created_at").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) ListByStudent(ctx context.Context, studentID uint) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("activity_id = ?", activityID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
