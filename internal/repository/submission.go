package repository

import (
	"context"
	"fmt"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository/dao"
)

var (
	ErrSubmissionExists   = dao.ErrSubmissionExists
	ErrSubmissionNotFound = dao.ErrSubmissionNotFound
)

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	ExistsByStudentAndActivity(ctx context.Context, studentID, activityID uint) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.Submission, error)
	List(ctx context.Context) ([]dao.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dao.Submission, error)
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

// Create persists a new submission. A unique violation on the
// (student, activity) index comes back as ErrSubmissionExists; callers
// treat that as a duplicate attempt, not a storage failure.
func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.Insert(ctx, submissionDomainToDAO(submission))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return submissionDAOToDomain(created), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return submissionDAOToDomain(found), nil
}

func (r *SubmissionRepository) ExistsByStudentAndActivity(ctx context.Context, studentID, activityID uint) (bool, error) {
	exists, err := r.dao.ExistsByStudentAndActivity(ctx, studentID, activityID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsByStudentAndActivity -> %w", err)
	}

	return exists, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uint, status domain.SubmissionStatus) (domain.Submission, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return submissionDAOToDomain(updated), nil
}

func (r *SubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return submissionsDAOToDomain(found), nil
}

func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]domain.Submission, error) {
	found, err := r.dao.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByStudent -> %w", err)
	}

	return submissionsDAOToDomain(found), nil
}

func (r *SubmissionRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	count, err := r.dao.CountByActivity(ctx, activityID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByActivity -> %w", err)
	}

	return count, nil
}

func submissionDomainToDAO(s domain.Submission) dao.Submission {
	return dao.Submission{
		ID:         s.ID,
		StudentID:  s.StudentID,
		ActivityID: s.ActivityID,
		Kind:       string(s.Kind),
		Content:    s.Content,
		FileURL:    s.FileURL,
		FileName:   s.FileName,
		FileSize:   s.FileSize,
		Status:     string(s.Status),
	}
}

func submissionDAOToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:         s.ID,
		StudentID:  s.StudentID,
		ActivityID: s.ActivityID,
		Kind:       domain.SubmissionKind(s.Kind),
		Content:    s.Content,
		FileURL:    s.FileURL,
		FileName:   s.FileName,
		FileSize:   s.FileSize,
		Status:     domain.SubmissionStatus(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func submissionsDAOToDomain(found []dao.Submission) []domain.Submission {
	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submissions = append(submissions, submissionDAOToDomain(s))
	}

	return submissions
}
