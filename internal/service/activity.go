package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository"
)

var ErrInvalidContract = errors.New("invalid submission contract")

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)
}

type SubmissionCounter interface {
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
}

type ActivityService struct {
	repo        ActivityRepository
	submissions SubmissionCounter
}

func NewActivityService(repo ActivityRepository, submissions SubmissionCounter) *ActivityService {
	return &ActivityService{
		repo:        repo,
		submissions: submissions,
	}
}

func (s *ActivityService) GetActivity(ctx context.Context, id uint) (domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return domain.Activity{}, ErrActivityNotFound
		}

		return domain.Activity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return activity, nil
}

func (s *ActivityService) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return activities, nil
}

func (s *ActivityService) CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	normalized, err := normalizeContract(activity)
	if err != nil {
		return domain.Activity{}, err
	}

	created, err := s.repo.Create(ctx, normalized)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateActivity edits any field, including the schedule. Editing
// date/time after submissions exist retroactively changes their
// activity status; that is intentional behavior, so it is logged
// rather than blocked.
func (s *ActivityService) UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	normalized, err := normalizeContract(activity)
	if err != nil {
		return domain.Activity{}, err
	}

	count, err := s.submissions.CountByActivity(ctx, activity.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.submissions.CountByActivity -> %w", err)
	}
	if count > 0 {
		zap.L().Warn("activity schedule edited with submissions attached",
			zap.Uint("activity_id", activity.ID),
			zap.Int64("submissions", count),
		)
	}

	updated, err := s.repo.Update(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return domain.Activity{}, ErrActivityNotFound
		}

		return domain.Activity{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// normalizeContract enforces the (requiresSubmission, submissionKind,
// maxSizeMiB) triple: kind and size are present only when submissions
// are required, and the size cap applies to file kind only.
func normalizeContract(a domain.Activity) (domain.Activity, error) {
	if !a.RequiresSubmission {
		a.SubmissionKind = ""
		a.MaxSizeMiB = 0

		return a, nil
	}

	if !a.SubmissionKind.Valid() {
		return domain.Activity{}, ErrInvalidContract
	}

	if a.SubmissionKind == domain.KindFile {
		if a.MaxSizeMiB < 1 || a.MaxSizeMiB > domain.MaxFileSizeMiB {
			return domain.Activity{}, ErrInvalidContract
		}
	} else {
		a.MaxSizeMiB = 0
	}

	return a, nil
}
