package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository"
)

var (
	ErrActivityNotFound   = repository.ErrActivityNotFound
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrAlreadySubmitted   = repository.ErrSubmissionExists

	ErrSubmissionNotAccepted = errors.New("activity does not accept submissions")
	ErrWrongSubmissionKind   = errors.New("wrong submission type")
	ErrEmptyContent          = errors.New("submission content must not be empty")
	ErrFileDescriptorMissing = errors.New("file submission requires an uploaded file")
	ErrFileTooLarge          = errors.New("file exceeds the activity's size limit")
	ErrMalformedURL          = errors.New("submission URL is not a valid URL")
	ErrInvalidStatus         = errors.New("invalid submission status")
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	ExistsByStudentAndActivity(ctx context.Context, studentID, activityID uint) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status domain.SubmissionStatus) (domain.Submission, error)
	List(ctx context.Context) ([]domain.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]domain.Submission, error)
}

type SubmissionService struct {
	repo         SubmissionRepository
	activityRepo ActivityRepository
}

func NewSubmissionService(repo SubmissionRepository, activityRepo ActivityRepository) *SubmissionService {
	return &SubmissionService{
		repo:         repo,
		activityRepo: activityRepo,
	}
}

// Submit validates a student's proof-of-completion against the
// activity's declared contract and creates the submission. Each check
// short-circuits; the final uniqueness guarantee is the store's
// composite unique index, so two racing calls end up with exactly one
// row and one ErrAlreadySubmitted.
//
// Lateness is never computed here. The schedule window only drives the
// client UI; an administrator flags late work by hand.
func (s *SubmissionService) Submit(ctx context.Context, studentID, activityID uint, payload domain.Payload) (domain.Submission, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return domain.Submission{}, ErrActivityNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.activityRepo.FindByID -> %w", err)
	}

	if !activity.RequiresSubmission {
		return domain.Submission{}, ErrSubmissionNotAccepted
	}

	exists, err := s.repo.ExistsByStudentAndActivity(ctx, studentID, activityID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.ExistsByStudentAndActivity -> %w", err)
	}
	if exists {
		return domain.Submission{}, ErrAlreadySubmitted
	}

	if payload.Kind() != activity.SubmissionKind {
		return domain.Submission{}, ErrWrongSubmissionKind
	}

	submission := domain.Submission{
		StudentID:  studentID,
		ActivityID: activityID,
		Kind:       payload.Kind(),
		Status:     domain.StatusSubmitted,
	}

	switch p := payload.(type) {
	case domain.FilePayload:
		if p.URL == "" || p.Name == "" || p.Size <= 0 {
			return domain.Submission{}, ErrFileDescriptorMissing
		}
		if err = is.URL.Validate(p.URL); err != nil {
			return domain.Submission{}, ErrMalformedURL
		}
		if p.Size > activity.MaxSizeMiB<<20 {
			return domain.Submission{}, ErrFileTooLarge
		}
		submission.FileURL = p.URL
		submission.FileName = p.Name
		submission.FileSize = p.Size
	case domain.TextPayload:
		if p.Content == "" {
			return domain.Submission{}, ErrEmptyContent
		}
		submission.Content = p.Content
	case domain.LinkPayload:
		if p.Content == "" {
			return domain.Submission{}, ErrEmptyContent
		}
		if err = is.URL.Validate(p.Content); err != nil {
			return domain.Submission{}, ErrMalformedURL
		}
		submission.Content = p.Content
	default:
		return domain.Submission{}, ErrWrongSubmissionKind
	}

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		// A concurrent submit may have won the race between the
		// existence check and the insert.
		if errors.Is(err, repository.ErrSubmissionExists) {
			return domain.Submission{}, ErrAlreadySubmitted
		}

		return domain.Submission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SetStatus overrides a submission's status. Any of the three statuses
// may be set at any time; there is no transition graph, so an admin can
// un-mark late work with no trace beyond the log line below.
func (s *SubmissionService) SetStatus(ctx context.Context, adminID, submissionID uint, status domain.SubmissionStatus) (domain.Submission, error) {
	if !status.Valid() {
		return domain.Submission{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, submissionID, status)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.Submission{}, ErrSubmissionNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	zap.L().Info("submission status overridden",
		zap.Uint("submission_id", submissionID),
		zap.Uint("admin_id", adminID),
		zap.String("status", string(status)),
	)

	return updated, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uint) (domain.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.Submission{}, ErrSubmissionNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return submission, nil
}

// ListSubmissions returns every submission as immutable snapshots for
// the analytics reader.
func (s *SubmissionService) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	submissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return submissions, nil
}

func (s *SubmissionService) ListStudentSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error) {
	submissions, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByStudent -> %w", err)
	}

	return submissions, nil
}

func (s *SubmissionService) HasSubmitted(ctx context.Context, studentID, activityID uint) (bool, error) {
	exists, err := s.repo.ExistsByStudentAndActivity(ctx, studentID, activityID)
	if err != nil {
		return false, fmt.Errorf("s.repo.ExistsByStudentAndActivity -> %w", err)
	}

	return exists, nil
}
