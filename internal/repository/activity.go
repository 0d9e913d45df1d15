package repository

import (
	"context"
	"fmt"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository/dao"
)

var ErrActivityNotFound = dao.ErrActivityNotFound

type ActivityDAO interface {
	Insert(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	FindByID(ctx context.Context, id uint) (dao.Activity, error)
	List(ctx context.Context) ([]dao.Activity, error)
	Update(ctx context.Context, activity dao.Activity) (dao.Activity, error)
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, activityDomainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return activityDAOToDomain(created), nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (domain.Activity, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return activityDAOToDomain(found), nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, activityDAOToDomain(a))
	}

	return activities, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	updated, err := r.dao.Update(ctx, activityDomainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return activityDAOToDomain(updated), nil
}

func activityDomainToDAO(a domain.Activity) dao.Activity {
	return dao.Activity{
		ID:                 a.ID,
		Title:              a.Title,
		Description:        a.Description,
		Date:               a.Date,
		StartsAt:           a.StartsAt,
		EndsAt:             a.EndsAt,
		RequiresSubmission: a.RequiresSubmission,
		SubmissionKind:     string(a.SubmissionKind),
		MaxSizeMiB:         a.MaxSizeMiB,
	}
}

func activityDAOToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:                 a.ID,
		Title:              a.Title,
		Description:        a.Description,
		Date:               a.Date,
		StartsAt:           a.StartsAt,
		EndsAt:             a.EndsAt,
		RequiresSubmission: a.RequiresSubmission,
		SubmissionKind:     domain.SubmissionKind(a.SubmissionKind),
		MaxSizeMiB:         a.MaxSizeMiB,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
