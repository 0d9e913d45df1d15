package repository

import (
	"context"
	"fmt"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrBrigadeNotFound = dao.ErrBrigadeNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	InsertBrigade(ctx context.Context, brigade dao.Brigade) (dao.Brigade, error)
	FindBrigadeByID(ctx context.Context, id uint) (dao.Brigade, error)
	ListBrigades(ctx context.Context) ([]dao.Brigade, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return daoToDomain(found), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return daoToDomain(updated), nil
}

func (r *UserRepository) CreateBrigade(ctx context.Context, brigade domain.Brigade) (domain.Brigade, error) {
	created, err := r.dao.InsertBrigade(ctx, dao.Brigade{
		Name:   brigade.Name,
		Active: brigade.Active,
	})
	if err != nil {
		return domain.Brigade{}, fmt.Errorf("r.dao.InsertBrigade -> %w", err)
	}

	return brigadeDAOToDomain(created), nil
}

func (r *UserRepository) FindBrigadeByID(ctx context.Context, id uint) (domain.Brigade, error) {
	found, err := r.dao.FindBrigadeByID(ctx, id)
	if err != nil {
		return domain.Brigade{}, fmt.Errorf("r.dao.FindBrigadeByID -> %w", err)
	}

	return brigadeDAOToDomain(found), nil
}

func (r *UserRepository) ListBrigades(ctx context.Context) ([]domain.Brigade, error) {
	found, err := r.dao.ListBrigades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListBrigades -> %w", err)
	}

	brigades := make([]domain.Brigade, 0, len(found))
	for _, b := range found {
		brigades = append(brigades, brigadeDAOToDomain(b))
	}

	return brigades, nil
}

func domainToDAO(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		BrigadeID: u.BrigadeID,
		Active:    u.Active,
	}
}

func daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		BrigadeID: u.BrigadeID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func brigadeDAOToDomain(b dao.Brigade) domain.Brigade {
	return domain.Brigade{
		ID:     b.ID,
		Name:   b.Name,
		Active: b.Active,
	}
}
