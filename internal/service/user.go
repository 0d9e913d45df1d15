package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository"
)

var (
	ErrUserNotFound        = repository.ErrUserNotFound
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrBrigadeNotFound     = repository.ErrBrigadeNotFound
	ErrStudentNeedsBrigade = errors.New("a student must belong to a brigade")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	CreateBrigade(ctx context.Context, brigade domain.Brigade) (domain.Brigade, error)
	FindBrigadeByID(ctx context.Context, id uint) (domain.Brigade, error)
	ListBrigades(ctx context.Context) ([]domain.Brigade, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// CreateUser provisions an account. Students always carry a brigade
// reference; admins never require one.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkBrigade(ctx, &user); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)
	user.Active = true

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateUser applies administrator edits: activation toggle, brigade
// reassignment, name or role changes. Email and password are not
// touched here.
func (s *UserService) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkBrigade(ctx, &user); err != nil {
		return domain.User{}, err
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *UserService) CreateBrigade(ctx context.Context, brigade domain.Brigade) (domain.Brigade, error) {
	brigade.Active = true

	created, err := s.repo.CreateBrigade(ctx, brigade)
	if err != nil {
		return domain.Brigade{}, fmt.Errorf("s.repo.CreateBrigade -> %w", err)
	}

	return created, nil
}

func (s *UserService) ListBrigades(ctx context.Context) ([]domain.Brigade, error) {
	brigades, err := s.repo.ListBrigades(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListBrigades -> %w", err)
	}

	return brigades, nil
}

func (s *UserService) checkBrigade(ctx context.Context, user *domain.User) error {
	if user.Role == domain.RoleStudent {
		if user.BrigadeID == nil {
			return ErrStudentNeedsBrigade
		}

		if _, err := s.repo.FindBrigadeByID(ctx, *user.BrigadeID); err != nil {
			if errors.Is(err, repository.ErrBrigadeNotFound) {
				return ErrBrigadeNotFound
			}

			return fmt.Errorf("s.repo.FindBrigadeByID -> %w", err)
		}

		return nil
	}

	// Admins carry no brigade label.
	user.BrigadeID = nil

	return nil
}
