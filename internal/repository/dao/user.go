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
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrBrigadeNotFound = errors.New("brigade not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name      string `gorm:"not null"`
	Role      string `gorm:"not null"` // "ADMIN" or "STUDENT"
	BrigadeID *uint  `gorm:"index"`
	Brigade   *Brigade
	Active    bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Brigade struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"unique;not null"`
	Active bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).
		Model(&User{ID: user.ID}).
		Select("Name", "Role", "BrigadeID", "Active").
		Updates(map[string]any{
			"name":       user.Name,
			"role":       user.Role,
			"brigade_id": user.BrigadeID,
			"active":     user.Active,
		})
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) InsertBrigade(ctx context.Context, brigade Brigade) (Brigade, error) {
	result := d.db.WithContext(ctx).Create(&brigade)
	if result.Error != nil {
		return Brigade{}, result.Error
	}

	return brigade, nil
}

func (d *UserDAO) FindBrigadeByID(ctx context.Context, id uint) (Brigade, error) {
	var brigade Brigade

	result := d.db.WithContext(ctx).First(&brigade, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Brigade{}, ErrBrigadeNotFound
		}

		return Brigade{}, result.Error
	}

	return brigade, nil
}

func (d *UserDAO) ListBrigades(ctx context.Context) ([]Brigade, error) {
	var brigades []Brigade

	result := d.db.WithContext(ctx).Order("name").Find(&brigades)
	if result.Error != nil {
		return nil, result.Error
	}

	return brigades, nil
}
