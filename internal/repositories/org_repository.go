package repositories

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id uint) (*models.School, error)
	GetByIDWithCampuses(ctx context.Context, id uint) (*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.School, int64, error)
}

type CampusRepository interface {
	Create(ctx context.Context, campus *models.Campus) error
	GetByID(ctx context.Context, id uint) (*models.Campus, error)
	Update(ctx context.Context, campus *models.Campus) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Campus, int64, error)
	GetBySchool(ctx context.Context, schoolID uint) ([]*models.Campus, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}
