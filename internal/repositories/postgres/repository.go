package postgres

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// gormRepository binds all entity repositories to one *gorm.DB, which may be
// the root connection or an open transaction.
type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repositories.TransactionRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Question() repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: r.db}
}

func (r *gormRepository) Quiz() repositories.QuizRepository {
	return &QuizPostgreSQL{db: r.db}
}

func (r *gormRepository) Attempt() repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: r.db}
}

func (r *gormRepository) School() repositories.SchoolRepository {
	return &SchoolPostgreSQL{db: r.db}
}

func (r *gormRepository) Campus() repositories.CampusRepository {
	return &CampusPostgreSQL{db: r.db}
}

func (r *gormRepository) User() repositories.UserRepository {
	return &UserPostgreSQL{db: r.db}
}

func (r *gormRepository) Catalog() repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: r.db}
}

func (r *gormRepository) Begin(ctx context.Context) (repositories.TransactionRepository, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormRepository{db: tx}, nil
}

func (r *gormRepository) Commit(ctx context.Context) error {
	return r.db.Commit().Error
}

func (r *gormRepository) Rollback(ctx context.Context) error {
	return r.db.Rollback().Error
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func applySort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if sortBy == "" || !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return query.Order(sortBy + " " + sortOrder)
}
