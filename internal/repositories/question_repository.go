package repositories

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// QuestionRepository persists question records with their variant content.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	GetByCreator(ctx context.Context, creatorID string, filters QuestionFilters) ([]*models.Question, int64, error)

	// IsUsedInQuizzes reports whether any quiz item references the question.
	IsUsedInQuizzes(ctx context.Context, id uint) (bool, error)
}

// CatalogRepository answers distinct-value queries over question placement
// metadata for authoring suggestions.
type CatalogRepository interface {
	ListDistinctChapters(ctx context.Context, grade, subject, book string) ([]CatalogEntry, error)
	ListDistinctSLOs(ctx context.Context, grade, subject, book string) ([]CatalogEntry, error)
	ListDistinctBooks(ctx context.Context, grade, subject string) ([]CatalogEntry, error)
}
