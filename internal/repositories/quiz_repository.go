package repositories

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// QuizRepository persists quizzes and their ordered question items.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithItems(ctx context.Context, id uint) (*models.Quiz, error) // items + questions, ordered
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)

	AddItem(ctx context.Context, item *models.QuizItem) error
	RemoveItem(ctx context.Context, quizID, questionID uint) error
	ReorderItems(ctx context.Context, quizID uint, questionIDs []uint) error
}
