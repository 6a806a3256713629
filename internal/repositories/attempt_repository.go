package repositories

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// AttemptRepository persists quiz attempts. Submitted attempts are immutable;
// there is no delete operation.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)
	GetByIDWithQuiz(ctx context.Context, id uint) (*models.QuizAttempt, error)
	Update(ctx context.Context, attempt *models.QuizAttempt) error

	List(ctx context.Context, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	GetByStudent(ctx context.Context, studentID string, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	GetByQuiz(ctx context.Context, quizID uint, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)

	GetActiveAttempt(ctx context.Context, quizID uint, studentID string) (*models.QuizAttempt, error)
	GetExpiredInProgress(ctx context.Context) ([]*models.QuizAttempt, error)

	GetStats(ctx context.Context, quizID uint) (*AttemptStats, error)
}
