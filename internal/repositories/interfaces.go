package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates all entity repositories. Implementations bound to a
// transaction are obtained through TransactionRepository.
type Repository interface {
	Question() QuestionRepository
	Quiz() QuizRepository
	Attempt() AttemptRepository
	School() SchoolRepository
	Campus() CampusRepository
	User() UserRepository
	Catalog() CatalogRepository
}

// TransactionRepository is implemented by repositories that can open a
// transaction-scoped view of themselves.
type TransactionRepository interface {
	Repository
	Begin(ctx context.Context) (TransactionRepository, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// IsNotFoundError reports whether err is the storage layer's missing-record
// error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Type       *models.QuestionType    `json:"type"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	Grade      string                  `json:"grade"`
	Subject    string                  `json:"subject"`
	Book       string                  `json:"book"`
	Chapter    string                  `json:"chapter"`
	SLO        string                  `json:"slo"`
	CreatedBy  *string                 `json:"created_by"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	SortBy     string                  `json:"sort_by"`
	SortOrder  string                  `json:"sort_order"`
}

type QuizFilters struct {
	Status    *models.QuizStatus `json:"status"`
	Format    *models.QuizFormat `json:"format"`
	Grade     string             `json:"grade"`
	Subject   string             `json:"subject"`
	CreatedBy *string            `json:"created_by"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`
	SortOrder string             `json:"sort_order"`
}

type AttemptFilters struct {
	Status    models.AttemptStatus `json:"status"`
	QuizID    *uint                `json:"quiz_id"`
	StudentID *string              `json:"student_id"`
	DateFrom  *time.Time           `json:"date_from"`
	DateTo    *time.Time           `json:"date_to"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type UserFilters struct {
	Role     *models.UserRole `json:"role"`
	CampusID *uint            `json:"campus_id"`
	IsActive *bool            `json:"is_active"`
	Search   string           `json:"search"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// AttemptStats feeds the admin dashboard charts for a single quiz.
type AttemptStats struct {
	TotalAttempts    int     `json:"total_attempts"`
	AverageScore     float64 `json:"average_score"`
	AveragePercent   float64 `json:"average_percent"`
	BestPercent      int     `json:"best_percent"`
	AverageTimeSpent int     `json:"average_time_spent"`
	TimedOutCount    int     `json:"timed_out_count"`
}

type CatalogEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
