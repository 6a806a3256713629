package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest, creatorID string) (*models.Question, error)
	CreateBatch(ctx context.Context, reqs []*CreateQuestionRequest, creatorID string) ([]*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest, userID string) (*models.Question, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)
}

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithItems(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (*models.Quiz, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)

	AddQuestion(ctx context.Context, quizID, questionID uint, marks int, userID string) error
	RemoveQuestion(ctx context.Context, quizID, questionID uint, userID string) error
	ReorderQuestions(ctx context.Context, quizID uint, questionIDs []uint, userID string) error

	// GetForPlay returns the quiz with ordered items for the attempt flow.
	// Missing quizzes and quizzes not eligible for online play both resolve
	// to ErrQuizNotFound.
	GetForPlay(ctx context.Context, id uint) (*models.Quiz, error)

	GetStats(ctx context.Context, id uint) (*repositories.AttemptStats, error)
}

type AttemptService interface {
	Start(ctx context.Context, req *StartAttemptRequest, studentID string) (*AttemptResponse, error)
	Submit(ctx context.Context, req *SubmitAttemptRequest, studentID string) (*AttemptResponse, error)
	GetByID(ctx context.Context, id uint, userID string) (*AttemptResponse, error)
	GetByStudent(ctx context.Context, studentID string, filters repositories.AttemptFilters) ([]*AttemptResponse, int64, error)
	GetByQuiz(ctx context.Context, quizID uint, filters repositories.AttemptFilters) ([]*AttemptResponse, int64, error)

	GetTimeRemaining(ctx context.Context, attemptID uint, studentID string) (int, error)
	// HandleTimeout submits an expired attempt with whatever answers it has.
	HandleTimeout(ctx context.Context, attemptID uint) error
	ExpireOverdueAttempts(ctx context.Context) (int, error)
}

type GradingService interface {
	// EvaluateAnswer decides correctness of one submitted answer against one
	// question. It is pure: same inputs always yield the same verdict.
	EvaluateAnswer(question *models.Question, rawAnswer json.RawMessage) (correct bool, answered bool, err error)

	// CalculateScore evaluates a detached (content, answer) pair without a
	// stored question record.
	CalculateScore(ctx context.Context, questionType models.QuestionType, content, answer json.RawMessage) (score int, correct bool, err error)

	// GradeAttempt scores a full answer set against a quiz's ordered items.
	GradeAttempt(ctx context.Context, quiz *models.Quiz, answers map[string]json.RawMessage) (*AttemptGradingResult, error)

	// Feedback resolves the presentation message for a verdict from the
	// question's feedback config.
	Feedback(question *models.Question, correct bool) (string, error)
}

type CatalogService interface {
	ListDistinctChapters(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error)
	ListDistinctSLOs(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error)
	ListDistinctBooks(ctx context.Context, grade, subject string) ([]repositories.CatalogEntry, error)
}

type OrgService interface {
	CreateSchool(ctx context.Context, req *SchoolRequest) (*models.School, error)
	GetSchool(ctx context.Context, id uint) (*models.School, error)
	UpdateSchool(ctx context.Context, id uint, req *SchoolRequest) (*models.School, error)
	DeleteSchool(ctx context.Context, id uint) error
	ListSchools(ctx context.Context, limit, offset int) ([]*models.School, int64, error)

	CreateCampus(ctx context.Context, req *CampusRequest) (*models.Campus, error)
	GetCampus(ctx context.Context, id uint) (*models.Campus, error)
	UpdateCampus(ctx context.Context, id uint, req *CampusRequest) (*models.Campus, error)
	DeleteCampus(ctx context.Context, id uint) error
	ListCampuses(ctx context.Context, limit, offset int) ([]*models.Campus, int64, error)

	CreateUser(ctx context.Context, req *UserRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req *UserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
}

type ExportService interface {
	ExportQuizResults(ctx context.Context, quizID uint) ([]byte, error)
	ExportQuestions(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error)
}

// ServiceManager wires all services over one repository.
type ServiceManager interface {
	Question() QuestionService
	Quiz() QuizService
	Attempt() AttemptService
	Grading() GradingService
	Catalog() CatalogService
	Org() OrgService
	Export() ExportService
}

// ===== REQUEST / RESPONSE STRUCTS =====

type CreateQuestionRequest struct {
	Type       models.QuestionType    `json:"type" validate:"required,question_type"`
	Text       string                 `json:"text" validate:"required,min=1,max=500"`
	Points     int                    `json:"points" validate:"omitempty,min=1,max=100"`
	Content    json.RawMessage        `json:"content" validate:"required"`
	Grade      string                 `json:"grade"`
	Subject    string                 `json:"subject"`
	Book       string                 `json:"book"`
	Chapter    string                 `json:"chapter"`
	SLO        string                 `json:"slo"`
	Difficulty models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

type UpdateQuestionRequest struct {
	Text       *string                 `json:"text" validate:"omitempty,min=1,max=500"`
	Points     *int                    `json:"points" validate:"omitempty,min=1,max=100"`
	Content    json.RawMessage         `json:"content"`
	Grade      *string                 `json:"grade"`
	Subject    *string                 `json:"subject"`
	Book       *string                 `json:"book"`
	Chapter    *string                 `json:"chapter"`
	SLO        *string                 `json:"slo"`
	Difficulty *models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	Description *string           `json:"description" validate:"omitempty,max=1000"`
	Format      models.QuizFormat `json:"format" validate:"omitempty,oneof=online paper"`
	Duration    int               `json:"duration" validate:"min=0,max=300"`
	Grade       string            `json:"grade"`
	Subject     string            `json:"subject"`
	QuestionIDs []uint            `json:"question_ids"`
}

type UpdateQuizRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=1000"`
	Format      *models.QuizFormat `json:"format" validate:"omitempty,oneof=online paper"`
	Status      *models.QuizStatus `json:"status" validate:"omitempty,oneof=Draft Published Archived"`
	Duration    *int               `json:"duration" validate:"omitempty,min=0,max=300"`
	Grade       *string            `json:"grade"`
	Subject     *string            `json:"subject"`
}

type StartAttemptRequest struct {
	QuizID uint `json:"quiz_id" validate:"required"`
}

type SubmitAttemptRequest struct {
	AttemptID uint                       `json:"attempt_id" validate:"required"`
	Answers   map[string]json.RawMessage `json:"answers"`
}

// AttemptResponse wraps an attempt with the derived fields the player needs.
type AttemptResponse struct {
	*models.QuizAttempt
	CanSubmit     bool                 `json:"can_submit"`
	TimeRemaining int                  `json:"time_remaining"`
	Verdicts      []models.ItemVerdict `json:"verdicts,omitempty"`
}

type AttemptGradingResult struct {
	Score      int                  `json:"score"`
	TotalMarks int                  `json:"total_marks"`
	Percentage int                  `json:"percentage"`
	Verdicts   []models.ItemVerdict `json:"verdicts"`
}

type SchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
}

type CampusRequest struct {
	SchoolID uint    `json:"school_id" validate:"required"`
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	City     *string `json:"city" validate:"omitempty,max=100"`
}

type UserRequest struct {
	ID       string          `json:"id" validate:"omitempty,max=255"`
	FullName string          `json:"full_name" validate:"required,min=1,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
	CampusID *uint           `json:"campus_id"`
	IsActive *bool           `json:"is_active"`
}

// ===== UTILITY =====

func timePtr(t time.Time) *time.Time {
	return &t
}
