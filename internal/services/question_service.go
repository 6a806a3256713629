package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/ouppakdigital/quiz-service/internal/authoring"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	txRepo    repositories.TransactionRepository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *qvalidator.Validator
}

func NewQuestionService(
	repo repositories.Repository,
	txRepo repositories.TransactionRepository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *qvalidator.Validator,
) QuestionService {
	return &questionService{
		repo:      repo,
		txRepo:    txRepo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest, creatorID string) (*models.Question, error) {
	question, err := s.buildQuestion(req, creatorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.publish(ctx, events.EventQuestionCreated, &events.QuestionCreatedEvent{
		QuestionID: question.ID,
		Type:       question.Type,
		Grade:      question.Grade,
		Subject:    question.Subject,
		CreatorID:  creatorID,
	})

	return question, nil
}

// CreateBatch saves all questions or none. Each question is validated before
// any row is written.
func (s *questionService) CreateBatch(ctx context.Context, reqs []*CreateQuestionRequest, creatorID string) ([]*models.Question, error) {
	if len(reqs) == 0 {
		return nil, NewBusinessRuleError("batch_not_empty", "question batch cannot be empty", nil)
	}

	questions := make([]*models.Question, 0, len(reqs))
	for i, req := range reqs {
		question, err := s.buildQuestion(req, creatorID)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, question)
	}

	tx, err := s.txRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := tx.Question().CreateBatch(ctx, questions); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to create questions: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, question := range questions {
		s.publish(ctx, events.EventQuestionCreated, &events.QuestionCreatedEvent{
			QuestionID: question.ID,
			Type:       question.Type,
			Grade:      question.Grade,
			Subject:    question.Subject,
			CreatorID:  creatorID,
		})
	}

	return questions, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest, userID string) (*models.Question, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(req.Content) > 0 {
		content, err := authoring.NormalizeContent(question.Type, req.Content)
		if err != nil {
			return nil, NewValidationError("content", err.Error(), nil)
		}
		req.Content = content
	}

	applyQuestionUpdate(question, req)

	// Content gets re-validated against the question's type after the patch.
	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, NewValidationError("content", err.Error(), nil)
	}

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// Delete refuses to remove questions still placed in quizzes.
func (s *questionService) Delete(ctx context.Context, id uint, userID string) error {
	question, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	used, err := s.repo.Question().IsUsedInQuizzes(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check question usage: %w", err)
	}
	if used {
		return ErrQuestionNotDeletable
	}

	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.publish(ctx, events.EventQuestionDeleted, &events.QuestionDeletedEvent{
		QuestionID: id,
		Type:       question.Type,
		DeletedBy:  userID,
	})

	return nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	questions, total, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

func (s *questionService) buildQuestion(req *CreateQuestionRequest, creatorID string) (*models.Question, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	content, err := authoring.NormalizeContent(req.Type, req.Content)
	if err != nil {
		return nil, NewValidationError("content", err.Error(), nil)
	}
	if err := s.validator.Question().ValidateContent(req.Type, content); err != nil {
		return nil, NewValidationError("content", err.Error(), nil)
	}

	points := req.Points
	if points == 0 {
		points = 1
	}

	return &models.Question{
		Type:       req.Type,
		Text:       req.Text,
		Points:     points,
		Content:    datatypes.JSON(content),
		Grade:      req.Grade,
		Subject:    req.Subject,
		Book:       req.Book,
		Chapter:    req.Chapter,
		SLO:        req.SLO,
		Difficulty: req.Difficulty,
		CreatedBy:  creatorID,
	}, nil
}

func applyQuestionUpdate(question *models.Question, req *UpdateQuestionRequest) {
	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if len(req.Content) > 0 {
		question.Content = datatypes.JSON(req.Content)
	}
	if req.Grade != nil {
		question.Grade = *req.Grade
	}
	if req.Subject != nil {
		question.Subject = *req.Subject
	}
	if req.Book != nil {
		question.Book = *req.Book
	}
	if req.Chapter != nil {
		question.Chapter = *req.Chapter
	}
	if req.SLO != nil {
		question.SLO = *req.SLO
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
}

func (s *questionService) publish(ctx context.Context, t events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewEvent(t, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", t, "error", err)
	}
}
