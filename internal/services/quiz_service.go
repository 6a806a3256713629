package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

const quizCacheTTL = 5 * time.Minute

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *qvalidator.Validator
}

func NewQuizService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *qvalidator.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (*models.Quiz, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = models.FormatOnline
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Format:      format,
		Status:      models.QuizDraft,
		Duration:    req.Duration,
		Grade:       req.Grade,
		Subject:     req.Subject,
		CreatedBy:   creatorID,
	}
	for i, questionID := range req.QuestionIDs {
		quiz.Items = append(quiz.Items, models.QuizItem{
			QuestionID: questionID,
			Order:      i,
			Marks:      1,
		})
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// GetByIDWithItems serves from cache when possible; the attempt flow hits
// this on every start and submit.
func (s *quizService) GetByIDWithItems(ctx context.Context, id uint) (*models.Quiz, error) {
	key := quizCacheKey(id)
	if s.cache != nil {
		var cached models.Quiz
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("quiz cache read failed", "quiz_id", id, "error", err)
		}
	}

	quiz, err := s.repo.Quiz().GetByIDWithItems(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, quiz, quizCacheTTL); err != nil {
			s.logger.Warn("quiz cache write failed", "quiz_id", id, "error", err)
		}
	}
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (*models.Quiz, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Status == models.QuizArchived {
		return nil, ErrQuizNotEditable
	}

	wasPublished := quiz.Status == models.QuizPublished
	applyQuizUpdate(quiz, req)

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	s.invalidate(ctx, id)

	if !wasPublished && quiz.Status == models.QuizPublished {
		s.publish(ctx, events.EventQuizPublished, &events.QuizPublishedEvent{
			QuizID:    quiz.ID,
			QuizTitle: quiz.Title,
			Format:    quiz.Format,
			Duration:  quiz.Duration,
			CreatorID: quiz.CreatedBy,
		})
	}
	if wasPublished && quiz.Status == models.QuizArchived {
		s.publish(ctx, events.EventQuizArchived, &events.QuizArchivedEvent{
			QuizID:     quiz.ID,
			QuizTitle:  quiz.Title,
			ArchivedAt: time.Now(),
		})
	}

	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	quizzes, total, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, total, nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID, questionID uint, marks int, userID string) error {
	quiz, err := s.GetByIDWithItems(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Status == models.QuizArchived {
		return ErrQuizNotEditable
	}
	for _, item := range quiz.Items {
		if item.QuestionID == questionID {
			return ErrQuizDuplicateItem
		}
	}
	if _, err := s.repo.Question().GetByID(ctx, questionID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to get question: %w", err)
	}

	if marks <= 0 {
		marks = 1
	}
	item := &models.QuizItem{
		QuizID:     quizID,
		QuestionID: questionID,
		Order:      len(quiz.Items),
		Marks:      marks,
	}
	if err := s.repo.Quiz().AddItem(ctx, item); err != nil {
		return fmt.Errorf("failed to add question to quiz: %w", err)
	}
	s.invalidate(ctx, quizID)
	return nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, quizID, questionID uint, userID string) error {
	quiz, err := s.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Status == models.QuizArchived {
		return ErrQuizNotEditable
	}
	if err := s.repo.Quiz().RemoveItem(ctx, quizID, questionID); err != nil {
		return fmt.Errorf("failed to remove question from quiz: %w", err)
	}
	s.invalidate(ctx, quizID)
	return nil
}

func (s *quizService) ReorderQuestions(ctx context.Context, quizID uint, questionIDs []uint, userID string) error {
	quiz, err := s.GetByIDWithItems(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Status == models.QuizArchived {
		return ErrQuizNotEditable
	}
	if len(questionIDs) != len(quiz.Items) {
		return NewBusinessRuleError("reorder_complete", "reorder must include every quiz question exactly once", map[string]interface{}{
			"expected": len(quiz.Items),
			"got":      len(questionIDs),
		})
	}
	if err := s.repo.Quiz().ReorderItems(ctx, quizID, questionIDs); err != nil {
		return fmt.Errorf("failed to reorder quiz questions: %w", err)
	}
	s.invalidate(ctx, quizID)
	return nil
}

// GetForPlay is the student-facing lookup. Paper-format and unpublished
// quizzes surface as not found so the player cannot tell them apart from
// missing ones.
func (s *quizService) GetForPlay(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.GetByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Format != models.FormatOnline || quiz.Status != models.QuizPublished {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *quizService) GetStats(ctx context.Context, id uint) (*repositories.AttemptStats, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	stats, err := s.repo.Attempt().GetStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz stats: %w", err)
	}
	return stats, nil
}

func (s *quizService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, quizCacheKey(id)); err != nil {
		s.logger.Warn("quiz cache invalidation failed", "quiz_id", id, "error", err)
	}
}

func (s *quizService) publish(ctx context.Context, t events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewEvent(t, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", t, "error", err)
	}
}

func quizCacheKey(id uint) string {
	return fmt.Sprintf("quiz:%d:items", id)
}

func applyQuizUpdate(quiz *models.Quiz, req *UpdateQuizRequest) {
	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.Format != nil {
		quiz.Format = *req.Format
	}
	if req.Status != nil {
		quiz.Status = *req.Status
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.Grade != nil {
		quiz.Grade = *req.Grade
	}
	if req.Subject != nil {
		quiz.Subject = *req.Subject
	}
}
