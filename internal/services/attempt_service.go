package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
)

type attemptService struct {
	repo      repositories.Repository
	grading   GradingService
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validate
}

func NewAttemptService(
	repo repositories.Repository,
	grading GradingService,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validate,
) AttemptService {
	return &attemptService{
		repo:      repo,
		grading:   grading,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Start opens an attempt against a playable quiz. If the student already has
// a live attempt on the same quiz it is resumed instead of duplicated; a
// stale one is first closed out as a timeout.
func (s *attemptService) Start(ctx context.Context, req *StartAttemptRequest, studentID string) (*AttemptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if studentID == "" {
		return nil, NewPermissionError(studentID, req.QuizID, "quiz", "start_attempt", "student identity required")
	}

	quiz, err := s.loadPlayableQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Attempt().GetActiveAttempt(ctx, quiz.ID, studentID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check active attempt: %w", err)
	}
	if existing != nil {
		if s.isExpired(existing, time.Now()) {
			if err := s.finalize(ctx, existing, nil, models.AttemptEndReasonTimeout); err != nil {
				s.logger.Warn("failed to close expired attempt", "attempt_id", existing.ID, "error", err)
			}
		} else {
			return s.toResponse(existing, nil), nil
		}
	}

	now := time.Now()
	attempt := &models.QuizAttempt{
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		StudentID: studentID,
		Status:    models.AttemptInProgress,
		StartedAt: now,
		Answers:   datatypes.JSON([]byte("{}")),
	}
	if quiz.Duration > 0 {
		attempt.EndTime = timePtr(now.Add(time.Duration(quiz.Duration) * time.Minute))
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.publish(ctx, events.EventAttemptStarted, &events.AttemptStartedEvent{
		AttemptID: attempt.ID,
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		StudentID: studentID,
		StartedAt: now,
		TimeLimit: durationPtr(quiz.Duration),
	})

	return s.toResponse(attempt, nil), nil
}

// Submit grades the submitted answers and freezes the attempt. A submission
// arriving after the deadline is still graded, with the end reason recorded
// as a timeout.
func (s *attemptService) Submit(ctx context.Context, req *SubmitAttemptRequest, studentID string) (*AttemptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	attempt, err := s.repo.Attempt().GetByID(ctx, req.AttemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID, attempt.ID, "attempt", "submit", "attempt belongs to another student")
	}
	if attempt.Status == models.AttemptSubmitted {
		return nil, ErrAttemptAlreadySubmitted
	}

	reason := models.AttemptEndReasonSubmitted
	if s.isExpired(attempt, time.Now()) {
		reason = models.AttemptEndReasonTimeout
	}

	verdicts, err := s.finalizeWithAnswers(ctx, attempt, req.Answers, reason)
	if err != nil {
		return nil, err
	}
	return s.toResponse(attempt, verdicts), nil
}

func (s *attemptService) GetByID(ctx context.Context, id uint, userID string) (*AttemptResponse, error) {
	attempt, err := s.repo.Attempt().GetByIDWithQuiz(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.StudentID != userID {
		user, err := s.repo.User().GetByID(ctx, userID)
		if err != nil || user.Role == models.RoleStudent {
			return nil, NewPermissionError(userID, id, "attempt", "view", "attempt belongs to another student")
		}
	}
	return s.toResponse(attempt, nil), nil
}

func (s *attemptService) GetByStudent(ctx context.Context, studentID string, filters repositories.AttemptFilters) ([]*AttemptResponse, int64, error) {
	attempts, total, err := s.repo.Attempt().GetByStudent(ctx, studentID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}
	return s.toResponses(attempts), total, nil
}

func (s *attemptService) GetByQuiz(ctx context.Context, quizID uint, filters repositories.AttemptFilters) ([]*AttemptResponse, int64, error) {
	attempts, total, err := s.repo.Attempt().GetByQuiz(ctx, quizID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}
	return s.toResponses(attempts), total, nil
}

func (s *attemptService) GetTimeRemaining(ctx context.Context, attemptID uint, studentID string) (int, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrAttemptNotFound
		}
		return 0, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return 0, NewPermissionError(studentID, attemptID, "attempt", "view", "attempt belongs to another student")
	}
	if attempt.Status != models.AttemptInProgress {
		return 0, ErrAttemptNotActive
	}
	return s.timeRemaining(attempt, time.Now()), nil
}

// HandleTimeout closes one overdue attempt, grading whatever answers were
// saved on it at the deadline.
func (s *attemptService) HandleTimeout(ctx context.Context, attemptID uint) error {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.Status != models.AttemptInProgress {
		return ErrAttemptNotActive
	}
	if !s.isExpired(attempt, time.Now()) {
		return ErrAttemptNotActive
	}
	return s.finalize(ctx, attempt, nil, models.AttemptEndReasonTimeout)
}

// ExpireOverdueAttempts sweeps all in-progress attempts past their deadline.
// Intended to run on a schedule.
func (s *attemptService) ExpireOverdueAttempts(ctx context.Context) (int, error) {
	overdue, err := s.repo.Attempt().GetExpiredInProgress(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue attempts: %w", err)
	}
	closed := 0
	for _, attempt := range overdue {
		if err := s.finalize(ctx, attempt, nil, models.AttemptEndReasonTimeout); err != nil {
			s.logger.Warn("failed to expire attempt", "attempt_id", attempt.ID, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}
