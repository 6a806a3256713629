package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
)

// quizWithItems reads the quiz through the shared cache; attempts hit the
// same quiz repeatedly between start and submit.
func (s *attemptService) quizWithItems(ctx context.Context, quizID uint) (*models.Quiz, error) {
	key := quizCacheKey(quizID)
	if s.cache != nil {
		var cached models.Quiz
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("quiz cache read failed", "quiz_id", quizID, "error", err)
		}
	}

	quiz, err := s.repo.Quiz().GetByIDWithItems(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, quiz, quizCacheTTL); err != nil {
			s.logger.Warn("quiz cache write failed", "quiz_id", quizID, "error", err)
		}
	}
	return quiz, nil
}

// loadPlayableQuiz resolves a quiz for the attempt flow. Paper-format and
// unpublished quizzes are reported the same way as missing ones so the
// player surface never distinguishes them.
func (s *attemptService) loadPlayableQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	quiz, err := s.quizWithItems(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Format != models.FormatOnline || quiz.Status != models.QuizPublished {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *attemptService) isExpired(attempt *models.QuizAttempt, now time.Time) bool {
	return attempt.EndTime != nil && now.After(*attempt.EndTime)
}

// timeRemaining reports whole seconds left, -1 for untimed attempts and 0
// once the deadline has passed.
func (s *attemptService) timeRemaining(attempt *models.QuizAttempt, now time.Time) int {
	if attempt.EndTime == nil {
		return -1
	}
	remaining := int(attempt.EndTime.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// finalize closes an attempt using the answers already stored on it.
func (s *attemptService) finalize(ctx context.Context, attempt *models.QuizAttempt, verdicts []models.ItemVerdict, reason models.AttemptEndReason) error {
	stored, err := decodeStoredAnswers(attempt.Answers)
	if err != nil {
		s.logger.Warn("stored answers unreadable, grading as empty", "attempt_id", attempt.ID, "error", err)
		stored = map[string]json.RawMessage{}
	}
	_, err = s.finalizeWithAnswers(ctx, attempt, stored, reason)
	return err
}

// finalizeWithAnswers grades the given answer set, stamps the attempt as
// submitted and persists it. A persistence failure is logged but does not
// void the grading result; the caller still gets the verdicts.
func (s *attemptService) finalizeWithAnswers(ctx context.Context, attempt *models.QuizAttempt, answers map[string]json.RawMessage, reason models.AttemptEndReason) ([]models.ItemVerdict, error) {
	quiz, err := s.quizWithItems(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	result, err := s.grading.GradeAttempt(ctx, quiz, answers)
	if err != nil {
		return nil, fmt.Errorf("failed to grade attempt: %w", err)
	}

	now := time.Now()
	end := now
	if reason == models.AttemptEndReasonTimeout && attempt.EndTime != nil && attempt.EndTime.Before(now) {
		end = *attempt.EndTime
	}

	if answers == nil {
		answers = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	attempt.Status = models.AttemptSubmitted
	attempt.EndReason = &reason
	attempt.Answers = datatypes.JSON(raw)
	attempt.Score = result.Score
	attempt.TotalMarks = result.TotalMarks
	attempt.Percentage = result.Percentage
	attempt.TimeSpent = int(end.Sub(attempt.StartedAt).Seconds())
	attempt.SubmittedAt = timePtr(now)

	if err := s.repo.Attempt().Update(ctx, attempt); err != nil {
		s.logger.Error("failed to persist submitted attempt, result kept in memory only",
			"attempt_id", attempt.ID, "error", err)
	}

	s.publish(ctx, events.EventAttemptSubmitted, &events.AttemptSubmittedEvent{
		AttemptID:   attempt.ID,
		QuizID:      attempt.QuizID,
		QuizTitle:   attempt.QuizTitle,
		StudentID:   attempt.StudentID,
		SubmittedAt: now,
		EndReason:   reason,
		Score:       result.Score,
		TotalMarks:  result.TotalMarks,
		Percentage:  result.Percentage,
	})

	return result.Verdicts, nil
}

func (s *attemptService) toResponse(attempt *models.QuizAttempt, verdicts []models.ItemVerdict) *AttemptResponse {
	now := time.Now()
	return &AttemptResponse{
		QuizAttempt:   attempt,
		CanSubmit:     attempt.Status == models.AttemptInProgress && !s.isExpired(attempt, now),
		TimeRemaining: s.timeRemaining(attempt, now),
		Verdicts:      verdicts,
	}
}

func (s *attemptService) toResponses(attempts []*models.QuizAttempt) []*AttemptResponse {
	out := make([]*AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, s.toResponse(a, nil))
	}
	return out
}

func (s *attemptService) publish(ctx context.Context, t events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewEvent(t, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", t, "error", err)
	}
}

func decodeStoredAnswers(raw datatypes.JSON) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func durationPtr(minutes int) *int {
	if minutes <= 0 {
		return nil
	}
	return &minutes
}
