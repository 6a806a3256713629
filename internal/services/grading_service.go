package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

type gradingService struct {
	logger *slog.Logger
}

func NewGradingService(logger *slog.Logger) GradingService {
	return &gradingService{logger: logger}
}

// EvaluateAnswer decodes the question content and the submitted answer and
// dispatches to the per-type rule. A nil or empty payload is "unanswered",
// which is never correct. Free-text types are accepted as correct whenever
// answered since they are not auto gradable.
func (s *gradingService) EvaluateAnswer(question *models.Question, rawAnswer json.RawMessage) (bool, bool, error) {
	if question == nil {
		return false, false, ErrGradingInvalidAnswer
	}
	if isEmptyRaw(rawAnswer) {
		return false, false, nil
	}

	if !question.Type.IsAutoGradable() {
		return true, true, nil
	}

	content, err := models.DecodeContent(question.Type, question.Content)
	if err != nil {
		return false, false, fmt.Errorf("decode content for question %d: %w", question.ID, err)
	}
	answer, err := models.DecodeAnswer(question.Type, rawAnswer)
	if err != nil {
		return false, false, fmt.Errorf("%w: %v", ErrGradingInvalidAnswer, err)
	}

	correct, err := evaluate(question.Type, content, answer)
	if err != nil {
		return false, true, err
	}
	return correct, true, nil
}

func (s *gradingService) CalculateScore(ctx context.Context, questionType models.QuestionType, rawContent, rawAnswer json.RawMessage) (int, bool, error) {
	if isEmptyRaw(rawAnswer) {
		return 0, false, nil
	}
	if !questionType.IsAutoGradable() {
		return 1, true, nil
	}

	content, err := models.DecodeContent(questionType, rawContent)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrGradingInvalidAnswer, err)
	}
	answer, err := models.DecodeAnswer(questionType, rawAnswer)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrGradingInvalidAnswer, err)
	}

	correct, err := evaluate(questionType, content, answer)
	if err != nil {
		return 0, false, err
	}
	if correct {
		return 1, true, nil
	}
	return 0, false, nil
}

// GradeAttempt walks the quiz items in order and aggregates verdicts into the
// final score. Items the student never answered count as incorrect but still
// contribute their marks to the total.
func (s *gradingService) GradeAttempt(ctx context.Context, quiz *models.Quiz, answers map[string]json.RawMessage) (*AttemptGradingResult, error) {
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	result := &AttemptGradingResult{
		Verdicts: make([]models.ItemVerdict, 0, len(quiz.Items)),
	}

	for _, item := range quiz.Items {
		if item.Question == nil {
			s.logger.Warn("quiz item has no question loaded, skipping",
				"quiz_id", quiz.ID, "question_id", item.QuestionID)
			continue
		}
		marks := item.Marks
		if marks <= 0 {
			marks = 1
		}

		raw := answers[fmt.Sprintf("%d", item.QuestionID)]
		correct, answered, err := s.EvaluateAnswer(item.Question, raw)
		if err != nil {
			// A malformed single answer must not sink the whole submission.
			s.logger.Warn("answer evaluation failed, marking incorrect",
				"quiz_id", quiz.ID, "question_id", item.QuestionID, "error", err)
			correct = false
		}

		result.TotalMarks += marks
		if correct {
			result.Score += marks
		}
		result.Verdicts = append(result.Verdicts, models.ItemVerdict{
			QuestionID: item.QuestionID,
			Type:       item.Question.Type,
			Marks:      marks,
			Correct:    correct,
			Answered:   answered,
			AutoGraded: item.Question.Type.IsAutoGradable(),
		})
	}

	if result.TotalMarks > 0 {
		result.Percentage = int(math.Round(float64(result.Score) / float64(result.TotalMarks) * 100))
	}
	return result, nil
}

// Feedback resolves the presentation message from the feedback config inside
// the variant content. Types without a feedback config fall back to defaults.
func (s *gradingService) Feedback(question *models.Question, correct bool) (string, error) {
	if question == nil {
		return "", ErrQuestionNotFound
	}

	var fb *models.FeedbackConfig
	if content, err := models.DecodeContent(question.Type, question.Content); err == nil {
		switch c := content.(type) {
		case *models.DragDropContent:
			fb = c.Feedback
		case *models.FillBlanksContent:
			fb = c.Feedback
		case *models.CategorizationContent:
			fb = c.Feedback
		}
	}

	if fb != nil {
		if correct && fb.CorrectMessage != "" {
			return fb.CorrectMessage, nil
		}
		if !correct && fb.IncorrectMessage != "" {
			return fb.IncorrectMessage, nil
		}
	}
	if correct {
		return "Correct!", nil
	}
	return "Incorrect.", nil
}

func isEmptyRaw(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	switch string(raw) {
	case "null", "{}", "[]", `""`:
		return true
	}
	return false
}
