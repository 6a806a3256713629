package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
)

// exportService renders quiz results and question banks as xlsx workbooks.
type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportQuizResults produces one row per submitted attempt with score,
// percentage and timing columns.
func (s *exportService) ExportQuizResults(ctx context.Context, quizID uint) ([]byte, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	attempts, _, err := s.repo.Attempt().GetByQuiz(ctx, quizID, repositories.AttemptFilters{
		Status: models.AttemptSubmitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Student ID", "Score", "Total Marks", "Percentage", "Started At", "Submitted At", "Time Spent (s)", "End Reason"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, attempt := range attempts {
		values := []interface{}{
			attempt.StudentID,
			attempt.Score,
			attempt.TotalMarks,
			attempt.Percentage,
			attempt.StartedAt.Format(time.RFC3339),
			formatTimePtr(attempt.SubmittedAt),
			attempt.TimeSpent,
			endReasonString(attempt.EndReason),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	s.logger.Info("exported quiz results", "quiz_id", quizID, "quiz_title", quiz.Title, "attempts", len(attempts))
	return s.workbookBytes(f)
}

// ExportQuestions produces one row per question with its placement metadata.
// Variant content is not flattened; only the prompt text is included.
func (s *exportService) ExportQuestions(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error) {
	questions, _, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Questions"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Type", "Text", "Points", "Grade", "Subject", "Book", "Chapter", "SLO", "Difficulty"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, q := range questions {
		values := []interface{}{
			q.ID,
			string(q.Type),
			q.Text,
			q.Points,
			q.Grade,
			q.Subject,
			q.Book,
			q.Chapter,
			q.SLO,
			string(q.Difficulty),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return s.workbookBytes(f)
}

func (s *exportService) workbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func endReasonString(r *models.AttemptEndReason) string {
	if r == nil {
		return ""
	}
	return string(*r)
}
