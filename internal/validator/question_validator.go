package validator

import (
	"encoding/json"
	"fmt"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// QuestionValidator handles question-specific validation. Checks run at save
// time only; builder edits are never blocked mid-session.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(questionType models.QuestionType, raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("content cannot be empty")
	}

	content, err := models.DecodeContent(questionType, raw)
	if err != nil {
		return err
	}

	switch c := content.(type) {
	case *models.DragDropContent:
		return v.validateDragDropContent(questionType, c)
	case *models.MatchingContent:
		return v.validateMatchingContent(c)
	case *models.FillBlanksContent:
		return v.validateFillBlanksContent(c)
	case *models.CategorizationContent:
		return v.validateCategorizationContent(c)
	case *models.OrderingContent:
		return v.validateOrderingContent(c)
	case *models.MultipleChoiceContent:
		return v.validateMultipleChoiceContent(c)
	case *models.TrueFalseContent:
		return nil
	case *models.FillBlankTextContent:
		return v.validateFillBlankTextContent(c)
	case *models.FreeTextContent:
		return nil
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(question.Text) > 500 {
		return fmt.Errorf("question text cannot exceed 500 characters")
	}
	if question.Points < 1 || question.Points > 100 {
		return fmt.Errorf("question points must be between 1 and 100")
	}

	return v.ValidateContent(question.Type, json.RawMessage(question.Content))
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

// ValidateUsage validates question usage constraints
func (v *QuestionValidator) ValidateUsage(isUsedInQuizzes bool, operation string) error {
	if isUsedInQuizzes && operation == "delete" {
		return fmt.Errorf("cannot delete question: it is used in quizzes")
	}
	return nil
}

// Private validation methods for each question type

func (v *QuestionValidator) validateDragDropContent(questionType models.QuestionType, content *models.DragDropContent) error {
	if questionType == models.DiagramLabeling && len(content.Labels) > 0 {
		for i, label := range content.Labels {
			if label.Text == "" {
				return fmt.Errorf("label %d must have text", i+1)
			}
		}
		return nil
	}

	if len(content.DragItems) == 0 {
		return fmt.Errorf("must have at least 1 drag item")
	}
	if len(content.DropZones) == 0 {
		return fmt.Errorf("must have at least 1 drop zone")
	}
	if content.LayoutMode == models.LayoutImage && content.BackgroundImage == "" {
		return fmt.Errorf("image layout requires a background image")
	}

	itemIDs := make(map[string]bool, len(content.DragItems))
	for _, item := range content.DragItems {
		if item.Label == "" && item.ImageURL == "" {
			return fmt.Errorf("drag item must have a label or an image")
		}
		itemIDs[item.ID] = true
	}

	for _, zone := range content.DropZones {
		if zone.CorrectItemID != "" && !itemIDs[zone.CorrectItemID] {
			return fmt.Errorf("drop zone '%s' references non-existent item: %s", zone.ID, zone.CorrectItemID)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMatchingContent(content *models.MatchingContent) error {
	if len(content.Pairs) < 2 {
		return fmt.Errorf("must have at least 2 pairs")
	}
	for i, pair := range content.Pairs {
		if pair.Left == "" || pair.Right == "" {
			return fmt.Errorf("pair %d must have both sides filled", i+1)
		}
	}
	return nil
}

func (v *QuestionValidator) validateFillBlanksContent(content *models.FillBlanksContent) error {
	if len(content.Segments) == 0 {
		return fmt.Errorf("must have at least 1 segment")
	}
	if len(content.Blanks) == 0 {
		return fmt.Errorf("must have at least 1 blank")
	}
	if len(content.Bank) == 0 {
		return fmt.Errorf("word bank cannot be empty")
	}

	bankIDs := make(map[string]bool, len(content.Bank))
	for _, item := range content.Bank {
		if item.Label == "" && item.ImageURL == "" {
			return fmt.Errorf("bank item must have a label or an image")
		}
		bankIDs[item.ID] = true
	}

	blankIDs := make(map[string]bool, len(content.Blanks))
	for _, blank := range content.Blanks {
		blankIDs[blank.ID] = true
		if blank.CorrectItemID != "" && !bankIDs[blank.CorrectItemID] {
			return fmt.Errorf("blank '%s' references non-existent bank item: %s", blank.ID, blank.CorrectItemID)
		}
	}

	for _, seg := range content.Segments {
		if seg.Kind == models.SegmentBlank && !blankIDs[seg.BlankID] {
			return fmt.Errorf("segment references non-existent blank: %s", seg.BlankID)
		}
	}

	return nil
}

func (v *QuestionValidator) validateCategorizationContent(content *models.CategorizationContent) error {
	if len(content.Categories) < 2 {
		return fmt.Errorf("must have at least 2 categories")
	}
	if len(content.Items) == 0 {
		return fmt.Errorf("must have at least 1 item")
	}

	categoryIDs := make(map[string]bool, len(content.Categories))
	for _, cat := range content.Categories {
		if cat.Label == "" {
			return fmt.Errorf("category must have a label")
		}
		categoryIDs[cat.ID] = true
	}

	for _, item := range content.Items {
		if item.Label == "" && item.ImageURL == "" {
			return fmt.Errorf("item must have a label or an image")
		}
		if item.CorrectCategoryID != "" && !categoryIDs[item.CorrectCategoryID] {
			return fmt.Errorf("item '%s' references non-existent category: %s", item.ID, item.CorrectCategoryID)
		}
	}

	return nil
}

func (v *QuestionValidator) validateOrderingContent(content *models.OrderingContent) error {
	if len(content.Steps) < 2 {
		return fmt.Errorf("must have at least 2 steps")
	}
	for i, step := range content.Steps {
		if step.Label == "" {
			return fmt.Errorf("step %d must have a label", i+1)
		}
	}
	return nil
}

func (v *QuestionValidator) validateMultipleChoiceContent(content *models.MultipleChoiceContent) error {
	if len(content.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}
	if len(content.Options) > 10 {
		return fmt.Errorf("cannot have more than 10 options")
	}

	optionIDs := make(map[string]bool, len(content.Options))
	for _, option := range content.Options {
		if option.Text == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		optionIDs[option.ID] = true
	}

	if content.CorrectOptionID == "" {
		return fmt.Errorf("must mark a correct option")
	}
	if !optionIDs[content.CorrectOptionID] {
		return fmt.Errorf("correct option ID '%s' does not match any option", content.CorrectOptionID)
	}

	return nil
}

func (v *QuestionValidator) validateFillBlankTextContent(content *models.FillBlankTextContent) error {
	if len(content.CorrectValues) == 0 {
		return fmt.Errorf("must have at least 1 accepted value")
	}
	for i, value := range content.CorrectValues {
		if value == "" {
			return fmt.Errorf("accepted value %d cannot be empty", i+1)
		}
	}
	return nil
}
