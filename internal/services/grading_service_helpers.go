package services

import (
	"strings"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// evaluate dispatches a decoded (content, answer) pair to its rule. The
// content and answer values come from models.DecodeContent/DecodeAnswer, so
// a type mismatch here means the decoders disagree with this switch.
func evaluate(t models.QuestionType, content, answer interface{}) (bool, error) {
	switch t {
	case models.DragDrop:
		c, ok1 := content.(*models.DragDropContent)
		a, ok2 := answer.(*models.DragDropAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateDragDrop(c, a), nil

	case models.DiagramLabeling:
		c, ok := content.(*models.DragDropContent)
		if !ok {
			return false, ErrGradingInvalidAnswer
		}
		switch a := answer.(type) {
		case *models.LabelAnswer:
			return evaluateDiagramLabels(c, a), nil
		case *models.DragDropAnswer:
			return evaluateDragDrop(c, a), nil
		default:
			return false, ErrGradingInvalidAnswer
		}

	case models.Matching:
		c, ok1 := content.(*models.MatchingContent)
		a, ok2 := answer.(*models.MatchingAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateMatching(c, a), nil

	case models.Ordering:
		c, ok1 := content.(*models.OrderingContent)
		a, ok2 := answer.(*models.OrderingAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateOrdering(c, a), nil

	case models.Categorization:
		c, ok1 := content.(*models.CategorizationContent)
		a, ok2 := answer.(*models.CategorizationAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateCategorization(c, a), nil

	case models.FillBlanks:
		c, ok1 := content.(*models.FillBlanksContent)
		a, ok2 := answer.(*models.FillBlanksAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateFillBlanks(c, a), nil

	case models.MultipleChoice:
		c, ok1 := content.(*models.MultipleChoiceContent)
		a, ok2 := answer.(*models.ChoiceAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return c.CorrectOptionID != "" && a.OptionID == c.CorrectOptionID, nil

	case models.TrueFalse:
		c, ok1 := content.(*models.TrueFalseContent)
		a, ok2 := answer.(*models.TrueFalseAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return a.Answer == c.CorrectAnswer, nil

	case models.FillBlank:
		c, ok1 := content.(*models.FillBlankTextContent)
		a, ok2 := answer.(*models.FillBlankTextAnswer)
		if !ok1 || !ok2 {
			return false, ErrGradingInvalidAnswer
		}
		return evaluateFillBlankText(c, a), nil

	default:
		return false, ErrGradingInvalidAnswer
	}
}

// evaluateDragDrop requires every zone with a defined correct item to hold
// exactly that item. A zone whose CorrectItemID points at a removed drag
// item can never be satisfied.
func evaluateDragDrop(c *models.DragDropContent, a *models.DragDropAnswer) bool {
	for _, zone := range c.DropZones {
		if zone.CorrectItemID == "" {
			continue
		}
		if !itemExists(c.DragItems, zone.CorrectItemID) {
			return false
		}
		if a.Placements[zone.ID] != zone.CorrectItemID {
			return false
		}
	}
	return true
}

// evaluateDiagramLabels compares label text per zone, case-insensitive and
// trimmed, aligned with the zone order.
func evaluateDiagramLabels(c *models.DragDropContent, a *models.LabelAnswer) bool {
	if len(a.Labels) != len(c.Labels) {
		return false
	}
	for i, label := range c.Labels {
		if !textMatches(label.Text, a.Labels[i]) {
			return false
		}
	}
	return true
}

// evaluateMatching treats a pair's own ID as its answer key: every pair must
// map back to itself.
func evaluateMatching(c *models.MatchingContent, a *models.MatchingAnswer) bool {
	for _, pair := range c.Pairs {
		if a.Matches[pair.ID] != pair.ID {
			return false
		}
	}
	return true
}

// evaluateOrdering requires the submitted sequence to equal the authored
// step sequence exactly, length included.
func evaluateOrdering(c *models.OrderingContent, a *models.OrderingAnswer) bool {
	if len(a.Order) != len(c.Steps) {
		return false
	}
	for i, step := range c.Steps {
		if a.Order[i] != step.ID {
			return false
		}
	}
	return true
}

// evaluateCategorization checks bucket membership per category without
// regard to order within a bucket. An item whose CorrectCategoryID points
// at a removed category can never be satisfied.
func evaluateCategorization(c *models.CategorizationContent, a *models.CategorizationAnswer) bool {
	expected := make(map[string]map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		expected[cat.ID] = make(map[string]bool)
	}
	for _, item := range c.Items {
		if item.CorrectCategoryID == "" {
			continue
		}
		bucket, ok := expected[item.CorrectCategoryID]
		if !ok {
			return false
		}
		bucket[item.ID] = true
	}
	for catID, want := range expected {
		seen := make(map[string]bool, len(want))
		for _, itemID := range a.Buckets[catID] {
			if !want[itemID] || seen[itemID] {
				return false
			}
			seen[itemID] = true
		}
		if len(seen) != len(want) {
			return false
		}
	}
	return true
}

// evaluateFillBlanks checks the selected bank item per blank, aligned by
// blank order. A blank whose CorrectItemID points at a removed bank item
// can never be satisfied.
func evaluateFillBlanks(c *models.FillBlanksContent, a *models.FillBlanksAnswer) bool {
	for _, blank := range c.Blanks {
		if blank.CorrectItemID == "" {
			continue
		}
		if !bankItemExists(c.Bank, blank.CorrectItemID) {
			return false
		}
		if a.Selections[blank.ID] != blank.CorrectItemID {
			return false
		}
	}
	return true
}

// evaluateFillBlankText compares typed values against the accepted values
// index by index, case-insensitive and trimmed.
func evaluateFillBlankText(c *models.FillBlankTextContent, a *models.FillBlankTextAnswer) bool {
	if len(a.Values) != len(c.CorrectValues) {
		return false
	}
	for i, want := range c.CorrectValues {
		if !textMatches(want, a.Values[i]) {
			return false
		}
	}
	return true
}

func textMatches(want, got string) bool {
	return strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(got))
}

func itemExists(items []models.DragItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func bankItemExists(items []models.BankItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
