package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

func encode(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestQuestionValidator_DragDropContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := &models.DragDropContent{
		LayoutMode: models.LayoutText,
		DragItems:  []models.DragItem{{ID: "i1", Label: "Mercury", Kind: models.MediaText}},
		DropZones:  []models.DropZone{{ID: "z1", Label: "First", CorrectItemID: "i1"}},
	}

	tests := []struct {
		name    string
		mutate  func(c *models.DragDropContent)
		wantErr string
	}{
		{name: "valid text layout", mutate: func(c *models.DragDropContent) {}},
		{
			name:    "no drag items",
			mutate:  func(c *models.DragDropContent) { c.DragItems = nil },
			wantErr: "at least 1 drag item",
		},
		{
			name:    "no drop zones",
			mutate:  func(c *models.DragDropContent) { c.DropZones = nil },
			wantErr: "at least 1 drop zone",
		},
		{
			name:    "image layout without background",
			mutate:  func(c *models.DragDropContent) { c.LayoutMode = models.LayoutImage },
			wantErr: "background image",
		},
		{
			name:    "zone references missing item",
			mutate:  func(c *models.DragDropContent) { c.DropZones[0].CorrectItemID = "gone" },
			wantErr: "non-existent item",
		},
		{
			name:    "item without label or image",
			mutate:  func(c *models.DragDropContent) { c.DragItems[0].Label = "" },
			wantErr: "label or an image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := *valid
			content.DragItems = append([]models.DragItem(nil), valid.DragItems...)
			content.DropZones = append([]models.DropZone(nil), valid.DropZones...)
			tt.mutate(&content)

			err := v.ValidateContent(models.DragDrop, encode(t, &content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestQuestionValidator_DiagramLabelingWithTypedLabels(t *testing.T) {
	v := NewQuestionValidator()

	content := &models.DragDropContent{
		LayoutMode:      models.LayoutImage,
		BackgroundImage: "https://example.com/cell.png",
		Labels: []models.DiagramLabel{
			{ID: "l1", Text: "Nucleus"},
		},
	}
	assert.NoError(t, v.ValidateContent(models.DiagramLabeling, encode(t, content)))

	content.Labels[0].Text = ""
	err := v.ValidateContent(models.DiagramLabeling, encode(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have text")
}

func TestQuestionValidator_MatchingContent(t *testing.T) {
	v := NewQuestionValidator()

	err := v.ValidateContent(models.Matching, encode(t, &models.MatchingContent{
		Pairs: []models.MatchPair{{ID: "p1", Left: "France", Right: "Paris"}},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 pairs")

	err = v.ValidateContent(models.Matching, encode(t, &models.MatchingContent{
		Pairs: []models.MatchPair{
			{ID: "p1", Left: "France", Right: "Paris"},
			{ID: "p2", Left: "Japan", Right: ""},
		},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both sides")

	assert.NoError(t, v.ValidateContent(models.Matching, encode(t, &models.MatchingContent{
		Pairs: []models.MatchPair{
			{ID: "p1", Left: "France", Right: "Paris"},
			{ID: "p2", Left: "Japan", Right: "Tokyo"},
		},
	})))
}

func TestQuestionValidator_FillBlanksContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := &models.FillBlanksContent{
		Segments: []models.Segment{
			{Kind: models.SegmentText, Text: "Water boils at "},
			{Kind: models.SegmentBlank, BlankID: "b1"},
		},
		Bank:   []models.BankItem{{ID: "w1", Label: "100", Kind: models.MediaText}},
		Blanks: []models.Blank{{ID: "b1", CorrectItemID: "w1"}},
	}
	assert.NoError(t, v.ValidateContent(models.FillBlanks, encode(t, valid)))

	t.Run("empty bank", func(t *testing.T) {
		c := *valid
		c.Bank = nil
		err := v.ValidateContent(models.FillBlanks, encode(t, &c))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "word bank")
	})

	t.Run("blank references missing bank item", func(t *testing.T) {
		c := *valid
		c.Blanks = []models.Blank{{ID: "b1", CorrectItemID: "gone"}}
		err := v.ValidateContent(models.FillBlanks, encode(t, &c))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-existent bank item")
	})

	t.Run("segment references missing blank", func(t *testing.T) {
		c := *valid
		c.Segments = []models.Segment{{Kind: models.SegmentBlank, BlankID: "gone"}}
		err := v.ValidateContent(models.FillBlanks, encode(t, &c))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-existent blank")
	})
}

func TestQuestionValidator_CategorizationContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := &models.CategorizationContent{
		Categories: []models.Category{
			{ID: "c1", Label: "Mammals"},
			{ID: "c2", Label: "Birds"},
		},
		Items: []models.CategoryItem{
			{ID: "a", Label: "Whale", Kind: models.MediaText, CorrectCategoryID: "c1"},
		},
	}
	assert.NoError(t, v.ValidateContent(models.Categorization, encode(t, valid)))

	c := *valid
	c.Categories = valid.Categories[:1]
	err := v.ValidateContent(models.Categorization, encode(t, &c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 categories")

	c = *valid
	c.Items = []models.CategoryItem{{ID: "a", Label: "Whale", Kind: models.MediaText, CorrectCategoryID: "gone"}}
	err = v.ValidateContent(models.Categorization, encode(t, &c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-existent category")
}

func TestQuestionValidator_OrderingContent(t *testing.T) {
	v := NewQuestionValidator()

	err := v.ValidateContent(models.Ordering, encode(t, &models.OrderingContent{
		Steps: []models.OrderStep{{ID: "s1", Label: "only one"}},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 steps")

	err = v.ValidateContent(models.Ordering, encode(t, &models.OrderingContent{
		Steps: []models.OrderStep{{ID: "s1", Label: "first"}, {ID: "s2"}},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have a label")

	assert.NoError(t, v.ValidateContent(models.Ordering, encode(t, &models.OrderingContent{
		Steps: []models.OrderStep{{ID: "s1", Label: "first"}, {ID: "s2", Label: "second"}},
	})))
}

func TestQuestionValidator_MultipleChoiceContent(t *testing.T) {
	v := NewQuestionValidator()

	options := []models.ChoiceOption{{ID: "o1", Text: "4"}, {ID: "o2", Text: "5"}}

	assert.NoError(t, v.ValidateContent(models.MultipleChoice, encode(t, &models.MultipleChoiceContent{
		Options:         options,
		CorrectOptionID: "o1",
	})))

	err := v.ValidateContent(models.MultipleChoice, encode(t, &models.MultipleChoiceContent{
		Options: options,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correct option")

	err = v.ValidateContent(models.MultipleChoice, encode(t, &models.MultipleChoiceContent{
		Options:         options,
		CorrectOptionID: "o9",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	many := make([]models.ChoiceOption, 11)
	for i := range many {
		many[i] = models.ChoiceOption{ID: string(rune('a' + i)), Text: "x"}
	}
	err = v.ValidateContent(models.MultipleChoice, encode(t, &models.MultipleChoiceContent{
		Options:         many,
		CorrectOptionID: "a",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than 10")
}

func TestQuestionValidator_ValidateQuestion(t *testing.T) {
	v := NewQuestionValidator()

	question := &models.Question{
		Type:    models.TrueFalse,
		Text:    "The sky is blue.",
		Points:  1,
		Content: datatypes.JSON(`{"correct_answer": true}`),
	}
	assert.NoError(t, v.ValidateQuestion(question))

	t.Run("missing text", func(t *testing.T) {
		q := *question
		q.Text = ""
		err := v.ValidateQuestion(&q)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "text is required")
	})

	t.Run("text too long", func(t *testing.T) {
		q := *question
		q.Text = strings.Repeat("a", 501)
		err := v.ValidateQuestion(&q)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("points out of range", func(t *testing.T) {
		q := *question
		q.Points = 0
		err := v.ValidateQuestion(&q)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 100")
	})

	t.Run("empty content", func(t *testing.T) {
		q := *question
		q.Content = nil
		err := v.ValidateQuestion(&q)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content cannot be empty")
	})
}

func TestQuestionValidator_ValidateUsage(t *testing.T) {
	v := NewQuestionValidator()

	assert.NoError(t, v.ValidateUsage(false, "delete"))
	assert.NoError(t, v.ValidateUsage(true, "update"))
	assert.Error(t, v.ValidateUsage(true, "delete"))
}
