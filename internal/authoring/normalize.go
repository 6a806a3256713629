package authoring

import (
	"encoding/json"
	"fmt"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// NormalizeContent prepares authored content for storage: elements arriving
// without an id get a generated one, image-layout zones get the default rect
// shape, and blank segments get a paired blank record, the same invariants
// the builders maintain during editing. Content for non-interactive types
// passes through untouched.
func NormalizeContent(t models.QuestionType, raw json.RawMessage) (json.RawMessage, error) {
	switch t {
	case models.DragDrop, models.DiagramLabeling:
		var c models.DragDropContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid drag drop content: %w", err)
		}
		normalizeDragDrop(&c)
		return json.Marshal(&c)
	case models.Matching:
		var c models.MatchingContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid matching content: %w", err)
		}
		for i := range c.Pairs {
			if c.Pairs[i].ID == "" {
				c.Pairs[i].ID = newID()
			}
		}
		return json.Marshal(&c)
	case models.FillBlanks:
		var c models.FillBlanksContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid fill blanks content: %w", err)
		}
		normalizeFillBlanks(&c)
		return json.Marshal(&c)
	case models.Categorization:
		var c models.CategorizationContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid categorization content: %w", err)
		}
		for i := range c.Categories {
			if c.Categories[i].ID == "" {
				c.Categories[i].ID = newID()
			}
		}
		for i := range c.Items {
			if c.Items[i].ID == "" {
				c.Items[i].ID = newID()
			}
		}
		return json.Marshal(&c)
	case models.Ordering:
		var c models.OrderingContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid ordering content: %w", err)
		}
		for i := range c.Steps {
			if c.Steps[i].ID == "" {
				c.Steps[i].ID = newID()
			}
		}
		return json.Marshal(&c)
	default:
		return raw, nil
	}
}

func normalizeDragDrop(c *models.DragDropContent) {
	for i := range c.DragItems {
		if c.DragItems[i].ID == "" {
			c.DragItems[i].ID = newID()
		}
	}
	for i := range c.DropZones {
		if c.DropZones[i].ID == "" {
			c.DropZones[i].ID = newID()
		}
		if c.LayoutMode == models.LayoutImage && c.DropZones[i].Shape == "" {
			c.DropZones[i].Shape = models.ShapeRect
		}
	}
	for i := range c.Labels {
		if c.Labels[i].ID == "" {
			c.Labels[i].ID = newID()
		}
	}
}

func normalizeFillBlanks(c *models.FillBlanksContent) {
	for i := range c.Bank {
		if c.Bank[i].ID == "" {
			c.Bank[i].ID = newID()
		}
	}
	for i := range c.Blanks {
		if c.Blanks[i].ID == "" {
			c.Blanks[i].ID = newID()
		}
	}

	known := make(map[string]bool, len(c.Blanks))
	for _, blank := range c.Blanks {
		known[blank.ID] = true
	}
	for i := range c.Segments {
		if c.Segments[i].Kind != models.SegmentBlank {
			continue
		}
		if c.Segments[i].BlankID == "" {
			c.Segments[i].BlankID = newID()
		}
		// Every blank segment keeps a paired blank record.
		if !known[c.Segments[i].BlankID] {
			c.Blanks = append(c.Blanks, models.Blank{ID: c.Segments[i].BlankID})
			known[c.Segments[i].BlankID] = true
		}
	}
}
