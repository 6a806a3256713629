package authoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

func TestNormalizeContent_AssignsMissingIDs(t *testing.T) {
	raw, err := json.Marshal(&models.DragDropContent{
		LayoutMode: models.LayoutText,
		DragItems: []models.DragItem{
			{ID: "i1", Label: "Heart", Kind: models.MediaText},
			{Label: "Lung", Kind: models.MediaText},
		},
		DropZones: []models.DropZone{
			{Label: "Zone 1", CorrectItemID: "i1"},
		},
	})
	require.NoError(t, err)

	normalized, err := NormalizeContent(models.DragDrop, raw)
	require.NoError(t, err)

	var c models.DragDropContent
	require.NoError(t, json.Unmarshal(normalized, &c))

	assert.Equal(t, "i1", c.DragItems[0].ID, "existing ids are kept")
	assert.NotEmpty(t, c.DragItems[1].ID)
	assert.NotEmpty(t, c.DropZones[0].ID)
	assert.Equal(t, "i1", c.DropZones[0].CorrectItemID)
}

func TestNormalizeContent_DefaultsImageZoneShape(t *testing.T) {
	raw, err := json.Marshal(&models.DragDropContent{
		LayoutMode:      models.LayoutImage,
		BackgroundImage: "https://example.com/cell.png",
		DragItems:       []models.DragItem{{ID: "i1", Label: "Nucleus", Kind: models.MediaText}},
		DropZones: []models.DropZone{
			{ID: "z1", X: 10, Y: 10, Width: 20, Height: 20},
			{ID: "z2", X: 40, Y: 40, Width: 20, Height: 20, Shape: models.ShapeEllipse},
		},
	})
	require.NoError(t, err)

	normalized, err := NormalizeContent(models.DiagramLabeling, raw)
	require.NoError(t, err)

	var c models.DragDropContent
	require.NoError(t, json.Unmarshal(normalized, &c))

	assert.Equal(t, models.ShapeRect, c.DropZones[0].Shape)
	assert.Equal(t, models.ShapeEllipse, c.DropZones[1].Shape, "explicit shapes are kept")
}

func TestNormalizeContent_PairsBlankSegments(t *testing.T) {
	raw, err := json.Marshal(&models.FillBlanksContent{
		Segments: []models.Segment{
			{Kind: models.SegmentText, Text: "Water boils at "},
			{Kind: models.SegmentBlank},
			{Kind: models.SegmentBlank, BlankID: "b1"},
		},
		Bank:   []models.BankItem{{Label: "100", Kind: models.MediaText}},
		Blanks: []models.Blank{{ID: "b1", CorrectItemID: ""}},
	})
	require.NoError(t, err)

	normalized, err := NormalizeContent(models.FillBlanks, raw)
	require.NoError(t, err)

	var c models.FillBlanksContent
	require.NoError(t, json.Unmarshal(normalized, &c))

	require.NotEmpty(t, c.Segments[1].BlankID)
	require.Len(t, c.Blanks, 2, "each blank segment has a blank record")
	assert.Equal(t, c.Segments[1].BlankID, c.Blanks[1].ID)
	assert.NotEmpty(t, c.Bank[0].ID)
}

func TestNormalizeContent_PlainTypesPassThrough(t *testing.T) {
	raw := json.RawMessage(`{"correct_answer": true}`)

	normalized, err := NormalizeContent(models.TrueFalse, raw)

	require.NoError(t, err)
	assert.Equal(t, raw, normalized)
}

func TestNormalizeContent_MalformedPayload(t *testing.T) {
	_, err := NormalizeContent(models.Ordering, json.RawMessage(`{"steps": "nope"}`))
	assert.Error(t, err)
}
