package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDragDropBuilder_RemoveItemClearsZoneAnswers(t *testing.T) {
	content := NewDragDropContent(models.LayoutText)
	b := NewDragDropBuilder(content)

	item1 := b.AddItem()
	item2 := b.AddItem()
	zone1 := b.AddZone()
	zone2 := b.AddZone()
	b.UpdateZone(zone1.ID, DropZonePatch{CorrectItemID: strPtr(item1.ID)})
	b.UpdateZone(zone2.ID, DropZonePatch{CorrectItemID: strPtr(item2.ID)})

	b.RemoveItem(item1.ID)

	require.Len(t, content.DragItems, 1)
	assert.Equal(t, item2.ID, content.DragItems[0].ID)

	// The zone that pointed at the removed item is cleared, the other keeps
	// its answer.
	assert.Equal(t, "", content.DropZones[0].CorrectItemID)
	assert.Equal(t, item2.ID, content.DropZones[1].CorrectItemID)
}

func TestDragDropBuilder_RemoveZone(t *testing.T) {
	content := NewDragDropContent(models.LayoutText)
	b := NewDragDropBuilder(content)

	zone1 := b.AddZone()
	zone2 := b.AddZone()
	b.RemoveZone(zone1.ID)

	require.Len(t, content.DropZones, 1)
	assert.Equal(t, zone2.ID, content.DropZones[0].ID)
}

func TestDragDropBuilder_UnknownIDsAreNoOps(t *testing.T) {
	content := NewDragDropContent(models.LayoutText)
	b := NewDragDropBuilder(content)

	item := b.AddItem()
	b.UpdateItem("missing", DragItemPatch{Label: strPtr("changed")})
	b.RemoveItem("missing")
	b.RemoveZone("missing")

	require.Len(t, content.DragItems, 1)
	assert.Equal(t, item.ID, content.DragItems[0].ID)
	assert.Equal(t, "", content.DragItems[0].Label)
}

func TestDragDropBuilder_ImageZonesGetDefaultShape(t *testing.T) {
	content := NewDragDropContent(models.LayoutImage)
	b := NewDragDropBuilder(content)

	b.AddZone()
	assert.Equal(t, models.ShapeRect, content.DropZones[0].Shape)
}

func TestDragDropBuilder_PlaceZone(t *testing.T) {
	content := NewDragDropContent(models.LayoutImage)
	b := NewDragDropBuilder(content)
	zone := b.AddZone()

	b.PlaceZone(zone.ID, ZoneRect{X: 10, Y: 20, Width: 30, Height: 40}, models.ShapeEllipse)

	placed := content.DropZones[0]
	assert.Equal(t, 10.0, placed.X)
	assert.Equal(t, 20.0, placed.Y)
	assert.Equal(t, 30.0, placed.Width)
	assert.Equal(t, 40.0, placed.Height)
	assert.Equal(t, models.ShapeEllipse, placed.Shape)
}

func TestDragDropBuilder_Labels(t *testing.T) {
	content := NewDragDropContent(models.LayoutImage)
	b := NewDragDropBuilder(content)

	label := b.AddLabel()
	b.UpdateLabel(label.ID, DiagramLabelPatch{Text: strPtr("Nucleus")})
	require.Len(t, content.Labels, 1)
	assert.Equal(t, "Nucleus", content.Labels[0].Text)

	b.RemoveLabel(label.ID)
	assert.Empty(t, content.Labels)
}

func TestZoneFromDrag(t *testing.T) {
	tests := []struct {
		name                  string
		startX, startY        float64
		endX, endY            float64
		boxW, boxH            float64
		wantX, wantY          float64
		wantWidth, wantHeight float64
	}{
		{
			name:   "simple drag",
			startX: 100, startY: 50, endX: 300, endY: 150,
			boxW: 1000, boxH: 500,
			wantX: 10, wantY: 10, wantWidth: 20, wantHeight: 20,
		},
		{
			name:   "reverse drag normalizes origin",
			startX: 300, startY: 150, endX: 100, endY: 50,
			boxW: 1000, boxH: 500,
			wantX: 10, wantY: 10, wantWidth: 20, wantHeight: 20,
		},
		{
			name:   "drag past the edge clamps extent",
			startX: 900, startY: 450, endX: 1200, endY: 600,
			boxW: 1000, boxH: 500,
			wantX: 90, wantY: 90, wantWidth: 10, wantHeight: 10,
		},
		{
			name:   "negative origin clamps to zero",
			startX: -50, startY: -20, endX: 100, endY: 100,
			boxW: 1000, boxH: 500,
			wantX: 0, wantY: 0, wantWidth: 15, wantHeight: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect := ZoneFromDrag(tt.startX, tt.startY, tt.endX, tt.endY, tt.boxW, tt.boxH)
			assert.InDelta(t, tt.wantX, rect.X, 0.001)
			assert.InDelta(t, tt.wantY, rect.Y, 0.001)
			assert.InDelta(t, tt.wantWidth, rect.Width, 0.001)
			assert.InDelta(t, tt.wantHeight, rect.Height, 0.001)
		})
	}

	t.Run("degenerate box", func(t *testing.T) {
		rect := ZoneFromDrag(0, 0, 100, 100, 0, 0)
		assert.Equal(t, ZoneRect{}, rect)
	})
}
