package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// DragDropBuilder edits drag_drop and diagram_labeling content in place.
type DragDropBuilder struct {
	content *models.DragDropContent
}

func NewDragDropBuilder(content *models.DragDropContent) *DragDropBuilder {
	return &DragDropBuilder{content: content}
}

// NewDragDropContent creates an empty variant for the chosen layout mode.
// Diagram labeling always starts in image layout.
func NewDragDropContent(mode models.LayoutMode) *models.DragDropContent {
	return &models.DragDropContent{
		LayoutMode:    mode,
		ShowDropZones: true,
		DragItems:     []models.DragItem{},
		DropZones:     []models.DropZone{},
	}
}

func (b *DragDropBuilder) AddItem() models.DragItem {
	item := models.DragItem{
		ID:   newID(),
		Kind: models.MediaText,
	}
	b.content.DragItems = append(b.content.DragItems, item)
	return item
}

type DragItemPatch struct {
	Label    *string
	Kind     *models.MediaKind
	ImageURL *string
}

func (b *DragDropBuilder) UpdateItem(id string, patch DragItemPatch) {
	for i := range b.content.DragItems {
		if b.content.DragItems[i].ID != id {
			continue
		}
		if patch.Label != nil {
			b.content.DragItems[i].Label = *patch.Label
		}
		if patch.Kind != nil {
			b.content.DragItems[i].Kind = *patch.Kind
		}
		if patch.ImageURL != nil {
			b.content.DragItems[i].ImageURL = *patch.ImageURL
		}
		return
	}
}

// RemoveItem deletes a drag item and clears CorrectItemID on every zone that
// referenced it, so zones never point at a removed item.
func (b *DragDropBuilder) RemoveItem(id string) {
	items := b.content.DragItems[:0]
	for _, item := range b.content.DragItems {
		if item.ID != id {
			items = append(items, item)
		}
	}
	b.content.DragItems = items

	for i := range b.content.DropZones {
		if b.content.DropZones[i].CorrectItemID == id {
			b.content.DropZones[i].CorrectItemID = ""
		}
	}
}

func (b *DragDropBuilder) AddZone() models.DropZone {
	zone := models.DropZone{
		ID:    newID(),
		Order: len(b.content.DropZones) + 1,
	}
	if b.content.LayoutMode == models.LayoutImage {
		zone.Shape = models.ShapeRect
	}
	b.content.DropZones = append(b.content.DropZones, zone)
	return zone
}

type DropZonePatch struct {
	Label         *string
	CorrectItemID *string
	Order         *int
	Description   *string
	Shape         *models.ZoneShape
}

func (b *DragDropBuilder) UpdateZone(id string, patch DropZonePatch) {
	for i := range b.content.DropZones {
		if b.content.DropZones[i].ID != id {
			continue
		}
		if patch.Label != nil {
			b.content.DropZones[i].Label = *patch.Label
		}
		if patch.CorrectItemID != nil {
			b.content.DropZones[i].CorrectItemID = *patch.CorrectItemID
		}
		if patch.Order != nil {
			b.content.DropZones[i].Order = *patch.Order
		}
		if patch.Description != nil {
			b.content.DropZones[i].Description = *patch.Description
		}
		if patch.Shape != nil {
			b.content.DropZones[i].Shape = *patch.Shape
		}
		return
	}
}

func (b *DragDropBuilder) RemoveZone(id string) {
	zones := b.content.DropZones[:0]
	for _, zone := range b.content.DropZones {
		if zone.ID != id {
			zones = append(zones, zone)
		}
	}
	b.content.DropZones = zones
}

// PlaceZone applies a drawn bounding box to an image-mode zone.
func (b *DragDropBuilder) PlaceZone(id string, rect ZoneRect, shape models.ZoneShape) {
	for i := range b.content.DropZones {
		if b.content.DropZones[i].ID == id {
			rect.Apply(&b.content.DropZones[i], shape)
			return
		}
	}
}

func (b *DragDropBuilder) AddLabel() models.DiagramLabel {
	label := models.DiagramLabel{ID: newID()}
	b.content.Labels = append(b.content.Labels, label)
	return label
}

type DiagramLabelPatch struct {
	Text *string
	X    *float64
	Y    *float64
}

func (b *DragDropBuilder) UpdateLabel(id string, patch DiagramLabelPatch) {
	for i := range b.content.Labels {
		if b.content.Labels[i].ID != id {
			continue
		}
		if patch.Text != nil {
			b.content.Labels[i].Text = *patch.Text
		}
		if patch.X != nil {
			b.content.Labels[i].X = *patch.X
		}
		if patch.Y != nil {
			b.content.Labels[i].Y = *patch.Y
		}
		return
	}
}

func (b *DragDropBuilder) RemoveLabel(id string) {
	labels := b.content.Labels[:0]
	for _, label := range b.content.Labels {
		if label.ID != id {
			labels = append(labels, label)
		}
	}
	b.content.Labels = labels
}

func (b *DragDropBuilder) SetPrompt(prompt string) {
	b.content.Prompt = prompt
}

func (b *DragDropBuilder) SetBackgroundImage(url string) {
	b.content.BackgroundImage = url
}
