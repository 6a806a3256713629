package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// OrderingBuilder edits ordering content in place. Array position of
// content.Steps defines the correct sequence.
type OrderingBuilder struct {
	content *models.OrderingContent
}

func NewOrderingBuilder(content *models.OrderingContent) *OrderingBuilder {
	return &OrderingBuilder{content: content}
}

func NewOrderingContent() *models.OrderingContent {
	return &models.OrderingContent{Steps: []models.OrderStep{}}
}

func (b *OrderingBuilder) AddStep() models.OrderStep {
	step := models.OrderStep{ID: newID()}
	b.content.Steps = append(b.content.Steps, step)
	return step
}

func (b *OrderingBuilder) UpdateStep(id string, label string) {
	for i := range b.content.Steps {
		if b.content.Steps[i].ID == id {
			b.content.Steps[i].Label = label
			return
		}
	}
}

func (b *OrderingBuilder) RemoveStep(id string) {
	steps := b.content.Steps[:0]
	for _, step := range b.content.Steps {
		if step.ID != id {
			steps = append(steps, step)
		}
	}
	b.content.Steps = steps
}

// MoveStep repositions a step to the given index, shifting the rest.
func (b *OrderingBuilder) MoveStep(id string, index int) {
	from := -1
	for i := range b.content.Steps {
		if b.content.Steps[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(b.content.Steps) {
		index = len(b.content.Steps) - 1
	}

	step := b.content.Steps[from]
	b.content.Steps = append(b.content.Steps[:from], b.content.Steps[from+1:]...)
	b.content.Steps = append(b.content.Steps[:index], append([]models.OrderStep{step}, b.content.Steps[index:]...)...)
}

func (b *OrderingBuilder) SetPrompt(prompt string) {
	b.content.Prompt = prompt
}
