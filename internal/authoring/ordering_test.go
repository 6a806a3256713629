package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepIDs(b *OrderingBuilder) []string {
	ids := make([]string, len(b.content.Steps))
	for i, step := range b.content.Steps {
		ids[i] = step.ID
	}
	return ids
}

func TestOrderingBuilder_MoveStep(t *testing.T) {
	content := NewOrderingContent()
	b := NewOrderingBuilder(content)

	s1 := b.AddStep()
	s2 := b.AddStep()
	s3 := b.AddStep()

	b.MoveStep(s3.ID, 0)
	assert.Equal(t, []string{s3.ID, s1.ID, s2.ID}, stepIDs(b))

	b.MoveStep(s3.ID, 2)
	assert.Equal(t, []string{s1.ID, s2.ID, s3.ID}, stepIDs(b))

	// Out-of-range targets clamp to the ends.
	b.MoveStep(s1.ID, 99)
	assert.Equal(t, []string{s2.ID, s3.ID, s1.ID}, stepIDs(b))

	b.MoveStep(s1.ID, -5)
	assert.Equal(t, []string{s1.ID, s2.ID, s3.ID}, stepIDs(b))
}

func TestOrderingBuilder_RemoveStep(t *testing.T) {
	content := NewOrderingContent()
	b := NewOrderingBuilder(content)

	s1 := b.AddStep()
	s2 := b.AddStep()
	b.RemoveStep(s1.ID)

	require.Len(t, content.Steps, 1)
	assert.Equal(t, s2.ID, content.Steps[0].ID)
}

func TestOrderingBuilder_UpdateStep(t *testing.T) {
	content := NewOrderingContent()
	b := NewOrderingBuilder(content)

	step := b.AddStep()
	b.UpdateStep(step.ID, "Crack the eggs")
	b.UpdateStep("missing", "ignored")

	assert.Equal(t, "Crack the eggs", content.Steps[0].Label)
}
