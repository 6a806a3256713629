package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

func TestFillBlanksBuilder_BlankSegmentsPairWithBlanks(t *testing.T) {
	content := NewFillBlanksContent()
	b := NewFillBlanksBuilder(content)

	b.AddTextSegment("Water boils at ")
	seg := b.AddBlankSegment()
	b.AddTextSegment(" degrees.")

	require.Len(t, content.Segments, 3)
	require.Len(t, content.Blanks, 1)
	assert.Equal(t, models.SegmentBlank, content.Segments[1].Kind)
	assert.Equal(t, content.Blanks[0].ID, seg.BlankID)
}

func TestFillBlanksBuilder_RemoveBlankSegmentRemovesBlank(t *testing.T) {
	content := NewFillBlanksContent()
	b := NewFillBlanksBuilder(content)

	b.AddTextSegment("The capital of France is ")
	b.AddBlankSegment()

	b.RemoveSegment(1)

	assert.Len(t, content.Segments, 1)
	assert.Empty(t, content.Blanks)
}

func TestFillBlanksBuilder_RemoveTextSegmentKeepsBlanks(t *testing.T) {
	content := NewFillBlanksContent()
	b := NewFillBlanksBuilder(content)

	b.AddTextSegment("prefix")
	b.AddBlankSegment()

	b.RemoveSegment(0)

	assert.Len(t, content.Segments, 1)
	assert.Len(t, content.Blanks, 1)
}

func TestFillBlanksBuilder_RemoveBankItemClearsBlankAnswers(t *testing.T) {
	content := NewFillBlanksContent()
	b := NewFillBlanksBuilder(content)

	seg1 := b.AddBlankSegment()
	seg2 := b.AddBlankSegment()
	item1 := b.AddBankItem()
	item2 := b.AddBankItem()
	b.SetBlankAnswer(seg1.BlankID, item1.ID)
	b.SetBlankAnswer(seg2.BlankID, item2.ID)

	b.RemoveBankItem(item1.ID)

	require.Len(t, content.Bank, 1)
	assert.Equal(t, "", content.Blanks[0].CorrectItemID)
	assert.Equal(t, item2.ID, content.Blanks[1].CorrectItemID)
}

func TestFillBlanksBuilder_OutOfRangeSegmentIndexIsNoOp(t *testing.T) {
	content := NewFillBlanksContent()
	b := NewFillBlanksBuilder(content)

	b.AddTextSegment("only")
	b.RemoveSegment(5)
	b.RemoveSegment(-1)
	b.UpdateTextSegment(3, "changed")

	require.Len(t, content.Segments, 1)
	assert.Equal(t, "only", content.Segments[0].Text)
}
