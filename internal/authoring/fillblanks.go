package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// FillBlanksBuilder edits fill_blanks content in place. Blank segments and
// blank records are created and removed together.
type FillBlanksBuilder struct {
	content *models.FillBlanksContent
}

func NewFillBlanksBuilder(content *models.FillBlanksContent) *FillBlanksBuilder {
	return &FillBlanksBuilder{content: content}
}

func NewFillBlanksContent() *models.FillBlanksContent {
	return &models.FillBlanksContent{
		Segments: []models.Segment{},
		Bank:     []models.BankItem{},
		Blanks:   []models.Blank{},
	}
}

func (b *FillBlanksBuilder) AddTextSegment(text string) models.Segment {
	seg := models.Segment{Kind: models.SegmentText, Text: text}
	b.content.Segments = append(b.content.Segments, seg)
	return seg
}

// AddBlankSegment appends a blank slot and its paired blank record.
func (b *FillBlanksBuilder) AddBlankSegment() models.Segment {
	blank := models.Blank{ID: newID()}
	b.content.Blanks = append(b.content.Blanks, blank)

	seg := models.Segment{Kind: models.SegmentBlank, BlankID: blank.ID}
	b.content.Segments = append(b.content.Segments, seg)
	return seg
}

func (b *FillBlanksBuilder) UpdateTextSegment(index int, text string) {
	if index < 0 || index >= len(b.content.Segments) {
		return
	}
	if b.content.Segments[index].Kind != models.SegmentText {
		return
	}
	b.content.Segments[index].Text = text
}

// RemoveSegment deletes the segment at index. Removing a blank segment also
// removes the paired blank record.
func (b *FillBlanksBuilder) RemoveSegment(index int) {
	if index < 0 || index >= len(b.content.Segments) {
		return
	}
	seg := b.content.Segments[index]
	b.content.Segments = append(b.content.Segments[:index], b.content.Segments[index+1:]...)

	if seg.Kind == models.SegmentBlank {
		blanks := b.content.Blanks[:0]
		for _, blank := range b.content.Blanks {
			if blank.ID != seg.BlankID {
				blanks = append(blanks, blank)
			}
		}
		b.content.Blanks = blanks
	}
}

func (b *FillBlanksBuilder) AddBankItem() models.BankItem {
	item := models.BankItem{ID: newID(), Kind: models.MediaText}
	b.content.Bank = append(b.content.Bank, item)
	return item
}

type BankItemPatch struct {
	Label    *string
	Kind     *models.MediaKind
	ImageURL *string
}

func (b *FillBlanksBuilder) UpdateBankItem(id string, patch BankItemPatch) {
	for i := range b.content.Bank {
		if b.content.Bank[i].ID != id {
			continue
		}
		if patch.Label != nil {
			b.content.Bank[i].Label = *patch.Label
		}
		if patch.Kind != nil {
			b.content.Bank[i].Kind = *patch.Kind
		}
		if patch.ImageURL != nil {
			b.content.Bank[i].ImageURL = *patch.ImageURL
		}
		return
	}
}

// RemoveBankItem deletes a bank entry and clears CorrectItemID on every blank
// that referenced it.
func (b *FillBlanksBuilder) RemoveBankItem(id string) {
	bank := b.content.Bank[:0]
	for _, item := range b.content.Bank {
		if item.ID != id {
			bank = append(bank, item)
		}
	}
	b.content.Bank = bank

	for i := range b.content.Blanks {
		if b.content.Blanks[i].CorrectItemID == id {
			b.content.Blanks[i].CorrectItemID = ""
		}
	}
}

func (b *FillBlanksBuilder) SetBlankAnswer(blankID, itemID string) {
	for i := range b.content.Blanks {
		if b.content.Blanks[i].ID == blankID {
			b.content.Blanks[i].CorrectItemID = itemID
			return
		}
	}
}

func (b *FillBlanksBuilder) SetPrompt(prompt string) {
	b.content.Prompt = prompt
}

func (b *FillBlanksBuilder) SetShuffleBank(shuffle bool) {
	b.content.ShuffleBank = shuffle
}
