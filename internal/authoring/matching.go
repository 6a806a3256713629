package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// MatchingBuilder edits matching content in place. Left and right stay in the
// same pair record; the pair's ID keys correctness for both sides.
type MatchingBuilder struct {
	content *models.MatchingContent
}

func NewMatchingBuilder(content *models.MatchingContent) *MatchingBuilder {
	return &MatchingBuilder{content: content}
}

func NewMatchingContent() *models.MatchingContent {
	return &models.MatchingContent{Pairs: []models.MatchPair{}}
}

func (b *MatchingBuilder) AddPair() models.MatchPair {
	pair := models.MatchPair{ID: newID()}
	b.content.Pairs = append(b.content.Pairs, pair)
	return pair
}

type MatchPairPatch struct {
	Left  *string
	Right *string
}

func (b *MatchingBuilder) UpdatePair(id string, patch MatchPairPatch) {
	for i := range b.content.Pairs {
		if b.content.Pairs[i].ID != id {
			continue
		}
		if patch.Left != nil {
			b.content.Pairs[i].Left = *patch.Left
		}
		if patch.Right != nil {
			b.content.Pairs[i].Right = *patch.Right
		}
		return
	}
}

func (b *MatchingBuilder) RemovePair(id string) {
	pairs := b.content.Pairs[:0]
	for _, pair := range b.content.Pairs {
		if pair.ID != id {
			pairs = append(pairs, pair)
		}
	}
	b.content.Pairs = pairs
}

func (b *MatchingBuilder) SetPrompt(prompt string) {
	b.content.Prompt = prompt
}
