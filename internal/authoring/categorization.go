package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// CategorizationBuilder edits categorization content in place.
type CategorizationBuilder struct {
	content *models.CategorizationContent
}

func NewCategorizationBuilder(content *models.CategorizationContent) *CategorizationBuilder {
	return &CategorizationBuilder{content: content}
}

func NewCategorizationContent() *models.CategorizationContent {
	return &models.CategorizationContent{
		Categories: []models.Category{},
		Items:      []models.CategoryItem{},
	}
}

func (b *CategorizationBuilder) AddCategory() models.Category {
	category := models.Category{ID: newID()}
	b.content.Categories = append(b.content.Categories, category)
	return category
}

type CategoryPatch struct {
	Label       *string
	Description *string
}

func (b *CategorizationBuilder) UpdateCategory(id string, patch CategoryPatch) {
	for i := range b.content.Categories {
		if b.content.Categories[i].ID != id {
			continue
		}
		if patch.Label != nil {
			b.content.Categories[i].Label = *patch.Label
		}
		if patch.Description != nil {
			b.content.Categories[i].Description = *patch.Description
		}
		return
	}
}

// RemoveCategory deletes a category and clears CorrectCategoryID on every
// item assigned to it.
func (b *CategorizationBuilder) RemoveCategory(id string) {
	categories := b.content.Categories[:0]
	for _, category := range b.content.Categories {
		if category.ID != id {
			categories = append(categories, category)
		}
	}
	b.content.Categories = categories

	for i := range b.content.Items {
		if b.content.Items[i].CorrectCategoryID == id {
			b.content.Items[i].CorrectCategoryID = ""
		}
	}
}

func (b *CategorizationBuilder) AddItem() models.CategoryItem {
	item := models.CategoryItem{ID: newID(), Kind: models.MediaText}
	b.content.Items = append(b.content.Items, item)
	return item
}

type CategoryItemPatch struct {
	Label             *string
	Kind              *models.MediaKind
	ImageURL          *string
	CorrectCategoryID *string
}

func (b *CategorizationBuilder) UpdateItem(id string, patch CategoryItemPatch) {
	for i := range b.content.Items {
		if b.content.Items[i].ID != id {
			continue
		}
		if patch.Label != nil {
			b.content.Items[i].Label = *patch.Label
		}
		if patch.Kind != nil {
			b.content.Items[i].Kind = *patch.Kind
		}
		if patch.ImageURL != nil {
			b.content.Items[i].ImageURL = *patch.ImageURL
		}
		if patch.CorrectCategoryID != nil {
			b.content.Items[i].CorrectCategoryID = *patch.CorrectCategoryID
		}
		return
	}
}

func (b *CategorizationBuilder) RemoveItem(id string) {
	items := b.content.Items[:0]
	for _, item := range b.content.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	b.content.Items = items
}

func (b *CategorizationBuilder) SetPrompt(prompt string) {
	b.content.Prompt = prompt
}

func (b *CategorizationBuilder) SetShuffleItems(shuffle bool) {
	b.content.ShuffleItems = shuffle
}
