package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizationBuilder_RemoveCategoryClearsAssignments(t *testing.T) {
	content := NewCategorizationContent()
	b := NewCategorizationBuilder(content)

	cat1 := b.AddCategory()
	cat2 := b.AddCategory()
	item1 := b.AddItem()
	item2 := b.AddItem()
	b.UpdateItem(item1.ID, CategoryItemPatch{CorrectCategoryID: strPtr(cat1.ID)})
	b.UpdateItem(item2.ID, CategoryItemPatch{CorrectCategoryID: strPtr(cat2.ID)})

	b.RemoveCategory(cat1.ID)

	require.Len(t, content.Categories, 1)
	assert.Equal(t, "", content.Items[0].CorrectCategoryID)
	assert.Equal(t, cat2.ID, content.Items[1].CorrectCategoryID)
}

func TestCategorizationBuilder_RemoveItem(t *testing.T) {
	content := NewCategorizationContent()
	b := NewCategorizationBuilder(content)

	item1 := b.AddItem()
	item2 := b.AddItem()
	b.RemoveItem(item1.ID)

	require.Len(t, content.Items, 1)
	assert.Equal(t, item2.ID, content.Items[0].ID)
}

func TestCategorizationBuilder_UpdateCategory(t *testing.T) {
	content := NewCategorizationContent()
	b := NewCategorizationBuilder(content)

	cat := b.AddCategory()
	b.UpdateCategory(cat.ID, CategoryPatch{Label: strPtr("Mammals"), Description: strPtr("Warm blooded")})

	assert.Equal(t, "Mammals", content.Categories[0].Label)
	assert.Equal(t, "Warm blooded", content.Categories[0].Description)
}
