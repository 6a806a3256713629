package postgres

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// CatalogPostgreSQL answers distinct-value queries over question placement
// metadata. Authoring suggestions come from here instead of scanning the
// whole question collection client-side.
type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: db}
}

func (c *CatalogPostgreSQL) ListDistinctChapters(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error) {
	return c.distinct(ctx, "chapter", map[string]string{"grade": grade, "subject": subject, "book": book})
}

func (c *CatalogPostgreSQL) ListDistinctSLOs(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error) {
	return c.distinct(ctx, "slo", map[string]string{"grade": grade, "subject": subject, "book": book})
}

func (c *CatalogPostgreSQL) ListDistinctBooks(ctx context.Context, grade, subject string) ([]repositories.CatalogEntry, error) {
	return c.distinct(ctx, "book", map[string]string{"grade": grade, "subject": subject})
}

func (c *CatalogPostgreSQL) distinct(ctx context.Context, column string, where map[string]string) ([]repositories.CatalogEntry, error) {
	query := c.db.WithContext(ctx).
		Model(&models.Question{}).
		Select(column + " AS value, COUNT(*) AS count").
		Where(column + " <> ''")

	for field, value := range where {
		if value != "" {
			query = query.Where(field+" = ?", value)
		}
	}

	var entries []repositories.CatalogEntry
	if err := query.Group(column).Order("value ASC").Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
