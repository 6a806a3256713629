package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ouppakdigital/quiz-service/internal/repositories"
)

// catalogService answers distinct-value queries over question placement
// metadata. The distinct sets are computed in the database, not by scanning
// question rows in the client.
type catalogService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListDistinctChapters(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error) {
	entries, err := s.repo.Catalog().ListDistinctChapters(ctx, grade, subject, book)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return entries, nil
}

func (s *catalogService) ListDistinctSLOs(ctx context.Context, grade, subject, book string) ([]repositories.CatalogEntry, error) {
	entries, err := s.repo.Catalog().ListDistinctSLOs(ctx, grade, subject, book)
	if err != nil {
		return nil, fmt.Errorf("failed to list SLOs: %w", err)
	}
	return entries, nil
}

func (s *catalogService) ListDistinctBooks(ctx context.Context, grade, subject string) ([]repositories.CatalogEntry, error) {
	entries, err := s.repo.Catalog().ListDistinctBooks(ctx, grade, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return entries, nil
}
