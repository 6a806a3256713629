package services

import (
	"log/slog"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

type serviceManager struct {
	question QuestionService
	quiz     QuizService
	attempt  AttemptService
	grading  GradingService
	catalog  CatalogService
	org      OrgService
	export   ExportService
}

// NewServiceManager wires every service over the shared repository, cache and
// event publisher.
func NewServiceManager(
	repo repositories.TransactionRepository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *qvalidator.Validator,
) ServiceManager {
	grading := NewGradingService(logger)

	return &serviceManager{
		question: NewQuestionService(repo, repo, publisher, logger, v),
		quiz:     NewQuizService(repo, cacheService, publisher, logger, v),
		attempt:  NewAttemptService(repo, grading, cacheService, publisher, logger, v.Struct()),
		grading:  grading,
		catalog:  NewCatalogService(repo, logger),
		org:      NewOrgService(repo, logger, v),
		export:   NewExportService(repo, logger),
	}
}

func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Quiz() QuizService         { return m.quiz }
func (m *serviceManager) Attempt() AttemptService   { return m.attempt }
func (m *serviceManager) Grading() GradingService   { return m.grading }
func (m *serviceManager) Catalog() CatalogService   { return m.catalog }
func (m *serviceManager) Org() OrgService           { return m.org }
func (m *serviceManager) Export() ExportService     { return m.export }
