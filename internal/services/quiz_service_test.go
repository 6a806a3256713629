package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

// memoryCache is a map-backed CacheService for tests.
type memoryCache struct {
	entries map[string][]byte
	gets    int
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func newTestQuizService(repo *MockRepository, cacheService cache.CacheService, publisher events.EventPublisher) QuizService {
	return NewQuizService(repo, cacheService, publisher, slog.Default(), qvalidator.New())
}

func TestQuizService_Create(t *testing.T) {
	repo := newMockRepository()
	svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

	repo.quizRepo.On("Create", mock.Anything, mock.MatchedBy(func(q *models.Quiz) bool {
		return q.Title == "Unit Review" && q.Status == models.QuizDraft &&
			q.Format == models.FormatOnline && len(q.Items) == 2
	})).Return(nil)

	quiz, err := svc.Create(context.Background(), &CreateQuizRequest{
		Title:       "Unit Review",
		Duration:    30,
		QuestionIDs: []uint{10, 11},
	}, "teacher-1")
	require.NoError(t, err)

	assert.Equal(t, models.QuizDraft, quiz.Status)
	assert.Equal(t, "teacher-1", quiz.CreatedBy)
	require.Len(t, quiz.Items, 2)
	assert.Equal(t, 0, quiz.Items[0].Order)
	assert.Equal(t, 1, quiz.Items[1].Order)
	assert.Equal(t, 1, quiz.Items[0].Marks)
}

func TestQuizService_GetByIDWithItems_CacheReadThrough(t *testing.T) {
	repo := newMockRepository()
	memCache := newMemoryCache()
	svc := newTestQuizService(repo, memCache, events.NewMockEventPublisher(slog.Default()))

	quiz := playableQuiz()
	repo.quizRepo.On("GetByIDWithItems", mock.Anything, uint(1)).Return(quiz, nil).Once()

	first, err := svc.GetByIDWithItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, quiz.Title, first.Title)

	// The second read is served from cache; the repository expectation above
	// only allows one call.
	second, err := svc.GetByIDWithItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, quiz.Title, second.Title)
	assert.Equal(t, 1, memCache.hits)
	repo.quizRepo.AssertExpectations(t)
}

func TestQuizService_Update_PublishTransitionEmitsEvent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(slog.Default())
	svc := newTestQuizService(repo, newMemoryCache(), publisher)

	quiz := &models.Quiz{ID: 1, Title: "Unit Review", Format: models.FormatOnline, Status: models.QuizDraft}
	repo.quizRepo.On("GetByID", mock.Anything, uint(1)).Return(quiz, nil)
	repo.quizRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	status := models.QuizPublished
	updated, err := svc.Update(context.Background(), 1, &UpdateQuizRequest{Status: &status}, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizPublished, updated.Status)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventQuizPublished, published[0].Type)
}

func TestQuizService_Update_ArchivedQuizIsFrozen(t *testing.T) {
	repo := newMockRepository()
	svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

	quiz := &models.Quiz{ID: 1, Title: "Old Quiz", Status: models.QuizArchived}
	repo.quizRepo.On("GetByID", mock.Anything, uint(1)).Return(quiz, nil)

	title := "New Title"
	_, err := svc.Update(context.Background(), 1, &UpdateQuizRequest{Title: &title}, "teacher-1")
	assert.ErrorIs(t, err, ErrQuizNotEditable)
}

func TestQuizService_AddQuestion_RejectsDuplicates(t *testing.T) {
	repo := newMockRepository()
	svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

	quiz := playableQuiz()
	repo.quizRepo.On("GetByIDWithItems", mock.Anything, uint(1)).Return(quiz, nil)

	err := svc.AddQuestion(context.Background(), 1, 10, 1, "teacher-1")
	assert.ErrorIs(t, err, ErrQuizDuplicateItem)
}

func TestQuizService_ReorderQuestions_MustBeComplete(t *testing.T) {
	repo := newMockRepository()
	svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

	quiz := playableQuiz()
	repo.quizRepo.On("GetByIDWithItems", mock.Anything, uint(1)).Return(quiz, nil)

	err := svc.ReorderQuestions(context.Background(), 1, []uint{10, 11}, "teacher-1")
	var ruleErr *BusinessRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "reorder_complete", ruleErr.Rule)

	repo.quizRepo.On("ReorderItems", mock.Anything, uint(1), []uint{10}).Return(nil)
	err = svc.ReorderQuestions(context.Background(), 1, []uint{10}, "teacher-1")
	assert.NoError(t, err)
}

func TestQuizService_GetForPlay(t *testing.T) {
	t.Run("published online quiz", func(t *testing.T) {
		repo := newMockRepository()
		svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

		repo.quizRepo.On("GetByIDWithItems", mock.Anything, uint(1)).Return(playableQuiz(), nil)

		quiz, err := svc.GetForPlay(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, models.QuizPublished, quiz.Status)
	})

	t.Run("paper quiz hidden from play", func(t *testing.T) {
		repo := newMockRepository()
		svc := newTestQuizService(repo, newMemoryCache(), events.NewMockEventPublisher(slog.Default()))

		paper := &models.Quiz{ID: 2, Format: models.FormatPaper, Status: models.QuizPublished}
		repo.quizRepo.On("GetByIDWithItems", mock.Anything, uint(2)).Return(paper, nil)

		_, err := svc.GetForPlay(context.Background(), 2)
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})
}
