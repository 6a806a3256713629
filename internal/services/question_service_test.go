package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ouppakdigital/quiz-service/internal/events"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) GetByCreator(ctx context.Context, creatorID string, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, creatorID, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) IsUsedInQuizzes(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTransactionRepository wraps MockRepository with transaction bookkeeping.
type MockTransactionRepository struct {
	*MockRepository
	mock.Mock
}

func newMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{MockRepository: newMockRepository()}
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (repositories.TransactionRepository, error) {
	args := m.Called(ctx)
	return m, args.Error(0)
}

func (m *MockTransactionRepository) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestQuestionService(repo *MockTransactionRepository, publisher events.EventPublisher) QuestionService {
	return NewQuestionService(repo, repo, publisher, slog.Default(), qvalidator.New())
}

func trueFalseRequest() *CreateQuestionRequest {
	return &CreateQuestionRequest{
		Type:    models.TrueFalse,
		Text:    "The sky is blue.",
		Content: json.RawMessage(`{"correct_answer": true}`),
		Grade:   "5",
		Subject: "Science",
	}
}

func TestQuestionService_Create(t *testing.T) {
	repo := newMockTransactionRepository()
	publisher := events.NewMockEventPublisher(slog.Default())
	svc := newTestQuestionService(repo, publisher)

	repo.questionRepo.On("Create", mock.Anything, mock.MatchedBy(func(q *models.Question) bool {
		return q.Type == models.TrueFalse && q.CreatedBy == "teacher-1" && q.Points == 1
	})).Return(nil)

	question, err := svc.Create(context.Background(), trueFalseRequest(), "teacher-1")
	require.NoError(t, err)

	assert.Equal(t, models.TrueFalse, question.Type)
	assert.Equal(t, 1, question.Points)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventQuestionCreated, published[0].Type)
}

func TestQuestionService_Create_NormalizesAuthoredContent(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	repo.questionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Question")).Return(nil)

	req := &CreateQuestionRequest{
		Type: models.Matching,
		Text: "Match each country to its capital.",
		// Pairs arrive without ids; storage assigns them.
		Content: json.RawMessage(`{"pairs": [{"left": "France", "right": "Paris"}, {"left": "Japan", "right": "Tokyo"}]}`),
	}
	question, err := svc.Create(context.Background(), req, "teacher-1")
	require.NoError(t, err)

	var content models.MatchingContent
	require.NoError(t, json.Unmarshal(question.Content, &content))
	require.Len(t, content.Pairs, 2)
	assert.NotEmpty(t, content.Pairs[0].ID)
	assert.NotEmpty(t, content.Pairs[1].ID)
	assert.NotEqual(t, content.Pairs[0].ID, content.Pairs[1].ID)
}

func TestQuestionService_Create_RejectsInvalidContent(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	req := &CreateQuestionRequest{
		Type: models.MultipleChoice,
		Text: "Pick one.",
		// Single option, no correct option marked.
		Content: json.RawMessage(`{"options": [{"id": "o1", "text": "only"}]}`),
	}
	_, err := svc.Create(context.Background(), req, "teacher-1")
	require.Error(t, err)
	repo.questionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuestionService_CreateBatch(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	repo.On("Begin", mock.Anything).Return(nil)
	repo.questionRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(qs []*models.Question) bool {
		return len(qs) == 2
	})).Return(nil)
	repo.On("Commit", mock.Anything).Return(nil)

	questions, err := svc.CreateBatch(context.Background(), []*CreateQuestionRequest{
		trueFalseRequest(),
		trueFalseRequest(),
	}, "teacher-1")
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	repo.AssertCalled(t, "Commit", mock.Anything)
}

func TestQuestionService_CreateBatch_RollsBackOnFailure(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	repo.On("Begin", mock.Anything).Return(nil)
	repo.questionRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(assert.AnError)
	repo.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.CreateBatch(context.Background(), []*CreateQuestionRequest{trueFalseRequest()}, "teacher-1")
	require.Error(t, err)
	repo.AssertCalled(t, "Rollback", mock.Anything)
	repo.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestQuestionService_CreateBatch_ValidatesBeforeWriting(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	bad := trueFalseRequest()
	bad.Text = ""

	_, err := svc.CreateBatch(context.Background(), []*CreateQuestionRequest{trueFalseRequest(), bad}, "teacher-1")
	require.Error(t, err)
	repo.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestQuestionService_Delete(t *testing.T) {
	t.Run("unused question is deleted", func(t *testing.T) {
		repo := newMockTransactionRepository()
		publisher := events.NewMockEventPublisher(slog.Default())
		svc := newTestQuestionService(repo, publisher)

		question := &models.Question{ID: 1, Type: models.TrueFalse}
		repo.questionRepo.On("GetByID", mock.Anything, uint(1)).Return(question, nil)
		repo.questionRepo.On("IsUsedInQuizzes", mock.Anything, uint(1)).Return(false, nil)
		repo.questionRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		err := svc.Delete(context.Background(), 1, "teacher-1")
		require.NoError(t, err)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventQuestionDeleted, published[0].Type)
	})

	t.Run("question placed in a quiz is protected", func(t *testing.T) {
		repo := newMockTransactionRepository()
		svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

		question := &models.Question{ID: 2, Type: models.TrueFalse}
		repo.questionRepo.On("GetByID", mock.Anything, uint(2)).Return(question, nil)
		repo.questionRepo.On("IsUsedInQuizzes", mock.Anything, uint(2)).Return(true, nil)

		err := svc.Delete(context.Background(), 2, "teacher-1")
		assert.ErrorIs(t, err, ErrQuestionNotDeletable)
		repo.questionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing question", func(t *testing.T) {
		repo := newMockTransactionRepository()
		svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

		repo.questionRepo.On("GetByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(context.Background(), 3, "teacher-1")
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})
}

func TestQuestionService_Update_RevalidatesContent(t *testing.T) {
	repo := newMockTransactionRepository()
	svc := newTestQuestionService(repo, events.NewMockEventPublisher(slog.Default()))

	question := &models.Question{
		ID:      1,
		Type:    models.MultipleChoice,
		Text:    "Pick one.",
		Points:  1,
		Content: []byte(`{"options": [{"id": "o1", "text": "a"}, {"id": "o2", "text": "b"}], "correct_option_id": "o1"}`),
	}
	repo.questionRepo.On("GetByID", mock.Anything, uint(1)).Return(question, nil)

	// Patching in content that drops the correct option must fail validation
	// before anything is persisted.
	bad := json.RawMessage(`{"options": [{"id": "o1", "text": "a"}, {"id": "o2", "text": "b"}]}`)
	_, err := svc.Update(context.Background(), 1, &UpdateQuestionRequest{Content: bad}, "teacher-1")
	require.Error(t, err)
	repo.questionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
