package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) Create(ctx context.Context, school *models.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.School), args.Error(1)
}

func (m *MockSchoolRepository) GetByIDWithCampuses(ctx context.Context, id uint) (*models.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.School), args.Error(1)
}

func (m *MockSchoolRepository) Update(ctx context.Context, school *models.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSchoolRepository) List(ctx context.Context, limit, offset int) ([]*models.School, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.School), args.Get(1).(int64), args.Error(2)
}

type MockCampusRepository struct {
	mock.Mock
}

func (m *MockCampusRepository) Create(ctx context.Context, campus *models.Campus) error {
	args := m.Called(ctx, campus)
	return args.Error(0)
}

func (m *MockCampusRepository) GetByID(ctx context.Context, id uint) (*models.Campus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campus), args.Error(1)
}

func (m *MockCampusRepository) Update(ctx context.Context, campus *models.Campus) error {
	args := m.Called(ctx, campus)
	return args.Error(0)
}

func (m *MockCampusRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampusRepository) List(ctx context.Context, limit, offset int) ([]*models.Campus, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Campus), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampusRepository) GetBySchool(ctx context.Context, schoolID uint) ([]*models.Campus, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Campus), args.Error(1)
}

func newTestOrgService(repo repositories.Repository) OrgService {
	return NewOrgService(repo, slog.Default(), qvalidator.New())
}

func TestOrgService_CreateSchool(t *testing.T) {
	repo := newMockRepository()
	repo.schoolRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.School")).Return(nil)

	svc := newTestOrgService(repo)
	school, err := svc.CreateSchool(context.Background(), &SchoolRequest{Name: "Northside High"})

	require.NoError(t, err)
	assert.Equal(t, "Northside High", school.Name)
	repo.schoolRepo.AssertExpectations(t)
}

func TestOrgService_CreateSchool_ValidatesRequest(t *testing.T) {
	repo := newMockRepository()
	svc := newTestOrgService(repo)

	_, err := svc.CreateSchool(context.Background(), &SchoolRequest{Name: ""})

	assert.Error(t, err)
	repo.schoolRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrgService_DeleteSchool_BlockedByCampuses(t *testing.T) {
	repo := newMockRepository()
	repo.campusRepo.On("GetBySchool", mock.Anything, uint(1)).Return([]*models.Campus{
		{ID: 5, SchoolID: 1, Name: "Main Campus"},
	}, nil)

	svc := newTestOrgService(repo)
	err := svc.DeleteSchool(context.Background(), 1)

	var ruleErr *BusinessRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "school_has_campuses", ruleErr.Rule)
	repo.schoolRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrgService_DeleteSchool_NoCampuses(t *testing.T) {
	repo := newMockRepository()
	repo.campusRepo.On("GetBySchool", mock.Anything, uint(1)).Return([]*models.Campus{}, nil)
	repo.schoolRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

	svc := newTestOrgService(repo)

	require.NoError(t, svc.DeleteSchool(context.Background(), 1))
	repo.schoolRepo.AssertExpectations(t)
}

func TestOrgService_CreateCampus_RequiresSchool(t *testing.T) {
	repo := newMockRepository()
	repo.schoolRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestOrgService(repo)
	_, err := svc.CreateCampus(context.Background(), &CampusRequest{SchoolID: 9, Name: "West Campus"})

	assert.ErrorIs(t, err, ErrSchoolNotFound)
	repo.campusRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrgService_CreateUser(t *testing.T) {
	repo := newMockRepository()
	repo.userRepo.On("GetByEmail", mock.Anything, "nadia@school.example").Return(nil, gorm.ErrRecordNotFound)
	repo.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := newTestOrgService(repo)
	user, err := svc.CreateUser(context.Background(), &UserRequest{
		FullName: "Nadia Rahman",
		Email:    "nadia@school.example",
		Role:     models.RoleTeacher,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID, "generated id expected when none supplied")
	assert.True(t, user.IsActive)
	repo.userRepo.AssertExpectations(t)
}

func TestOrgService_CreateUser_DuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	repo.userRepo.On("GetByEmail", mock.Anything, "taken@school.example").Return(&models.User{
		ID:    "existing",
		Email: "taken@school.example",
	}, nil)

	svc := newTestOrgService(repo)
	_, err := svc.CreateUser(context.Background(), &UserRequest{
		FullName: "Someone Else",
		Email:    "taken@school.example",
		Role:     models.RoleStudent,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	repo.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrgService_UpdateUser_SkipsEmailCheckWhenUnchanged(t *testing.T) {
	repo := newMockRepository()
	repo.userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{
		ID:       "u1",
		FullName: "Old Name",
		Email:    "same@school.example",
		Role:     models.RoleStudent,
		IsActive: true,
	}, nil)
	repo.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := newTestOrgService(repo)
	user, err := svc.UpdateUser(context.Background(), "u1", &UserRequest{
		FullName: "New Name",
		Email:    "same@school.example",
		Role:     models.RoleStudent,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	repo.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
