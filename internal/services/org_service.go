package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	qvalidator "github.com/ouppakdigital/quiz-service/internal/validator"
)

// orgService manages the school, campus and user records backing the admin
// surface.
type orgService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *qvalidator.Validator
}

func NewOrgService(repo repositories.Repository, logger *slog.Logger, v *qvalidator.Validator) OrgService {
	return &orgService{repo: repo, logger: logger, validator: v}
}

// ===== SCHOOLS =====

func (s *orgService) CreateSchool(ctx context.Context, req *SchoolRequest) (*models.School, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	school := &models.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.repo.School().Create(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}
	return school, nil
}

func (s *orgService) GetSchool(ctx context.Context, id uint) (*models.School, error) {
	school, err := s.repo.School().GetByIDWithCampuses(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}

func (s *orgService) UpdateSchool(ctx context.Context, id uint, req *SchoolRequest) (*models.School, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	school.Name = req.Name
	school.Address = req.Address
	school.Phone = req.Phone

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}
	return school, nil
}

func (s *orgService) DeleteSchool(ctx context.Context, id uint) error {
	campuses, err := s.repo.Campus().GetBySchool(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check school campuses: %w", err)
	}
	if len(campuses) > 0 {
		return NewBusinessRuleError("school_has_campuses", "school still has campuses attached", map[string]interface{}{
			"school_id": id,
			"campuses":  len(campuses),
		})
	}
	if err := s.repo.School().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("failed to delete school: %w", err)
	}
	return nil
}

func (s *orgService) ListSchools(ctx context.Context, limit, offset int) ([]*models.School, int64, error) {
	schools, total, err := s.repo.School().List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schools: %w", err)
	}
	return schools, total, nil
}

// ===== CAMPUSES =====

func (s *orgService) CreateCampus(ctx context.Context, req *CampusRequest) (*models.Campus, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.School().GetByID(ctx, req.SchoolID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	campus := &models.Campus{
		SchoolID: req.SchoolID,
		Name:     req.Name,
		City:     req.City,
	}
	if err := s.repo.Campus().Create(ctx, campus); err != nil {
		return nil, fmt.Errorf("failed to create campus: %w", err)
	}
	return campus, nil
}

func (s *orgService) GetCampus(ctx context.Context, id uint) (*models.Campus, error) {
	campus, err := s.repo.Campus().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCampusNotFound
		}
		return nil, fmt.Errorf("failed to get campus: %w", err)
	}
	return campus, nil
}

func (s *orgService) UpdateCampus(ctx context.Context, id uint, req *CampusRequest) (*models.Campus, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	campus, err := s.GetCampus(ctx, id)
	if err != nil {
		return nil, err
	}

	campus.SchoolID = req.SchoolID
	campus.Name = req.Name
	campus.City = req.City

	if err := s.repo.Campus().Update(ctx, campus); err != nil {
		return nil, fmt.Errorf("failed to update campus: %w", err)
	}
	return campus, nil
}

func (s *orgService) DeleteCampus(ctx context.Context, id uint) error {
	if err := s.repo.Campus().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCampusNotFound
		}
		return fmt.Errorf("failed to delete campus: %w", err)
	}
	return nil
}

func (s *orgService) ListCampuses(ctx context.Context, limit, offset int) ([]*models.Campus, int64, error) {
	campuses, total, err := s.repo.Campus().List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campuses: %w", err)
	}
	return campuses, total, nil
}

// ===== USERS =====

func (s *orgService) CreateUser(ctx context.Context, req *UserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if existing, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	} else if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &models.User{
		ID:       id,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		CampusID: req.CampusID,
		IsActive: active,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *orgService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *orgService) UpdateUser(ctx context.Context, id string, req *UserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != user.Email {
		if existing, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, ErrDuplicateEmail
		} else if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	user.FullName = req.FullName
	user.Email = req.Email
	user.Role = req.Role
	user.CampusID = req.CampusID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *orgService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *orgService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
