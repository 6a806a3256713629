package postgres

import (
	"context"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type SchoolPostgreSQL struct {
	db *gorm.DB
}

func NewSchoolPostgreSQL(db *gorm.DB) repositories.SchoolRepository {
	return &SchoolPostgreSQL{db: db}
}

func (s *SchoolPostgreSQL) Create(ctx context.Context, school *models.School) error {
	return s.db.WithContext(ctx).Create(school).Error
}

func (s *SchoolPostgreSQL) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	if err := s.db.WithContext(ctx).First(&school, id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolPostgreSQL) GetByIDWithCampuses(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	if err := s.db.WithContext(ctx).Preload("Campuses").First(&school, id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolPostgreSQL) Update(ctx context.Context, school *models.School) error {
	return s.db.WithContext(ctx).Save(school).Error
}

func (s *SchoolPostgreSQL) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.School{}, id).Error
}

func (s *SchoolPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.School, int64, error) {
	var schools []*models.School
	var total int64

	query := s.db.WithContext(ctx).Model(&models.School{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("name ASC"), limit, offset)
	if err := query.Find(&schools).Error; err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

type CampusPostgreSQL struct {
	db *gorm.DB
}

func NewCampusPostgreSQL(db *gorm.DB) repositories.CampusRepository {
	return &CampusPostgreSQL{db: db}
}

func (c *CampusPostgreSQL) Create(ctx context.Context, campus *models.Campus) error {
	return c.db.WithContext(ctx).Create(campus).Error
}

func (c *CampusPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Campus, error) {
	var campus models.Campus
	if err := c.db.WithContext(ctx).Preload("School").First(&campus, id).Error; err != nil {
		return nil, err
	}
	return &campus, nil
}

func (c *CampusPostgreSQL) Update(ctx context.Context, campus *models.Campus) error {
	return c.db.WithContext(ctx).Save(campus).Error
}

func (c *CampusPostgreSQL) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&models.Campus{}, id).Error
}

func (c *CampusPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.Campus, int64, error) {
	var campuses []*models.Campus
	var total int64

	query := c.db.WithContext(ctx).Model(&models.Campus{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Preload("School").Order("name ASC"), limit, offset)
	if err := query.Find(&campuses).Error; err != nil {
		return nil, 0, err
	}
	return campuses, total, nil
}

func (c *CampusPostgreSQL) GetBySchool(ctx context.Context, schoolID uint) ([]*models.Campus, error) {
	var campuses []*models.Campus
	if err := c.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name ASC").
		Find(&campuses).Error; err != nil {
		return nil, err
	}
	return campuses, nil
}

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id string) error {
	return u.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := u.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.CampusID != nil {
		query = query.Where("campus_id = ?", *filters.CampusID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("full_name ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
