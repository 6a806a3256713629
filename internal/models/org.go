package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

type School struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null;size:200;uniqueIndex" validate:"required,min=1,max=200"`
	Address *string `json:"address" gorm:"size:500"`
	Phone   *string `json:"phone" gorm:"size:20"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Campuses []Campus `json:"campuses" gorm:"foreignKey:SchoolID"`
}

func (School) TableName() string {
	return "schools"
}

type Campus struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	SchoolID uint    `json:"school_id" gorm:"not null;index" validate:"required"`
	Name     string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	City     *string `json:"city" gorm:"size:100"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	School School `json:"school" gorm:"foreignKey:SchoolID"`
}

func (Campus) TableName() string {
	return "campuses"
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`
	CampusID *uint    `json:"campus_id" gorm:"index"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Campus *Campus `json:"campus,omitempty" gorm:"foreignKey:CampusID"`
}

func (User) TableName() string {
	return "users"
}
