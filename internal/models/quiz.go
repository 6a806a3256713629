package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizFormat string

const (
	// FormatOnline quizzes can be taken through the attempt flow.
	FormatOnline QuizFormat = "online"
	// FormatPaper quizzes exist only for printing; the attempt flow rejects
	// them as "no quiz found".
	FormatPaper QuizFormat = "paper"
)

type QuizStatus string

const (
	QuizDraft     QuizStatus = "Draft"
	QuizPublished QuizStatus = "Published"
	QuizArchived  QuizStatus = "Archived"
)

type Quiz struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Format      QuizFormat `json:"format" gorm:"default:online;index" validate:"omitempty,oneof=online paper"`
	Status      QuizStatus `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Published Archived"`

	// Duration is the countdown length in minutes; zero means untimed.
	Duration int `json:"duration" validate:"min=0,max=300"`

	Grade   string `json:"grade" gorm:"size:50;index"`
	Subject string `json:"subject" gorm:"size:100;index"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Items []QuizItem `json:"items" gorm:"foreignKey:QuizID"`

	// Computed, not stored.
	TotalMarks int `json:"total_marks" gorm:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizItem places a question in a quiz at a fixed position with a mark value.
type QuizItem struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	QuizID     uint `json:"quiz_id" gorm:"not null;index"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`
	Order      int  `json:"order" gorm:"not null"`
	Marks      int  `json:"marks" gorm:"default:1" validate:"min=1,max=100"`

	Question *Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (QuizItem) TableName() string {
	return "quiz_items"
}
