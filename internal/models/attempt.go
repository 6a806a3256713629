package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptNotStarted AttemptStatus = "NotStarted"
	AttemptInProgress AttemptStatus = "InProgress"
	AttemptSubmitted  AttemptStatus = "Submitted"
)

type AttemptEndReason string

const (
	AttemptEndReasonSubmitted AttemptEndReason = "submitted"
	AttemptEndReasonTimeout   AttemptEndReason = "timeout"
)

// QuizAttempt is one student's pass through a quiz. Once Status reaches
// Submitted the record is immutable; there is no edit or delete path.
type QuizAttempt struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	QuizID    uint   `json:"quiz_id" gorm:"not null;index"`
	QuizTitle string `json:"quiz_title" gorm:"size:200"`
	StudentID string `json:"student_id" gorm:"not null;size:255;index"`

	Status    AttemptStatus     `json:"status" gorm:"default:InProgress;index"`
	StartedAt time.Time         `json:"started_at"`
	EndTime   *time.Time        `json:"end_time"` // countdown deadline, nil when untimed
	EndReason *AttemptEndReason `json:"end_reason"`

	// Answers maps question ID (as a string key) to the raw submitted
	// per-variant answer payload.
	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"`

	Score       int        `json:"score"`
	TotalMarks  int        `json:"total_marks"`
	Percentage  int        `json:"percentage"`
	TimeSpent   int        `json:"time_spent"` // seconds, wall clock start to submit or expiry
	SubmittedAt *time.Time `json:"submitted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quiz Quiz `json:"quiz" gorm:"foreignKey:QuizID"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// ItemVerdict is the per-question grading outcome inside an attempt result.
type ItemVerdict struct {
	QuestionID uint         `json:"question_id"`
	Type       QuestionType `json:"type"`
	Marks      int          `json:"marks"`
	Correct    bool         `json:"correct"`
	Answered   bool         `json:"answered"`
	AutoGraded bool         `json:"auto_graded"`
}
