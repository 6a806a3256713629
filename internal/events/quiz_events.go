package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ouppakdigital/quiz-service/internal/models"
)

// EventType represents different types of quiz notification events
type EventType string

const (
	// Quiz events
	EventQuizPublished EventType = "quiz.published"
	EventQuizArchived  EventType = "quiz.archived"

	// Question events
	EventQuestionCreated EventType = "question.created"
	EventQuestionDeleted EventType = "question.deleted"

	// Attempt events
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventAttemptTimedOut  EventType = "attempt.timed_out"
)

// NotificationEvent is the base envelope for all published events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent builds an envelope with the service defaults filled in.
func NewEvent(t EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data:      data,
	}
}

// Quiz event payloads

type QuizPublishedEvent struct {
	QuizID    uint              `json:"quiz_id"`
	QuizTitle string            `json:"quiz_title"`
	Format    models.QuizFormat `json:"format"`
	Duration  int               `json:"duration"`
	CreatorID string            `json:"creator_id"`
}

type QuizArchivedEvent struct {
	QuizID     uint      `json:"quiz_id"`
	QuizTitle  string    `json:"quiz_title"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Question event payloads

type QuestionCreatedEvent struct {
	QuestionID uint                `json:"question_id"`
	Type       models.QuestionType `json:"type"`
	Grade      string              `json:"grade,omitempty"`
	Subject    string              `json:"subject,omitempty"`
	CreatorID  string              `json:"creator_id"`
}

type QuestionDeletedEvent struct {
	QuestionID uint                `json:"question_id"`
	Type       models.QuestionType `json:"type"`
	DeletedBy  string              `json:"deleted_by"`
}

// Attempt event payloads

type AttemptStartedEvent struct {
	AttemptID uint      `json:"attempt_id"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	StudentID string    `json:"student_id"`
	StartedAt time.Time `json:"started_at"`
	TimeLimit *int      `json:"time_limit,omitempty"` // minutes
}

type AttemptSubmittedEvent struct {
	AttemptID   uint                    `json:"attempt_id"`
	QuizID      uint                    `json:"quiz_id"`
	QuizTitle   string                  `json:"quiz_title"`
	StudentID   string                  `json:"student_id"`
	SubmittedAt time.Time               `json:"submitted_at"`
	EndReason   models.AttemptEndReason `json:"end_reason"`
	Score       int                     `json:"score"`
	TotalMarks  int                     `json:"total_marks"`
	Percentage  int                     `json:"percentage"`
}
