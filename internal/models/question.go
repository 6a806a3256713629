package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	// Interactive types built by the authoring editor.
	DragDrop        QuestionType = "drag_drop"
	DiagramLabeling QuestionType = "diagram_labeling"
	Matching        QuestionType = "matching"
	FillBlanks      QuestionType = "fill_blanks"
	Categorization  QuestionType = "categorization"
	Ordering        QuestionType = "ordering"

	// Plain types.
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlank      QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
	LongAnswer     QuestionType = "long_answer"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// IsValid reports whether the value is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case DragDrop, DiagramLabeling, Matching, FillBlanks, Categorization, Ordering,
		MultipleChoice, TrueFalse, FillBlank, ShortAnswer, LongAnswer:
		return true
	default:
		return false
	}
}

// IsAutoGradable reports whether answers for this type can be scored without
// a teacher. Short and long answers are always treated as correct instead.
func (t QuestionType) IsAutoGradable() bool {
	switch t {
	case ShortAnswer, LongAnswer:
		return false
	default:
		return true
	}
}

// IsInteractive reports whether the type is built by the interactive
// authoring editor (as opposed to the plain question form).
func (t QuestionType) IsInteractive() bool {
	switch t {
	case DragDrop, DiagramLabeling, Matching, FillBlanks, Categorization, Ordering:
		return true
	default:
		return false
	}
}

type Question struct {
	ID     uint         `json:"id" gorm:"primaryKey"`
	Type   QuestionType `json:"type" gorm:"not null;index" validate:"required,question_type"`
	Text   string       `json:"text" gorm:"not null;type:text" validate:"required,min=1,max=500"`
	Points int          `json:"points" gorm:"default:1" validate:"min=1,max=100"`

	// Variant content, shape determined by Type.
	Content datatypes.JSON `json:"content" gorm:"type:jsonb"`

	// Placement metadata, used only for catalog filtering.
	Grade      string          `json:"grade" gorm:"size:50;index"`
	Subject    string          `json:"subject" gorm:"size:100;index"`
	Book       string          `json:"book" gorm:"size:200"`
	Chapter    string          `json:"chapter" gorm:"size:200"`
	SLO        string          `json:"slo" gorm:"size:200"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"size:20" validate:"omitempty,difficulty_level"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// FeedbackConfig controls result presentation only; it never affects the
// correctness computation.
type FeedbackConfig struct {
	ShowInstant        bool   `json:"show_instant"`
	CorrectMessage     string `json:"correct_message"`
	IncorrectMessage   string `json:"incorrect_message"`
	ShowCorrectAnswers bool   `json:"show_correct_answers"`
}

type MediaKind string

const (
	MediaText  MediaKind = "text"
	MediaImage MediaKind = "image"
)

type LayoutMode string

const (
	LayoutText  LayoutMode = "text"
	LayoutImage LayoutMode = "image"
)

type ZoneShape string

const (
	ShapeRect    ZoneShape = "rect"
	ShapeEllipse ZoneShape = "ellipse"
)

// DragItem is a draggable entity shown to the student.
type DragItem struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     MediaKind `json:"kind"`
	ImageURL string    `json:"image_url,omitempty"`
}

// DropZone is a target a drag item can be placed on. Text-mode zones use
// Order and Description; image-mode zones use the percentage geometry fields.
type DropZone struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	CorrectItemID string `json:"correct_item_id"`

	// Text layout.
	Order       int    `json:"order,omitempty"`
	Description string `json:"description,omitempty"`

	// Image layout, all values are percentages of the background image box.
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Shape  ZoneShape `json:"shape,omitempty"`
}

// DiagramLabel is a typed-label slot for diagram questions graded by text
// entry instead of dragging.
type DiagramLabel struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// DragDropContent is shared by the drag_drop and diagram_labeling variants.
// Diagram labeling always uses LayoutImage and may additionally carry typed
// Labels.
type DragDropContent struct {
	Prompt          string          `json:"prompt"`
	LayoutMode      LayoutMode      `json:"layout_mode"`
	BackgroundImage string          `json:"background_image,omitempty"`
	ShowDropZones   bool            `json:"show_drop_zones"`
	DragItems       []DragItem      `json:"drag_items"`
	DropZones       []DropZone      `json:"drop_zones"`
	Labels          []DiagramLabel  `json:"labels,omitempty"`
	Feedback        *FeedbackConfig `json:"feedback,omitempty"`
}

// MatchPair stores a left/right pairing as a single record; the pair's own ID
// is the correctness key for both sides.
type MatchPair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingContent struct {
	Prompt string      `json:"prompt"`
	Pairs  []MatchPair `json:"pairs"`
}

type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentBlank SegmentKind = "blank"
)

// Segment is one piece of the fill-blanks sentence, either literal text or a
// a blank slot referencing a Blank record.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Text    string      `json:"text,omitempty"`
	BlankID string      `json:"blank_id,omitempty"`
}

// BankItem is a word-bank entry the student drags into blanks.
type BankItem struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     MediaKind `json:"kind"`
	ImageURL string    `json:"image_url,omitempty"`
}

type Blank struct {
	ID            string `json:"id"`
	CorrectItemID string `json:"correct_item_id"`
}

type FillBlanksContent struct {
	Prompt      string          `json:"prompt"`
	Segments    []Segment       `json:"segments"`
	Bank        []BankItem      `json:"bank"`
	Blanks      []Blank         `json:"blanks"`
	ShuffleBank bool            `json:"shuffle_bank"`
	Feedback    *FeedbackConfig `json:"feedback,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type CategoryItem struct {
	ID                string    `json:"id"`
	Label             string    `json:"label"`
	Kind              MediaKind `json:"kind"`
	ImageURL          string    `json:"image_url,omitempty"`
	CorrectCategoryID string    `json:"correct_category_id"`
}

type CategorizationContent struct {
	Prompt       string          `json:"prompt"`
	Categories   []Category      `json:"categories"`
	Items        []CategoryItem  `json:"items"`
	ShuffleItems bool            `json:"shuffle_items"`
	Feedback     *FeedbackConfig `json:"feedback,omitempty"`
}

// OrderStep is one step of a sequence; array position in
// OrderingContent.Steps defines the correct order.
type OrderStep struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type OrderingContent struct {
	Prompt string      `json:"prompt"`
	Steps  []OrderStep `json:"steps"`
}

type ChoiceOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type MultipleChoiceContent struct {
	Options         []ChoiceOption `json:"options"`
	CorrectOptionID string         `json:"correct_option_id"`
}

type TrueFalseContent struct {
	CorrectAnswer bool `json:"correct_answer"`
}

// FillBlankTextContent is the plain (non-interactive) fill-in-the-blank
// variant: typed answers compared against stored values, index-aligned.
type FillBlankTextContent struct {
	CorrectValues []string `json:"correct_values"`
}

// FreeTextContent backs short_answer and long_answer; never auto-graded.
type FreeTextContent struct {
	SampleAnswer string `json:"sample_answer,omitempty"`
	MaxLength    int    `json:"max_length,omitempty"`
}

// DecodeContent unmarshals raw question content into the typed struct for the
// given question type.
func DecodeContent(t QuestionType, raw []byte) (interface{}, error) {
	var (
		content interface{}
		err     error
	)

	switch t {
	case DragDrop, DiagramLabeling:
		c := &DragDropContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case Matching:
		c := &MatchingContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case FillBlanks:
		c := &FillBlanksContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case Categorization:
		c := &CategorizationContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case Ordering:
		c := &OrderingContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case MultipleChoice:
		c := &MultipleChoiceContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case TrueFalse:
		c := &TrueFalseContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case FillBlank:
		c := &FillBlankTextContent{}
		err = json.Unmarshal(raw, c)
		content = c
	case ShortAnswer, LongAnswer:
		c := &FreeTextContent{}
		err = json.Unmarshal(raw, c)
		content = c
	default:
		return nil, fmt.Errorf("unsupported question type: %s", t)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %s content: %w", t, err)
	}
	return content, nil
}
