package models

import (
	"encoding/json"
	"fmt"
)

// Per-variant answer payloads. The student client submits the payload matching
// the question's type; the grader decodes with DecodeAnswer using the same
// discriminant.

type DragDropAnswer struct {
	Placements map[string]string `json:"placements"` // zoneID -> itemID
	TimeSpent  int               `json:"time_spent"`
}

type MatchingAnswer struct {
	Matches   map[string]string `json:"matches"` // left pairID -> right pairID
	TimeSpent int               `json:"time_spent"`
}

type OrderingAnswer struct {
	Order     []string `json:"order"` // step IDs in submitted order
	TimeSpent int      `json:"time_spent"`
}

type CategorizationAnswer struct {
	Buckets   map[string][]string `json:"buckets"` // categoryID -> item IDs
	TimeSpent int                 `json:"time_spent"`
}

type FillBlanksAnswer struct {
	Selections map[string]string `json:"selections"` // blankID -> bank itemID
	TimeSpent  int               `json:"time_spent"`
}

// LabelAnswer holds typed label texts aligned to the diagram's Labels slice.
type LabelAnswer struct {
	Labels    []string `json:"labels"`
	TimeSpent int      `json:"time_spent"`
}

type ChoiceAnswer struct {
	OptionID  string `json:"option_id"`
	TimeSpent int    `json:"time_spent"`
}

type TrueFalseAnswer struct {
	Answer    bool `json:"answer"`
	TimeSpent int  `json:"time_spent"`
}

type FillBlankTextAnswer struct {
	Values    []string `json:"values"` // index-aligned to stored correct values
	TimeSpent int      `json:"time_spent"`
}

type TextAnswer struct {
	Text      string `json:"text"`
	TimeSpent int    `json:"time_spent"`
}

// DecodeAnswer unmarshals a raw submitted answer into the typed struct for the
// given question type. Diagram labeling accepts either a placements map or a
// typed-label array; a LabelAnswer is returned only when the payload carries
// labels.
func DecodeAnswer(t QuestionType, raw []byte) (interface{}, error) {
	var (
		answer interface{}
		err    error
	)

	switch t {
	case DragDrop:
		a := &DragDropAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case DiagramLabeling:
		la := &LabelAnswer{}
		if err := json.Unmarshal(raw, la); err == nil && len(la.Labels) > 0 {
			return la, nil
		}
		a := &DragDropAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case Matching:
		a := &MatchingAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case FillBlanks:
		a := &FillBlanksAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case Categorization:
		a := &CategorizationAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case Ordering:
		a := &OrderingAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case MultipleChoice:
		a := &ChoiceAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case TrueFalse:
		a := &TrueFalseAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case FillBlank:
		a := &FillBlankTextAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	case ShortAnswer, LongAnswer:
		a := &TextAnswer{}
		err = json.Unmarshal(raw, a)
		answer = a
	default:
		return nil, fmt.Errorf("unsupported question type: %s", t)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %s answer: %w", t, err)
	}
	return answer, nil
}
