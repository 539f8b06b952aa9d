package learning

import (
	"encoding/json"
	"errors"
	"fmt"
)

// QuizType tags the variant of a QuizItem.
type QuizType string

const (
	QuizMultipleChoice QuizType = "multipleChoice"
	QuizShortAnswer    QuizType = "shortAnswer"
	QuizEssay          QuizType = "essay"
)

const (
	quizSetSize          = 5
	multipleChoiceCount  = 3
	shortAnswerCount     = 1
	essayCount           = 1
	multipleChoiceOption = 4
)

// ErrUnknownQuizType is returned when a quiz item carries an unrecognized type tag.
var ErrUnknownQuizType = errors.New("unknown quiz type")

// QuizItem is one question. Which fields are meaningful depends on Type:
//
//	multipleChoice: Options, AnswerIndex
//	shortAnswer:    Answer, AcceptableAnswers
//	essay:          SampleAnswer, KeyPoints
//
// Question and Explanation are shared; for essays Explanation is the grading guide.
type QuizItem struct {
	Type              QuizType
	Question          string
	Explanation       string
	Options           []string
	AnswerIndex       int
	Answer            string
	AcceptableAnswers []string
	SampleAnswer      string
	KeyPoints         []string
}

type multipleChoiceJSON struct {
	Type        QuizType `json:"type"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

type shortAnswerJSON struct {
	Type              QuizType `json:"type"`
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
	Explanation       string   `json:"explanation"`
}

type essayJSON struct {
	Type         QuizType `json:"type"`
	Question     string   `json:"question"`
	SampleAnswer string   `json:"sampleAnswer"`
	KeyPoints    []string `json:"keyPoints"`
	Explanation  string   `json:"explanation"`
}

// MarshalJSON emits only the fields of the item's variant.
func (q QuizItem) MarshalJSON() ([]byte, error) {
	switch q.Type {
	case QuizMultipleChoice:
		return json.Marshal(multipleChoiceJSON{
			Type:        q.Type,
			Question:    q.Question,
			Options:     nonNil(q.Options),
			Answer:      q.AnswerIndex,
			Explanation: q.Explanation,
		})
	case QuizShortAnswer:
		return json.Marshal(shortAnswerJSON{
			Type:              q.Type,
			Question:          q.Question,
			Answer:            q.Answer,
			AcceptableAnswers: nonNil(q.AcceptableAnswers),
			Explanation:       q.Explanation,
		})
	case QuizEssay:
		return json.Marshal(essayJSON{
			Type:         q.Type,
			Question:     q.Question,
			SampleAnswer: q.SampleAnswer,
			KeyPoints:    nonNil(q.KeyPoints),
			Explanation:  q.Explanation,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuizType, q.Type)
	}
}

// UnmarshalJSON decodes the variant named by the "type" tag.
func (q *QuizItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type QuizType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case QuizMultipleChoice:
		var v multipleChoiceJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*q = QuizItem{
			Type:        v.Type,
			Question:    v.Question,
			Options:     v.Options,
			AnswerIndex: v.Answer,
			Explanation: v.Explanation,
		}
	case QuizShortAnswer:
		var v shortAnswerJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*q = QuizItem{
			Type:              v.Type,
			Question:          v.Question,
			Answer:            v.Answer,
			AcceptableAnswers: v.AcceptableAnswers,
			Explanation:       v.Explanation,
		}
	case QuizEssay:
		var v essayJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*q = QuizItem{
			Type:         v.Type,
			Question:     v.Question,
			SampleAnswer: v.SampleAnswer,
			KeyPoints:    v.KeyPoints,
			Explanation:  v.Explanation,
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuizType, head.Type)
	}
	return nil
}

// Validate checks the per-variant constraints of a single item.
func (q QuizItem) Validate() error {
	switch q.Type {
	case QuizMultipleChoice:
		if len(q.Options) != multipleChoiceOption {
			return fmt.Errorf("multiple choice question needs %d options, got %d", multipleChoiceOption, len(q.Options))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= multipleChoiceOption {
			return fmt.Errorf("multiple choice answer index %d out of range", q.AnswerIndex)
		}
	case QuizShortAnswer, QuizEssay:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuizType, q.Type)
	}
	return nil
}

// ValidateQuizSet enforces the fixed composition of a generated quiz:
// five items, three multiple choice, one short answer and one essay, in any order.
func ValidateQuizSet(items []QuizItem) error {
	if len(items) != quizSetSize {
		return fmt.Errorf("expected %d quiz items, got %d", quizSetSize, len(items))
	}
	counts := make(map[QuizType]int, 3)
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("quiz %d: %w", i, err)
		}
		counts[item.Type]++
	}
	if counts[QuizMultipleChoice] != multipleChoiceCount ||
		counts[QuizShortAnswer] != shortAnswerCount ||
		counts[QuizEssay] != essayCount {
		return fmt.Errorf("unexpected quiz composition: %d multiple choice, %d short answer, %d essay",
			counts[QuizMultipleChoice], counts[QuizShortAnswer], counts[QuizEssay])
	}
	return nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
