package learning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mc(question string, answer int) QuizItem {
	return QuizItem{
		Type:        QuizMultipleChoice,
		Question:    question,
		Options:     []string{"a", "b", "c", "d"},
		AnswerIndex: answer,
		Explanation: "because",
	}
}

func validSet() []QuizItem {
	return []QuizItem{
		mc("q1", 0),
		{Type: QuizEssay, Question: "q5", SampleAnswer: "sample", KeyPoints: []string{"k1"}},
		mc("q2", 3),
		{Type: QuizShortAnswer, Question: "q4", Answer: "closure", AcceptableAnswers: []string{"closures"}},
		mc("q3", 1),
	}
}

func TestQuizItemDecodesEachVariant(t *testing.T) {
	raw := `[
		{"type":"multipleChoice","question":"q","options":["a","b","c","d"],"answer":2,"explanation":"e"},
		{"type":"shortAnswer","question":"q","answer":"map","acceptableAnswers":["Map","hash map"],"explanation":"e"},
		{"type":"essay","question":"q","sampleAnswer":"s","keyPoints":["k1","k2"],"explanation":"guide"}
	]`

	var items []QuizItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 3)

	assert.Equal(t, QuizMultipleChoice, items[0].Type)
	assert.Equal(t, 2, items[0].AnswerIndex)
	assert.Len(t, items[0].Options, 4)

	assert.Equal(t, "map", items[1].Answer)
	assert.Equal(t, []string{"Map", "hash map"}, items[1].AcceptableAnswers)

	assert.Equal(t, "s", items[2].SampleAnswer)
	assert.Equal(t, "guide", items[2].Explanation)
}

func TestQuizItemEncodesAnswerByVariant(t *testing.T) {
	out, err := json.Marshal([]QuizItem{
		mc("q", 1),
		{Type: QuizShortAnswer, Question: "q", Answer: "slice"},
	})
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, float64(1), generic[0]["answer"])
	assert.Equal(t, "slice", generic[1]["answer"])
	assert.Equal(t, []any{}, generic[1]["acceptableAnswers"])
	_, hasOptions := generic[1]["options"]
	assert.False(t, hasOptions)
}

func TestQuizItemRejectsUnknownType(t *testing.T) {
	var item QuizItem
	err := json.Unmarshal([]byte(`{"type":"trueFalse","question":"q"}`), &item)
	assert.ErrorIs(t, err, ErrUnknownQuizType)
}

func TestValidateQuizSet(t *testing.T) {
	require.NoError(t, ValidateQuizSet(validSet()))

	tests := []struct {
		name   string
		mutate func([]QuizItem) []QuizItem
	}{
		{name: "too few", mutate: func(s []QuizItem) []QuizItem { return s[:4] }},
		{name: "wrong composition", mutate: func(s []QuizItem) []QuizItem {
			s[1] = mc("extra", 0)
			return s
		}},
		{name: "three options", mutate: func(s []QuizItem) []QuizItem {
			s[0].Options = s[0].Options[:3]
			return s
		}},
		{name: "answer out of range", mutate: func(s []QuizItem) []QuizItem {
			s[2].AnswerIndex = 4
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateQuizSet(tt.mutate(validSet())))
		})
	}
}

func TestCodeOptimizationsNormalize(t *testing.T) {
	opt := &CodeOptimizations{BestPractices: []Suggestion{{Issue: "x"}}}
	opt.Normalize()

	out, err := json.Marshal(opt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"performanceImprovements": [],
		"readabilityImprovements": [],
		"maintainabilityImprovements": [],
		"bestPractices": [{"issue":"x","location":"","suggestion":"","explanation":""}],
		"potentialBugs": []
	}`, string(out))

	assert.Equal(t, EmptyCodeOptimizations(), func() *CodeOptimizations {
		o := &CodeOptimizations{}
		o.Normalize()
		return o
	}())
}
