// Package learning defines the canonical payload of a learning note: the
// structure the analysis requester asks the model for and the note
// repository persists.
package learning

// SchemaVersion identifies the payload layout. Bump it when a field changes meaning.
const SchemaVersion = "v1"

// FileType is the binary classification driving prompt selection.
type FileType string

const (
	FileTypeCode     FileType = "code"
	FileTypeMarkdown FileType = "markdown"
)

// Valid reports whether t is a known file type.
func (t FileType) Valid() bool {
	return t == FileTypeCode || t == FileTypeMarkdown
}

// Content is the analysis section of a study note.
// Code files fill TechStack/CodeExplanation, markdown files KeyTerms/SectionSummary.
type Content struct {
	SchemaVersion     string             `json:"schemaVersion,omitempty"`
	FileOverview      string             `json:"fileOverview,omitempty"`
	LearningPoints    []string           `json:"learningPoints,omitempty"`
	TechStack         []string           `json:"techStack,omitempty"`
	CodeExplanation   string             `json:"codeExplanation,omitempty"`
	KeyTerms          []string           `json:"keyTerms,omitempty"`
	SectionSummary    string             `json:"sectionSummary,omitempty"`
	CodeOptimizations *CodeOptimizations `json:"codeOptimizations,omitempty"`
	Quizzes           []QuizItem         `json:"quizzes,omitempty"`
}

// Suggestion is a single refactoring or optimization proposal.
type Suggestion struct {
	Issue       string `json:"issue"`
	Location    string `json:"location"`
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

// CodeOptimizations groups suggestions by concern. Lists are never null once
// normalized so clients can rely on a stable shape.
type CodeOptimizations struct {
	PerformanceImprovements     []Suggestion `json:"performanceImprovements"`
	ReadabilityImprovements     []Suggestion `json:"readabilityImprovements"`
	MaintainabilityImprovements []Suggestion `json:"maintainabilityImprovements"`
	BestPractices               []Suggestion `json:"bestPractices"`
	PotentialBugs               []Suggestion `json:"potentialBugs"`
}

// EmptyCodeOptimizations returns the default used when the model omits the section.
func EmptyCodeOptimizations() *CodeOptimizations {
	return &CodeOptimizations{
		PerformanceImprovements:     []Suggestion{},
		ReadabilityImprovements:     []Suggestion{},
		MaintainabilityImprovements: []Suggestion{},
		BestPractices:               []Suggestion{},
		PotentialBugs:               []Suggestion{},
	}
}

// Normalize replaces nil suggestion lists with empty ones.
func (o *CodeOptimizations) Normalize() {
	if o == nil {
		return
	}
	for _, list := range []*[]Suggestion{
		&o.PerformanceImprovements,
		&o.ReadabilityImprovements,
		&o.MaintainabilityImprovements,
		&o.BestPractices,
		&o.PotentialBugs,
	} {
		if *list == nil {
			*list = []Suggestion{}
		}
	}
}
