package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/llm"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// ResponseLanguage is the natural language every analysis is written in.
const ResponseLanguage = "Korean"

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

type promptData struct {
	WantsOptimizations bool
	Language           string
	QuizCount          int
	MultipleChoice     int
	ShortAnswer        int
	Essay              int
}

// SystemPrompt renders the instruction template for fileName.
func SystemPrompt(fileName string) (string, error) {
	name := "code.tmpl"
	if Classify(fileName) == learning.FileTypeMarkdown {
		name = "markdown.tmpl"
	}
	data := promptData{
		WantsOptimizations: WantsOptimizations(fileName),
		Language:           ResponseLanguage,
		QuizCount:          5,
		MultipleChoice:     3,
		ShortAnswer:        1,
		Essay:              1,
	}
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// UserPrompt frames the file for the model.
func UserPrompt(fileName, fileContent string) string {
	return "File name: " + fileName + "\n\nFile content:\n" + fileContent
}

// BuildMessages returns the system and user turns for one analysis.
func BuildMessages(fileName, fileContent string) ([]llm.Message, error) {
	system, err := SystemPrompt(fileName)
	if err != nil {
		return nil, err
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: UserPrompt(fileName, fileContent)},
	}, nil
}
