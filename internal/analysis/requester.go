package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/llm"
	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/telemetry"
	"codenote-backend/internal/shared/util"
)

const (
	temperature = 0.7
	maxTokens   = 4000
)

// Requester turns one file into a learning.Content through a single completion call.
type Requester struct {
	Client llm.Client
}

// NewRequester constructs a Requester.
func NewRequester(client llm.Client) *Requester {
	return &Requester{Client: client}
}

// Analyze builds the prompt, calls the model and post-processes the reply.
// Every failure comes back as an errs.ErrAnalysis; provider detail is only logged.
func (r *Requester) Analyze(ctx context.Context, fileName, fileContent string) (learning.Content, error) {
	messages, err := BuildMessages(fileName, fileContent)
	if err != nil {
		return learning.Content{}, r.fail(fileName, fileContent, "prompt", err)
	}

	raw, err := r.Client.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return learning.Content{}, r.fail(fileName, fileContent, "request", err)
	}

	content, err := parseContent(fileName, raw)
	if err != nil {
		return learning.Content{}, r.fail(fileName, fileContent, "parse", err)
	}
	return content, nil
}

func parseContent(fileName, raw string) (learning.Content, error) {
	var content learning.Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return learning.Content{}, fmt.Errorf("decode model reply: %w", err)
	}
	if WantsOptimizations(fileName) {
		if content.CodeOptimizations == nil {
			content.CodeOptimizations = learning.EmptyCodeOptimizations()
		}
		content.CodeOptimizations.Normalize()
	}
	if err := learning.ValidateQuizSet(content.Quizzes); err != nil {
		return learning.Content{}, err
	}
	content.SchemaVersion = learning.SchemaVersion
	return content, nil
}

func (r *Requester) fail(fileName, fileContent, stage string, cause error) error {
	telemetry.Error("analysis.failed", map[string]any{
		"file_name":      fileName,
		"content_sha256": util.Digest(fileContent),
		"stage":          stage,
		"error":          cause,
	})
	return errs.Analysis("failed to analyze file", cause)
}
