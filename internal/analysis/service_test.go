package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenote-backend/internal/llm"
	"codenote-backend/internal/shared/errs"
)

const quizReply = `"quizzes": [
	{"type":"multipleChoice","question":"q1","options":["a","b","c","d"],"answer":0,"explanation":"e"},
	{"type":"multipleChoice","question":"q2","options":["a","b","c","d"],"answer":1,"explanation":"e"},
	{"type":"multipleChoice","question":"q3","options":["a","b","c","d"],"answer":2,"explanation":"e"},
	{"type":"shortAnswer","question":"q4","answer":"x","acceptableAnswers":["y"],"explanation":"e"},
	{"type":"essay","question":"q5","sampleAnswer":"s","keyPoints":["k"],"explanation":"g"}
]`

type fakeClient struct {
	reply string
	err   error
	delay time.Duration
	// honorCtx makes the fake return as soon as the context ends.
	honorCtx  bool
	calls     atomic.Int32
	cancelled atomic.Bool
	last      llm.CompletionRequest
}

func (f *fakeClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.calls.Add(1)
	f.last = req
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		if f.honorCtx {
			select {
			case <-timer.C:
			case <-ctx.Done():
				f.cancelled.Store(true)
				return "", ctx.Err()
			}
		} else {
			<-timer.C
		}
	}
	return f.reply, f.err
}

func newService(client llm.Client, budget time.Duration) *Service {
	return NewService(NewRequester(client), budget)
}

func TestAnalyzeBackfillsOptimizationsForScriptFiles(t *testing.T) {
	client := &fakeClient{reply: `{"fileOverview":"helpers","learningPoints":["a"],` + quizReply + `}`}

	content, err := newService(client, time.Second).Analyze(context.Background(), "utils.ts", "export const x = 1")
	require.NoError(t, err)
	require.NotNil(t, content.CodeOptimizations)
	assert.NotNil(t, content.CodeOptimizations.PerformanceImprovements)
	assert.Empty(t, content.CodeOptimizations.PotentialBugs)
	assert.Equal(t, "v1", content.SchemaVersion)
	assert.Len(t, content.Quizzes, 5)

	require.Len(t, client.last.Messages, 2)
	assert.Equal(t, llm.RoleSystem, client.last.Messages[0].Role)
	assert.Contains(t, client.last.Messages[0].Content, "codeOptimizations")
	assert.Equal(t, "File name: utils.ts\n\nFile content:\nexport const x = 1", client.last.Messages[1].Content)
	assert.InDelta(t, 0.7, client.last.Temperature, 0.001)
	assert.Equal(t, 4000, client.last.MaxTokens)
}

func TestAnalyzeMarkdownHasNoOptimizations(t *testing.T) {
	client := &fakeClient{reply: `{"fileOverview":"doc","keyTerms":["k"],"sectionSummary":"s",` + quizReply + `}`}

	content, err := newService(client, time.Second).Analyze(context.Background(), "README.md", "# Title")
	require.NoError(t, err)
	assert.Nil(t, content.CodeOptimizations)
	assert.NotContains(t, client.last.Messages[0].Content, "codeOptimizations")
	assert.Equal(t, []string{"k"}, content.KeyTerms)
}

func TestAnalyzeRejectsBadReplies(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{name: "transport error", client: &fakeClient{err: errors.New("openai response error 500: upstream body")}},
		{name: "malformed json", client: &fakeClient{reply: `{"fileOverview":`}},
		{name: "wrong quiz composition", client: &fakeClient{reply: `{"quizzes":[]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(tt.client, time.Second).Analyze(context.Background(), "main.go", "package main")
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrAnalysis)
			assert.NotContains(t, errs.Message(err, ""), "upstream body")
		})
	}
}

func TestAnalyzeTimesOutEvenIfCallLaterSucceeds(t *testing.T) {
	client := &fakeClient{
		reply: `{"fileOverview":"late",` + quizReply + `}`,
		delay: 200 * time.Millisecond,
	}

	start := time.Now()
	_, err := newService(client, 20*time.Millisecond).Analyze(context.Background(), "main.go", "package main")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTimeout)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestAnalyzeTimeoutCancelsOutboundCall(t *testing.T) {
	client := &fakeClient{delay: 5 * time.Second, honorCtx: true}

	_, err := newService(client, 20*time.Millisecond).Analyze(context.Background(), "main.go", "package main")
	require.ErrorIs(t, err, errs.ErrTimeout)
	assert.Eventually(t, client.cancelled.Load, time.Second, 5*time.Millisecond)
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	svc := NewService(nil, time.Second)

	_, err := svc.Analyze(context.Background(), "x.py", "print(1)")
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestAnalyzeRequiresFields(t *testing.T) {
	client := &fakeClient{}
	svc := newService(client, time.Second)

	_, err := svc.Analyze(context.Background(), "", "x")
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Analyze(context.Background(), "a.go", "")
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Zero(t, client.calls.Load())
}
