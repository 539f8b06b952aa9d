package notes

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenote-backend/internal/shared/errs"
)

func TestDecodeDocumentKeepsUnknownFieldsAndDropsReserved(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"userId": "u1",
		"id": "spoofed",
		"createdAt": "2020-01-01T00:00:00Z",
		"title": "Closures",
		"fileName": "a.js",
		"learningPoints": ["scope", "capture"],
		"repoUrl": "https://example.com/r",
		"tags": {"lang": "js"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Closures", doc.Title)
	assert.Equal(t, "a.js", doc.FileName)
	assert.Equal(t, []string{"scope", "capture"}, doc.LearningPoints)
	assert.JSONEq(t, `"https://example.com/r"`, string(doc.Extra["repoUrl"]))
	assert.JSONEq(t, `{"lang":"js"}`, string(doc.Extra["tags"]))
	for _, key := range []string{"userId", "id", "createdAt"} {
		assert.NotContains(t, doc.Extra, key)
	}

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, "https://example.com/r", generic["repoUrl"])
	assert.NotContains(t, generic, "userId")
}

func TestDecodeDocumentRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not an object", body: `["a"]`},
		{name: "title number", body: `{"title": 5}`},
		{name: "learning points string", body: `{"learningPoints": "one"}`},
		{name: "unknown quiz type", body: `{"quizzes": [{"type": "trueFalse", "question": "q"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValidation))
		})
	}
}

func TestPatchApplyMergesTopLevel(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"title":"old","fileName":"a.go","fileOverview":"kept","custom":1}`))
	require.NoError(t, err)

	patch, err := DecodePatch([]byte(`{"title":"new","userId":"u1","custom":2}`))
	require.NoError(t, err)
	assert.NotContains(t, patch, "userId")

	merged, err := patch.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, "new", merged.Title)
	assert.Equal(t, "a.go", merged.FileName)
	assert.Equal(t, "kept", merged.FileOverview)
	assert.JSONEq(t, `2`, string(merged.Extra["custom"]))
}

func TestNoteMarshalFlattensBody(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.FixedZone("KST", 9*3600))
	n := Note{
		ID:        "n1",
		UserID:    "u1",
		Body:      Document{Title: "t", FileName: "a.js"},
		CreatedAt: &created,
	}
	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "n1",
		"userId": "u1",
		"title": "t",
		"fileName": "a.js",
		"createdAt": "2024-03-01T00:30:00.123Z",
		"updatedAt": null
	}`, string(out))
}
