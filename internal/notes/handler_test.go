package notes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"codenote-backend/internal/bootstrap"
	"codenote-backend/internal/shared/config"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:3000"},
	}, nil)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestNoteCreateThenList(t *testing.T) {
	router := newRouter(t)

	resp := do(t, router, http.MethodPost, "/api/note", `{"userId":"u1","title":"t","fileName":"a.js"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id, got empty")
	}

	respList := do(t, router, http.MethodGet, "/api/note?userId=u1", "")
	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var list struct {
		Notes []struct {
			ID        string  `json:"id"`
			UserID    string  `json:"userId"`
			Title     string  `json:"title"`
			CreatedAt *string `json:"createdAt"`
			UpdatedAt *string `json:"updatedAt"`
		} `json:"notes"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(list.Notes))
	}
	got := list.Notes[0]
	if got.ID != created.ID || got.Title != "t" || got.UserID != "u1" {
		t.Fatalf("unexpected note: %+v", got)
	}
	if got.CreatedAt == nil || got.UpdatedAt == nil || *got.CreatedAt != *got.UpdatedAt {
		t.Fatalf("expected equal timestamps at creation, got %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestNoteLifecycle(t *testing.T) {
	router := newRouter(t)

	resp := do(t, router, http.MethodPost, "/api/note", `{"userId":"u1","title":"t","fileName":"a.go","fileOverview":"o"}`)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp = do(t, router, http.MethodPut, "/api/note/"+created.ID, `{"userId":"u1","title":"renamed"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected update 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(t, router, http.MethodGet, "/api/note/"+created.ID+"?userId=u1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected get 200, got %d", resp.Code)
	}
	var got struct {
		Note map[string]any `json:"note"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Note["title"] != "renamed" || got.Note["fileOverview"] != "o" || got.Note["userId"] != "u1" {
		t.Fatalf("unexpected note after update: %v", got.Note)
	}

	for i := 0; i < 2; i++ {
		resp = do(t, router, http.MethodDelete, "/api/note/"+created.ID+"?userId=u1", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("delete %d: expected 200, got %d", i, resp.Code)
		}
	}

	resp = do(t, router, http.MethodGet, "/api/note/"+created.ID+"?userId=u1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
	resp = do(t, router, http.MethodPut, "/api/note/"+created.ID+"?userId=u1", `{"title":"x"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating deleted note, got %d", resp.Code)
	}
}

func TestNoteValidation(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "create without userId", method: http.MethodPost, path: "/api/note", body: `{"title":"t","fileName":"a.js"}`},
		{name: "create without title", method: http.MethodPost, path: "/api/note", body: `{"userId":"u1","fileName":"a.js"}`},
		{name: "create with bad field type", method: http.MethodPost, path: "/api/note", body: `{"userId":"u1","title":"t","fileName":"a.js","learningPoints":"x"}`},
		{name: "list without userId", method: http.MethodGet, path: "/api/note"},
		{name: "get without userId", method: http.MethodGet, path: "/api/note/abc"},
		{name: "update without userId", method: http.MethodPut, path: "/api/note/abc", body: `{"title":"x"}`},
		{name: "delete without userId", method: http.MethodDelete, path: "/api/note/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, router, tt.method, tt.path, tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestNoteListEmpty(t *testing.T) {
	router := newRouter(t)

	resp := do(t, router, http.MethodGet, "/api/note?userId=nobody", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"notes":[]}` {
		t.Fatalf("unexpected body %s", got)
	}
}
