package handler

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/folio/internal/db"
	"github.com/gin-gonic/gin"
)

func TestCreateProjectAcceptsTextLists(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.CreateProject, testCall{
		method: http.MethodPost,
		target: "/admin/api/projects",
		body: map[string]any{
			"title":         "Folio Site",
			"techStack":     "Go, Gin,  GORM ",
			"gallery":       "/static/uploads/project/a.png\n\n/static/uploads/project/b.png",
			"collaborators": "Ada | https://ada.dev\nGrace",
			"keywords":      " go,portfolio,, Go ",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	var created db.Project
	decodeInto(t, result.Data, &created)
	if created.Slug != "folio-site" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
	if !reflect.DeepEqual([]string(created.TechStack), []string{"Go", "Gin", "GORM"}) {
		t.Fatalf("unexpected tech stack %q", created.TechStack)
	}
	if len(created.Gallery) != 2 || len(created.Collaborators) != 2 || created.Collaborators[0].URL != "https://ada.dev" {
		t.Fatalf("unexpected lists %+v / %+v", created.Gallery, created.Collaborators)
	}
	if created.Keywords != "go, portfolio, Go" {
		t.Fatalf("expected keywords to be normalized, got %q", created.Keywords)
	}
	if !created.IsVisible {
		t.Fatal("expected new projects to be visible")
	}
}

func TestProjectFormRoundTripIsIdempotent(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.CreateProject, testCall{
		method: http.MethodPost,
		target: "/admin/api/projects",
		body: map[string]any{
			"title":         "Round Trip",
			"techStack":     []string{"Next.js", "Go"},
			"collaborators": []map[string]string{{"name": "Ada", "url": "https://ada.dev"}},
		},
	})
	var created db.Project
	decodeInto(t, decodeResult(t, w).Data, &created)

	formResp := perform(t, api.GetProjectForm, testCall{target: "/admin/api/projects/1/form", params: idParam(created.ID)})
	if formResp.Code != http.StatusOK {
		t.Fatalf("expected form status 200, got %d", formResp.Code)
	}
	var payload struct {
		Project map[string]any `json:"project"`
	}
	decodeInto(t, formResp.Body.Bytes(), &payload)
	if payload.Project["techStack"] != "Next.js, Go" {
		t.Fatalf("unexpected form tech stack %v", payload.Project["techStack"])
	}
	if payload.Project["collaborators"] != "Ada | https://ada.dev" {
		t.Fatalf("unexpected form collaborators %v", payload.Project["collaborators"])
	}

	saved := perform(t, api.UpdateProject, testCall{
		method: http.MethodPut,
		target: "/admin/api/projects/1",
		body:   payload.Project,
		params: idParam(created.ID),
	})
	if saved.Code != http.StatusOK {
		t.Fatalf("expected update status 200, got %d: %s", saved.Code, saved.Body.String())
	}
	var updated db.Project
	decodeInto(t, decodeResult(t, saved).Data, &updated)
	if !reflect.DeepEqual(updated.TechStack, created.TechStack) ||
		!reflect.DeepEqual(updated.Collaborators, created.Collaborators) ||
		updated.Slug != created.Slug {
		t.Fatalf("expected saving the unchanged form to be a no-op, got %+v", updated)
	}
}

func TestCreateProjectDuplicateSlug(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	body := map[string]any{"title": "Same Title"}
	first := perform(t, api.CreateProject, testCall{method: http.MethodPost, target: "/admin/api/projects", body: body})
	if first.Code != http.StatusOK {
		t.Fatalf("expected first create to succeed, got %d", first.Code)
	}

	second := perform(t, api.CreateProject, testCall{method: http.MethodPost, target: "/admin/api/projects", body: body})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", second.Code, second.Body.String())
	}
	if result := decodeResult(t, second); result.Success || result.Message != `slug "same-title" 已被其他作品使用` {
		t.Fatalf("expected a conflict message, got %+v", result)
	}

	var count int64
	api.DB().Model(&db.Project{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one project row, got %d", count)
	}
}

func TestCreateProjectValidationMessages(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{name: "blank title", body: map[string]any{"title": "   "}, message: "标题不能为空"},
		{name: "bad link", body: map[string]any{"title": "Linked", "liveUrl": "javascript:alert(1)"}, message: "演示链接必须是有效的 http(s) 链接"},
		{name: "bad slug", body: map[string]any{"title": "Slugged", "slug": "Not A Slug"}, message: `slug "Not A Slug" 只能包含小写字母、数字和单个连字符`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, api.CreateProject, testCall{method: http.MethodPost, target: "/admin/api/projects", body: tt.body})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			if result := decodeResult(t, w); result.Success || result.Message != tt.message {
				t.Fatalf("expected message %q, got %+v", tt.message, result)
			}
		})
	}
}

func TestGetProjectInvalidID(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.GetProject, testCall{target: "/admin/api/projects/abc", params: gin.Params{gin.Param{Key: "id", Value: "abc"}}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	w = perform(t, api.GetProject, testCall{target: "/admin/api/projects/42", params: idParam(42)})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
