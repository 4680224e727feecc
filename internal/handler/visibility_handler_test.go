package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/folio/internal/db"
	"github.com/gin-gonic/gin"
)

func visibilityParams(entity string, id uint) gin.Params {
	return gin.Params{
		gin.Param{Key: "entity", Value: entity},
		gin.Param{Key: "id", Value: fmt.Sprint(id)},
	}
}

func TestToggleVisibilityFlipsClientState(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	project := db.Project{Title: "Visible", Slug: "visible", IsVisible: true}
	if err := api.DB().Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	w := perform(t, api.ToggleVisibility, testCall{
		method:      http.MethodPost,
		target:      "/admin/api/visibility/projects/1",
		body:        map[string]any{"currentStatus": true},
		params:      visibilityParams("projects", project.ID),
		permissions: []string{"projects"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var data struct {
		IsVisible bool `json:"isVisible"`
	}
	decodeInto(t, decodeResult(t, w).Data, &data)
	if data.IsVisible {
		t.Fatal("expected the project to become hidden")
	}

	var stored db.Project
	api.DB().First(&stored, project.ID)
	if stored.IsVisible {
		t.Fatal("expected is_visible to be persisted as false")
	}
}

func TestToggleVisibilityChecksEntityPermission(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	skill := db.Skill{Name: "Go", Category: db.SkillCategoryBackend, IsVisible: true}
	if err := api.DB().Create(&skill).Error; err != nil {
		t.Fatalf("failed to seed skill: %v", err)
	}

	w := perform(t, api.ToggleVisibility, testCall{
		method:      http.MethodPost,
		target:      "/admin/api/visibility/skills/1",
		body:        map[string]any{"currentStatus": true},
		params:      visibilityParams("skills", skill.ID),
		permissions: []string{"projects"},
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}

	w = perform(t, api.ToggleVisibility, testCall{
		method:      http.MethodPost,
		target:      "/admin/api/visibility/skills/1",
		body:        map[string]any{"currentStatus": true},
		params:      visibilityParams("skills", skill.ID),
		permissions: []string{"all"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected superuser toggle to succeed, got %d", w.Code)
	}
}

func TestToggleVisibilityErrors(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name   string
		params gin.Params
		body   any
		want   int
	}{
		{name: "unknown entity", params: visibilityParams("widgets", 1), body: map[string]any{"currentStatus": true}, want: http.StatusBadRequest},
		{name: "missing row", params: visibilityParams("education", 99), body: map[string]any{"currentStatus": false}, want: http.StatusNotFound},
		{name: "missing status", params: visibilityParams("education", 1), body: map[string]any{}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, api.ToggleVisibility, testCall{
				method:      http.MethodPost,
				target:      "/admin/api/visibility",
				body:        tt.body,
				params:      tt.params,
				permissions: []string{"all"},
			})
			if w.Code != tt.want {
				t.Fatalf("expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if decodeResult(t, w).Success {
				t.Fatal("expected success=false")
			}
		})
	}
}
