package handler

import (
	"net/http"
	"testing"

	"github.com/folio/internal/db"
)

func TestHealthCheck(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.HealthCheck, testCall{target: "/healthz"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestUpdateSiteSettingsIsAllOrNothing(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.UpdateSiteSettings, testCall{
		method: http.MethodPut,
		target: "/admin/api/settings",
		body: map[string]any{"settings": map[string]string{
			db.SettingKeySiteTitle:         "Folio",
			db.SettingKeyThemePrimaryColor: "blue-ish",
		}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	api.DB().Model(&db.SiteSetting{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing to be written, got %d rows", count)
	}

	w = perform(t, api.UpdateSiteSettings, testCall{
		method: http.MethodPut,
		target: "/admin/api/settings",
		body: map[string]any{"settings": map[string]string{
			db.SettingKeySiteTitle:         "Folio",
			db.SettingKeyThemePrimaryColor: "#3B82F6",
		}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	list := perform(t, api.GetSiteSettings, testCall{target: "/admin/api/settings?prefix=theme_"})
	var payload struct {
		Settings map[string]string `json:"settings"`
	}
	decodeInto(t, list.Body.Bytes(), &payload)
	if len(payload.Settings) != 1 || payload.Settings[db.SettingKeyThemePrimaryColor] == "" {
		t.Fatalf("expected only theme settings, got %v", payload.Settings)
	}
}

func TestUpdateSectionVisibility(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w := perform(t, api.UpdateSectionVisibility, testCall{
		method: http.MethodPut,
		target: "/admin/api/section-visibility",
		body:   map[string]any{"sections": map[string]bool{"blog": false}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var sections map[string]bool
	decodeInto(t, decodeResult(t, w).Data, &sections)
	if sections["blog"] || !sections["hero"] {
		t.Fatalf("unexpected sections %v", sections)
	}

	w = perform(t, api.UpdateSectionVisibility, testCall{
		method: http.MethodPut,
		target: "/admin/api/section-visibility",
		body:   map[string]any{"sections": map[string]bool{"sidebar": true}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown section to be rejected, got %d", w.Code)
	}
}
