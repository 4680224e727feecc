package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

func TestPublicBlogPostRendersSanitizedHTML(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	published := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	posts := []db.BlogPost{
		{Title: "Hello", Slug: "hello", Content: "**bold** move\n\n<script>alert(1)</script>", PublishedAt: &published, IsVisible: true},
		{Title: "Draft", Slug: "draft", Content: "wip", IsVisible: true},
	}
	for i := range posts {
		if err := api.DB().Create(&posts[i]).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	w := perform(t, api.PublicBlogPost, testCall{target: "/api/blog/hello", params: gin.Params{gin.Param{Key: "slug", Value: "hello"}}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Post struct {
			Slug string `json:"slug"`
			HTML string `json:"html"`
		} `json:"post"`
	}
	decodeInto(t, w.Body.Bytes(), &payload)
	if !strings.Contains(payload.Post.HTML, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown, got %q", payload.Post.HTML)
	}
	if strings.Contains(payload.Post.HTML, "<script") {
		t.Fatalf("expected script to be sanitized, got %q", payload.Post.HTML)
	}

	w = perform(t, api.PublicBlogPost, testCall{target: "/api/blog/draft", params: gin.Params{gin.Param{Key: "slug", Value: "draft"}}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected drafts to be hidden, got %d", w.Code)
	}
}

func TestPublicHomeHonoursSectionVisibility(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Bootstrap(ctx, api.DB()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := service.NewSiteSettingService(api.DB()).SetSectionVisible(ctx, "projects", false); err != nil {
		t.Fatalf("hide projects: %v", err)
	}
	current := db.Experience{Company: "Acme", Position: "Engineer", StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Responsibilities: "- Build APIs\n* Ship features", IsVisible: true}
	hidden := db.Experience{Company: "Hidden Co", Position: "Intern", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), IsVisible: false}
	api.DB().Create(&current)
	api.DB().Create(&hidden)
	api.DB().Create(&db.Project{Title: "Secret", Slug: "secret", IsVisible: true})

	w := perform(t, api.PublicHome, testCall{target: "/api/home"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Sections   map[string]bool           `json:"sections"`
		Content    map[string]map[string]any `json:"content"`
		Projects   []db.Project              `json:"projects"`
		Experience []struct {
			Company   string   `json:"company"`
			Bullets   []string `json:"bullets"`
			IsCurrent bool     `json:"isCurrent"`
			EndLabel  string   `json:"endLabel"`
		} `json:"experience"`
	}
	decodeInto(t, w.Body.Bytes(), &payload)

	if payload.Sections["projects"] || !payload.Sections["hero"] {
		t.Fatalf("unexpected section visibility %v", payload.Sections)
	}
	if payload.Projects != nil {
		t.Fatalf("expected hidden section to omit its collection, got %+v", payload.Projects)
	}
	if _, ok := payload.Content["projects"]; ok {
		t.Fatal("expected hidden section content to be omitted")
	}
	if len(payload.Experience) != 1 || payload.Experience[0].Company != "Acme" {
		t.Fatalf("expected only visible experience, got %+v", payload.Experience)
	}
	entry := payload.Experience[0]
	if !entry.IsCurrent || entry.EndLabel != "Present" || strings.Join(entry.Bullets, "|") != "Build APIs|Ship features" {
		t.Fatalf("unexpected experience presentation %+v", entry)
	}
}

func TestPublicSeoOverlaysProjectMeta(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	if err := service.Bootstrap(context.Background(), api.DB()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	api.DB().Create(&db.Project{Title: "Folio", Slug: "folio", MetaDescription: "A portfolio CMS", IsVisible: true})

	w := perform(t, api.PublicSeo, testCall{target: "/api/seo?route=/projects/folio"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Seo map[string]string `json:"seo"`
	}
	decodeInto(t, w.Body.Bytes(), &payload)
	if payload.Seo["title"] != "Folio" || payload.Seo["description"] != "A portfolio CMS" {
		t.Fatalf("expected project meta overlay, got %v", payload.Seo)
	}
}

func TestPublicSettingsHidePrivateKeys(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	settings := service.NewSiteSettingService(api.DB())
	if _, err := settings.SetMany(context.Background(), map[string]string{
		db.SettingKeySiteTitle:            "Folio",
		db.SettingKeyContactNotifyEnabled: "false",
	}); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	w := perform(t, api.PublicSettings, testCall{target: "/api/settings"})
	var payload struct {
		Settings map[string]string `json:"settings"`
	}
	decodeInto(t, w.Body.Bytes(), &payload)
	if payload.Settings[db.SettingKeySiteTitle] != "Folio" {
		t.Fatalf("expected public title, got %v", payload.Settings)
	}
	if _, ok := payload.Settings[db.SettingKeyContactNotifyEnabled]; ok {
		t.Fatal("expected private setting to be hidden")
	}
}
