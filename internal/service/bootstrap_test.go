package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/internal/db"
)

func TestBootstrapIsIdempotent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()

	if err := Bootstrap(ctx, gdb); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	sections := NewSectionContentService(gdb)
	if _, err := sections.Update(ctx, "hero", SectionContentInput{Title: "Custom hero", BadgeColor: "#22C55E"}); err != nil {
		t.Fatalf("update hero: %v", err)
	}
	info := NewPersonalInfoService(gdb)
	if _, err := info.Update(ctx, PersonalInfoInput{FullName: "Ada Lovelace", Email: "ada@example.com"}); err != nil {
		t.Fatalf("update personal info: %v", err)
	}

	if err := Bootstrap(ctx, gdb); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	list, err := sections.List(ctx)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(list) != len(SectionIDs) {
		t.Fatalf("expected %d sections, got %d", len(SectionIDs), len(list))
	}
	if list[0].SectionKey != "hero" || list[0].Title != "Custom hero" || list[0].BadgeColor != "#22c55e" {
		t.Fatalf("expected edited hero to survive, got %+v", list[0])
	}

	var infoCount int64
	gdb.Model(&db.PersonalInfo{}).Count(&infoCount)
	if infoCount != 1 {
		t.Fatalf("expected one personal info row, got %d", infoCount)
	}
	current, err := info.Get(ctx)
	if err != nil {
		t.Fatalf("get personal info: %v", err)
	}
	if current.ID != db.PersonalInfoID || current.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected personal info %+v", current)
	}

	var seoCount int64
	gdb.Model(&db.SeoDefault{}).Count(&seoCount)
	if seoCount != 6 {
		t.Fatalf("expected 6 seo defaults, got %d", seoCount)
	}
}

func TestPersonalInfoServiceValidates(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPersonalInfoService(gdb)

	cases := []PersonalInfoInput{
		{FullName: ""},
		{FullName: "Ada", Email: "nope"},
		{FullName: "Ada", AvailabilityStatus: "on holiday"},
		{FullName: "Ada", GithubURL: "github.com/ada"},
	}
	for _, input := range cases {
		if _, err := svc.Update(context.Background(), input); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %+v, got %v", input, err)
		}
	}
}

func TestSeoServiceResolveFallsBackToHome(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSeoService(gdb)

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Upsert(ctx, "projects/", SeoInput{Title: "Work", Keywords: "go, web"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	projects, err := svc.Resolve(ctx, "/projects")
	if err != nil {
		t.Fatalf("resolve projects: %v", err)
	}
	if projects.Title != "Work" {
		t.Fatalf("expected upserted title, got %q", projects.Title)
	}

	unknown, err := svc.Resolve(ctx, "/projects/some-slug")
	if err != nil {
		t.Fatalf("resolve unknown: %v", err)
	}
	if unknown.Route != HomeRoute {
		t.Fatalf("expected fallback to %s, got %s", HomeRoute, unknown.Route)
	}

	if err := svc.Delete(ctx, "/contact"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "/contact"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := svc.Upsert(ctx, "/bad route", SeoInput{Title: "x"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for route with spaces, got %v", err)
	}
}
