package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/internal/db"
)

func TestSeedSectionVisibility(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSiteSettingService(gdb)

	if err := svc.SeedSectionVisibility(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	records, err := svc.List(ctx, "section_")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != len(SectionIDs) {
		t.Fatalf("expected %d section keys, got %d", len(SectionIDs), len(records))
	}
	for _, record := range records {
		if record.SettingValue != "true" {
			t.Fatalf("expected %s to be seeded true, got %q", record.SettingKey, record.SettingValue)
		}
	}

	if err := svc.SetSectionVisible(ctx, "blog", false); err != nil {
		t.Fatalf("hide blog: %v", err)
	}
	if err := svc.SeedSectionVisibility(ctx); err != nil {
		t.Fatalf("seed again: %v", err)
	}

	visibility, err := svc.SectionVisibility(ctx)
	if err != nil {
		t.Fatalf("section visibility: %v", err)
	}
	if visibility["blog"] {
		t.Fatal("expected reseeding to keep the blog section hidden")
	}
	if !visibility["hero"] || !visibility["contact"] {
		t.Fatalf("unexpected visibility map %v", visibility)
	}
}

func TestSectionVisibilityDefaultsToTrue(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSiteSettingService(gdb)

	visibility, err := svc.SectionVisibility(context.Background())
	if err != nil {
		t.Fatalf("section visibility: %v", err)
	}
	for _, id := range SectionIDs {
		if !visibility[id] {
			t.Fatalf("expected missing key for %s to mean visible", id)
		}
	}

	if err := svc.SetSectionVisible(context.Background(), "footer", true); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected unknown section to be rejected, got %v", err)
	}
}

func TestSiteSettingServiceSetManyIsAtomic(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSiteSettingService(gdb)

	_, err := svc.SetMany(ctx, map[string]string{
		db.SettingKeySiteTitle: "My site",
		"admin_password":       "hunter2",
	})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected unknown key to be rejected, got %v", err)
	}
	if title, _ := svc.Get(ctx, db.SettingKeySiteTitle, "fallback"); title != "fallback" {
		t.Fatalf("expected nothing to be written, got %q", title)
	}

	saved, err := svc.SetMany(ctx, map[string]string{
		db.SettingKeySiteTitle:         "  My site  ",
		db.SettingKeyThemePrimaryColor: "#1E293B",
		db.SettingKeyHeaderSticky:      "TRUE",
	})
	if err != nil {
		t.Fatalf("set many: %v", err)
	}
	if saved[db.SettingKeySiteTitle] != "My site" || saved[db.SettingKeyThemePrimaryColor] != "#1e293b" || saved[db.SettingKeyHeaderSticky] != "true" {
		t.Fatalf("unexpected normalized values %v", saved)
	}

	if _, err := svc.Set(ctx, db.SettingKeySiteTitle, "Renamed"); err != nil {
		t.Fatalf("set: %v", err)
	}
	values, err := svc.GetMany(ctx, []string{db.SettingKeySiteTitle, db.SettingKeyFooterText})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if values[db.SettingKeySiteTitle] != "Renamed" {
		t.Fatalf("expected upsert to overwrite, got %q", values[db.SettingKeySiteTitle])
	}
	if _, ok := values[db.SettingKeyFooterText]; ok {
		t.Fatal("expected missing key to be absent")
	}
}

func TestSiteSettingServiceValidatesKinds(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSiteSettingService(gdb)

	cases := map[string]string{
		db.SettingKeyThemeAccentColor: "blue",
		db.SettingKeyHeaderSticky:     "maybe",
		db.SettingKeyThemeMode:        "sepia",
		db.SettingKeyHeaderCTAURL:     "javascript:alert(1)",
	}
	for key, value := range cases {
		if _, err := svc.Set(ctx, key, value); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected %s=%q to be rejected, got %v", key, value, err)
		}
	}

	if _, err := svc.Set(ctx, db.SettingKeySiteFavicon, "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("expected data URI favicon to be accepted: %v", err)
	}
}

func TestSiteSettingServiceTypedReaders(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSiteSettingService(gdb)

	records := []db.SiteSetting{
		{SettingKey: db.SettingKeyFooterShowSocial, SettingValue: "false"},
		{SettingKey: db.SettingKeyThemePrimaryColor, SettingValue: "not-a-color"},
		{SettingKey: "legacy_posts_per_page", SettingValue: " 12 "},
	}
	if err := gdb.Create(&records).Error; err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	if show, err := svc.Bool(ctx, db.SettingKeyFooterShowSocial, true); err != nil || show {
		t.Fatalf("expected false, got %v (%v)", show, err)
	}
	if sticky, err := svc.Bool(ctx, db.SettingKeyHeaderSticky, true); err != nil || !sticky {
		t.Fatalf("expected fallback true, got %v (%v)", sticky, err)
	}
	if color, err := svc.Color(ctx, db.SettingKeyThemePrimaryColor, "#000000"); err != nil || color != "#000000" {
		t.Fatalf("expected fallback color, got %q (%v)", color, err)
	}
	if n, err := svc.Int(ctx, "legacy_posts_per_page", 10); err != nil || n != 12 {
		t.Fatalf("expected 12, got %d (%v)", n, err)
	}
}

func TestSiteSettingServicePublicHidesPrivateKeys(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	svc := NewSiteSettingService(gdb)

	if _, err := svc.SetMany(ctx, map[string]string{
		db.SettingKeySiteTitle:            "Folio",
		db.SettingKeyContactNotifyEnabled: "false",
	}); err != nil {
		t.Fatalf("set many: %v", err)
	}

	public, err := svc.Public(ctx)
	if err != nil {
		t.Fatalf("public: %v", err)
	}
	if public[db.SettingKeySiteTitle] != "Folio" {
		t.Fatalf("expected site title to be public, got %v", public)
	}
	if _, ok := public[db.SettingKeyContactNotifyEnabled]; ok {
		t.Fatal("expected notify flag to stay private")
	}
}
