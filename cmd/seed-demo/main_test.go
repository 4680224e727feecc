package main

import (
	"context"
	"testing"

	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:demo-seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	ctx := context.Background()

	if _, err := seedDemo(ctx, gdb); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if _, err := seedDemo(ctx, gdb); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var projects int64
	gdb.Model(&db.Project{}).Count(&projects)
	if projects != 3 {
		t.Fatalf("expected 3 projects after two runs, got %d", projects)
	}

	published, err := service.NewBlogPostService(gdb).ListPublished(ctx)
	if err != nil {
		t.Fatalf("failed to list published posts: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected the draft to stay unpublished, got %d published", len(published))
	}

	experience, err := service.NewExperienceService(gdb).ListVisible(ctx)
	if err != nil {
		t.Fatalf("failed to list experience: %v", err)
	}
	if len(experience) != 2 || experience[0].EndDate != nil {
		t.Fatalf("expected the current role to be listed first, got %+v", experience)
	}
}
