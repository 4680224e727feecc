package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/internal/db"
	"github.com/folio/internal/permission"
)

func TestVisibilityToggleRoundTrip(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()

	projects := NewProjectService(gdb)
	project, err := projects.Create(ctx, ProjectInput{Title: "Toggle me", ShortDescription: "unchanged", SortOrder: intPtr(3)})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	before, err := projects.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}

	svc := NewVisibilityService(gdb)
	visible, err := svc.Toggle(ctx, EntityProjects, project.ID, before.IsVisible)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if visible {
		t.Fatal("expected project to become hidden")
	}

	hidden, err := projects.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if hidden.IsVisible {
		t.Fatal("expected stored project to be hidden")
	}
	if hidden.SortOrder != 3 || hidden.ShortDescription != "unchanged" || hidden.Slug != before.Slug {
		t.Fatalf("toggle touched other fields: %+v", hidden)
	}
	if !hidden.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("expected updated_at to stay %v, got %v", before.UpdatedAt, hidden.UpdatedAt)
	}

	visible, err = svc.Toggle(ctx, EntityProjects, project.ID, hidden.IsVisible)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !visible {
		t.Fatal("expected project to be visible again")
	}
	restored, err := projects.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if restored.IsVisible != before.IsVisible || restored.SortOrder != before.SortOrder {
		t.Fatalf("double toggle did not restore the row: %+v", restored)
	}
}

func TestVisibilityToggleEveryEntity(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()

	rows := map[Entity]interface{}{
		EntityProjects:        &db.Project{Title: "P", Slug: "p", IsVisible: true},
		EntityBlogPosts:       &db.BlogPost{Title: "B", Slug: "b", IsVisible: true},
		EntitySkills:          &db.Skill{Name: "S", Category: db.SkillCategoryTools, IsVisible: true},
		EntityServices:        &db.Service{ServiceType: db.ServiceTypeWeb, Title: "W", IsVisible: true},
		EntityEducation:       &db.Education{Institution: "I", Degree: "D", IsVisible: true},
		EntityExperience:      &db.Experience{Company: "C", Position: "P", IsVisible: true},
		EntityNavigationItems: &db.NavigationItem{Label: "L", Path: "/", Location: db.NavLocationHeader, IsVisible: true},
	}

	svc := NewVisibilityService(gdb)
	for entity, row := range rows {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("seed %s: %v", entity, err)
		}
		visible, err := svc.Toggle(ctx, entity, 1, true)
		if err != nil {
			t.Fatalf("toggle %s: %v", entity, err)
		}
		if visible {
			t.Fatalf("expected %s to become hidden", entity)
		}
		if _, ok := entity.Permission(); !ok {
			t.Fatalf("expected %s to map to a permission", entity)
		}
	}
}

func TestVisibilityToggleErrors(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewVisibilityService(gdb)

	if _, err := svc.Toggle(context.Background(), Entity("users"), 1, true); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown entity, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), EntitySkills, 404, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
}

func TestParseEntity(t *testing.T) {
	entity, err := ParseEntity(" Blog_Posts ")
	if err != nil {
		t.Fatalf("parse entity: %v", err)
	}
	if entity != EntityBlogPosts {
		t.Fatalf("unexpected entity %q", entity)
	}
	if perm, _ := entity.Permission(); perm != permission.Blog {
		t.Fatalf("expected blog permission, got %q", perm)
	}
	if _, err := ParseEntity("admins"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
