package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/folio/internal/db"
)

func seedNavigation(t *testing.T, api *API, labels ...string) []db.NavigationItem {
	t.Helper()
	items := make([]db.NavigationItem, 0, len(labels))
	for idx, label := range labels {
		item := db.NavigationItem{Label: label, Path: "/" + strings.ToLower(label), Location: db.NavLocationHeader, SortOrder: idx, IsVisible: true}
		if err := api.DB().Create(&item).Error; err != nil {
			t.Fatalf("failed to seed navigation: %v", err)
		}
		items = append(items, item)
	}
	return items
}

func navLabels(items []db.NavigationItem) string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return strings.Join(labels, ",")
}

func TestMoveNavigationItem(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	seedNavigation(t, api, "A", "B", "C", "D")

	w := perform(t, api.MoveNavigationItem, testCall{
		method: http.MethodPost,
		target: "/admin/api/navigation/move",
		body:   map[string]any{"index": 2, "direction": "up"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var items []db.NavigationItem
	decodeInto(t, decodeResult(t, w).Data, &items)
	if got := navLabels(items); got != "A,C,B,D" {
		t.Fatalf("expected A,C,B,D, got %s", got)
	}
	for idx, item := range items {
		if item.SortOrder != idx {
			t.Fatalf("expected contiguous sort orders, got %d at %d", item.SortOrder, idx)
		}
	}

	w = perform(t, api.MoveNavigationItem, testCall{
		method: http.MethodPost,
		target: "/admin/api/navigation/move",
		body:   map[string]any{"index": 0, "direction": "up"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected out of bounds move to be a no-op, got %d", w.Code)
	}
	decodeInto(t, decodeResult(t, w).Data, &items)
	if got := navLabels(items); got != "A,C,B,D" {
		t.Fatalf("expected unchanged order, got %s", got)
	}

	w = perform(t, api.MoveNavigationItem, testCall{
		method: http.MethodPost,
		target: "/admin/api/navigation/move",
		body:   map[string]any{"index": 1, "direction": "sideways"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown direction, got %d", w.Code)
	}
}

func TestReorderNavigation(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	items := seedNavigation(t, api, "A", "B", "C")

	w := perform(t, api.ReorderNavigation, testCall{
		method: http.MethodPut,
		target: "/admin/api/navigation/order",
		body:   map[string]any{"ids": []uint{items[2].ID, items[0].ID, items[1].ID}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var ordered []db.NavigationItem
	decodeInto(t, decodeResult(t, w).Data, &ordered)
	if got := navLabels(ordered); got != "C,A,B" {
		t.Fatalf("expected C,A,B, got %s", got)
	}

	w = perform(t, api.ReorderNavigation, testCall{
		method: http.MethodPut,
		target: "/admin/api/navigation/order",
		body:   map[string]any{"ids": []uint{items[0].ID, 999}},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown id, got %d", w.Code)
	}
}
