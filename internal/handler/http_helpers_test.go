package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/folio/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid", err: &service.Error{Kind: service.ErrInvalid, Message: "bad"}, want: http.StatusBadRequest},
		{name: "not found", err: &service.Error{Kind: service.ErrNotFound, Message: "missing"}, want: http.StatusNotFound},
		{name: "conflict", err: &service.Error{Kind: service.ErrConflict, Message: "taken"}, want: http.StatusConflict},
		{name: "credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "unexpected", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Fatalf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUnexpectedErrorsAreNotLeaked(t *testing.T) {
	api, cleanup := setupTestDB(t)
	cleanup()

	w := perform(t, api.CreateSkill, testCall{
		method: http.MethodPost,
		target: "/admin/api/skills",
		body:   map[string]any{"name": "Go", "category": "Backend"},
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on a closed database, got %d: %s", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)
	if result.Success || result.Message == "" {
		t.Fatalf("expected a generic failure, got %+v", result)
	}
	if strings.Contains(w.Body.String(), "closed") {
		t.Fatalf("driver error leaked into response: %s", w.Body.String())
	}
}
