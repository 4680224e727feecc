package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestResultOf(t *testing.T) {
	ok := ResultOf(42, nil, "saved")
	if !ok.Success || ok.Message != "saved" || ok.Data != 42 {
		t.Fatalf("unexpected success result %+v", ok)
	}

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "validation", err: invalidf("%s不能为空", "标题"), message: "标题不能为空"},
		{name: "wrapped conflict", err: fmt.Errorf("create: %w", conflictf("slug 已被占用")), message: "slug 已被占用"},
		{name: "credentials", err: fmt.Errorf("login: %w", ErrInvalidCredentials), message: messageBadLogin},
		{name: "timeout", err: fmt.Errorf("query: %w", context.DeadlineExceeded), message: messageTimeout},
		{name: "unexpected", err: errors.New("connection refused"), message: messageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResultOf(nil, tt.err, "saved")
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Message != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, res.Message)
			}
			if res.Data != nil {
				t.Fatalf("failed result must not carry data, got %v", res.Data)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(notFoundf("作品 %d 不存在", 3), ErrNotFound) {
		t.Fatal("expected not found kind")
	}
	if !IsExpected(conflictf("dup")) {
		t.Fatal("expected conflict to be an expected failure")
	}
	if IsExpected(errors.New("boom")) {
		t.Fatal("plain errors are unexpected")
	}
	if !isUniqueConstraintError(errors.New("UNIQUE constraint failed: projects.slug")) {
		t.Fatal("expected sqlite unique violation to be detected")
	}
	if !isUniqueConstraintError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_slug"`)) {
		t.Fatal("expected postgres unique violation to be detected")
	}
}
