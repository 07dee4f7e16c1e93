package status

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServiceCreateAndList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	fixed := time.Date(2025, 5, 5, 5, 5, 5, 555555555, time.UTC)
	svc.Now = func() time.Time { return fixed }
	ctx := context.Background()

	check, err := svc.Create(ctx, "  dashboard  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if check.ID == "" || check.ClientName != "dashboard" {
		t.Fatalf("unexpected check %+v", check)
	}
	if !check.Timestamp.Equal(fixed.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp = %v", check.Timestamp)
	}

	checks, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(checks) != 1 || checks[0].ID != check.ID {
		t.Fatalf("unexpected list %+v", checks)
	}
}

func TestServiceCreateRequiresClientName(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Create(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemoryRepoListRespectsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, Check{ID: string(rune('a' + i))}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	checks, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(checks) != 3 || checks[0].ID != "a" {
		t.Fatalf("unexpected checks %+v", checks)
	}
}
