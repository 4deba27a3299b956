package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
)

// failingStore returns a read error that is not ErrNotFound.
type failingStore struct {
	kvstore.Store
}

func (failingStore) Get(_ context.Context, _ string, _ any) error {
	return errors.New("backend unavailable")
}

func (failingStore) Set(_ context.Context, _ string, _ any) error {
	return nil
}

func newTestService(t *testing.T) (*Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewService(context.Background(), store), store
}

func TestSeedsStartersOnFirstUse(t *testing.T) {
	svc, _ := newTestService(t)

	list := svc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 starter templates, got %d", len(list))
	}
	if list[0].ID != "default-cold" || list[1].ID != "default-followup" {
		t.Errorf("unexpected starter IDs: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestDoesNotReseedAfterDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	svc := NewService(ctx, store)
	for _, tpl := range svc.List(ctx) {
		if err := svc.Delete(ctx, tpl.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}

	// A second service over the same store must see an empty library,
	// not starters.
	svc2 := NewService(ctx, store)
	if got := len(svc2.List(ctx)); got != 0 {
		t.Errorf("expected empty library after delete-all, got %d templates", got)
	}
}

func TestReadFailureFallsBackToStarters(t *testing.T) {
	svc := NewService(context.Background(), failingStore{})

	list := svc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected starter fallback, got %d templates", len(list))
	}
}

func TestCreateValidates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"missing name", CreateInput{Subject: "s", Body: "b", Category: domain.TemplateReferral}, ErrMissingName},
		{"missing subject", CreateInput{Name: "n", Body: "b", Category: domain.TemplateReferral}, ErrMissingSubject},
		{"missing body", CreateInput{Name: "n", Subject: "s", Category: domain.TemplateReferral}, ErrMissingBody},
		{"bad category", CreateInput{Name: "n", Subject: "s", Body: "b", Category: "spam"}, ErrInvalidCategory},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, c.input); err != c.want {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name: "Referral Ask", Subject: "Quick question", Body: "Hi {{name}}",
		Category: domain.TemplateReferral,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newSubject := "Referral for {{job_role}}"
	updated, err := svc.Update(ctx, created.ID, UpdateFields{Subject: &newSubject})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Subject != newSubject {
		t.Errorf("subject not updated: %q", updated.Subject)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Mutations must be persisted.
	var stored []domain.EmailTemplate
	if err := store.Get(ctx, storeKey, &stored); err != nil {
		t.Fatalf("reading store: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 persisted templates, got %d", len(stored))
	}
}

func TestByCategory(t *testing.T) {
	svc, _ := newTestService(t)

	cold := svc.ByCategory(context.Background(), domain.TemplateColdApplication)
	if len(cold) != 1 || cold[0].ID != "default-cold" {
		t.Errorf("unexpected cold-application templates: %v", cold)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	name := "x"
	tpl, err := svc.Update(ctx, "missing", UpdateFields{Name: &name})
	if err != nil {
		t.Fatalf("update unknown id: %v", err)
	}
	if tpl != nil {
		t.Errorf("expected nil template, got %+v", tpl)
	}
	if got := len(svc.List(ctx)); got != 2 {
		t.Errorf("library length = %d, want the 2 starters", got)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if got := len(svc.List(ctx)); got != 2 {
		t.Errorf("library length = %d, want the 2 starters", got)
	}
}

func TestSubscribeFiresOnMutations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var fired int
	svc.Subscribe(func() { fired++ })

	created, err := svc.Create(ctx, CreateInput{
		Name: "n", Subject: "s", Body: "b", Category: domain.TemplateReferral,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fired != 2 {
		t.Errorf("listener fired %d times, want 2", fired)
	}

	svc.Delete(ctx, "ghost")
	if fired != 2 {
		t.Errorf("listener fired %d times after no-op delete, want 2", fired)
	}
}
