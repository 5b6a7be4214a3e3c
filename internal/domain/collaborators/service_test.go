package collaborators

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testRepo struct {
	byID map[string]Collaborator
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Collaborator{}}
}

func (r *testRepo) Create(_ context.Context, c Collaborator) error {
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(_ context.Context, c Collaborator) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Collaborator, error) {
	c, ok := r.byID[id]
	if !ok {
		return Collaborator{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(_ context.Context) ([]Collaborator, error) {
	out := make([]Collaborator, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newFixture(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func TestCreate_StartsActive(t *testing.T) {
	svc, _ := newFixture(t)

	c, err := svc.Create(context.Background(), CreateInput{
		Name: "  João da Silva  ",
		Role: RoleGroom,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != StatusActive {
		t.Fatalf("new collaborators start active, got %s", c.Status)
	}
	if c.Name != "João da Silva" {
		t.Fatalf("name must be trimmed, got %q", c.Name)
	}
	if c.ID == "" || c.CreatedAt != testNow {
		t.Fatalf("unexpected collaborator: %+v", c)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newFixture(t)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Name: "   ", Role: RoleFarrier}},
		{"missing role", CreateInput{Name: "Pedro"}},
		{"unknown role", CreateInput{Name: "Pedro", Role: "gardener"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestList_FiltersByRole(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	svc.Create(ctx, CreateInput{Name: "Ana", Role: RoleVeterinarian})
	svc.Create(ctx, CreateInput{Name: "Bruno", Role: RoleGroom})
	svc.Create(ctx, CreateInput{Name: "Carla", Role: RoleGroom})

	got, err := svc.List(ctx, RoleGroom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 grooms, got %d", len(got))
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty role must list everyone, got %d", len(all))
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{
		Name:  "Marcos",
		Role:  RoleInstructor,
		Phone: "11 99999-0000",
	})

	newRole := RoleTrainer
	got, err := svc.Update(ctx, c.ID, UpdateInput{Role: &newRole})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != RoleTrainer {
		t.Fatalf("role = %s, want trainer", got.Role)
	}
	if got.Name != "Marcos" || got.Phone != "11 99999-0000" {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	bad := Role("gardener")
	if _, err := svc.Update(ctx, c.ID, UpdateInput{Role: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "ghost", UpdateInput{Role: &newRole}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestToggleStatus_RoundTrip(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{Name: "Rita", Role: RoleAdministrator})

	got, err := svc.ToggleStatus(ctx, c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusInactive {
		t.Fatalf("status = %s, want inactive", got.Status)
	}

	got, err = svc.ToggleStatus(ctx, c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("status = %s, want active again", got.Status)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{Name: "Sérgio", Role: RoleDriver})

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[c.ID]; ok {
		t.Fatalf("collaborator must be removed")
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
