package competitions

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Competition
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Competition{}}
}

func (r *testRepo) Create(ctx context.Context, c Competition) error {
	if c.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Competition) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Competition, error) {
	c, ok := r.byID[id]
	if !ok {
		return Competition{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(ctx context.Context) ([]Competition, error) {
	out := make([]Competition, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func seed(t *testing.T, svc *Service, name string, date time.Time, horseIDs ...string) Competition {
	t.Helper()
	entries := make([]EntryInput, 0, len(horseIDs))
	for _, id := range horseIDs {
		entries = append(entries, EntryInput{HorseID: id, HorseName: "Horse " + id})
	}
	c, err := svc.Create(context.Background(), CreateInput{
		Name:    name,
		Date:    date,
		Entries: entries,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return c
}

// -------------------------
// Create / snapshots
// -------------------------

func TestCreate_RequiresAtLeastOneEntry(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Name: "Prova",
		Date: testNow,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_SnapshotsHorseNames(t *testing.T) {
	svc, _ := newFixture(t)

	c := seed(t, svc, "Prova de Laço", testNow, "h-1")
	if c.Horses[0].HorseName != "Horse h-1" {
		t.Fatalf("entry must carry the name snapshot, got %q", c.Horses[0].HorseName)
	}
	if c.Status != StatusRegistered {
		t.Fatalf("new competitions start registered, got %s", c.Status)
	}
}

// -------------------------
// Update
// -------------------------

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	c := seed(t, svc, "Prova de Laço", testNow, "h-1")

	newDate := testNow.AddDate(0, 0, 10)
	loc := "Haras Boa Vista"
	got, err := svc.Update(ctx, c.ID, UpdateInput{Date: &newDate, Location: &loc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Date.Equal(newDate) || got.Location != "Haras Boa Vista" {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	if got.Name != "Prova de Laço" || len(got.Horses) != 1 || got.Status != StatusRegistered {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	empty := "  "
	if _, err := svc.Update(ctx, c.ID, UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "ghost", UpdateInput{Location: &loc}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}
}

// -------------------------
// ListConfirmedWithin
// -------------------------

func TestListConfirmedWithin_WindowAndStatus(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	today := seed(t, svc, "Hoje", testNow, "h-1")
	inWindow := seed(t, svc, "Na Semana", testNow.AddDate(0, 0, 7), "h-1")
	tooFar := seed(t, svc, "Longe", testNow.AddDate(0, 0, 8), "h-1")
	past := seed(t, svc, "Pasada", testNow.AddDate(0, 0, -1), "h-1")
	unconfirmed := seed(t, svc, "Sin Confirmar", testNow.AddDate(0, 0, 2), "h-1")

	for _, c := range []Competition{today, inWindow, tooFar, past} {
		if _, err := svc.UpdateStatus(ctx, c.ID, StatusConfirmed); err != nil {
			t.Fatalf("confirm %s: %v", c.Name, err)
		}
	}
	_ = unconfirmed

	got, err := svc.ListConfirmedWithin(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 competitions in window, got %d", len(got))
	}
	names := map[string]bool{got[0].Name: true, got[1].Name: true}
	if !names["Hoje"] || !names["Na Semana"] {
		t.Fatalf("unexpected window contents: %v", names)
	}
}

// -------------------------
// RecordResult
// -------------------------

func TestRecordResult(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	c := seed(t, svc, "Prova", testNow, "h-1", "h-2")

	got, err := svc.RecordResult(ctx, c.ID, "h-2", ResultInput{
		Result:      "Clasificado",
		Placement:   2,
		Performance: PerformanceGood,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Horses[1].Placement != 2 || got.Horses[1].Performance != PerformanceGood {
		t.Fatalf("result not recorded: %+v", got.Horses[1])
	}
	if got.Horses[0].Result != "" {
		t.Fatalf("other entries must stay untouched")
	}

	if _, err := svc.RecordResult(ctx, c.ID, "ghost", ResultInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown horse: expected ErrInvalidInput, got %v", err)
	}
}

// -------------------------
// PurgeHorse
// -------------------------

func TestPurgeHorse_DropsEmptyCompetitions(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	solo := seed(t, svc, "Solo", testNow, "h-1")
	shared := seed(t, svc, "Compartida", testNow, "h-1", "h-2")
	other := seed(t, svc, "Ajena", testNow, "h-3")

	if err := svc.PurgeHorse(ctx, "h-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := repo.byID[solo.ID]; ok {
		t.Fatalf("competition left with zero horses must be dropped")
	}
	got := repo.byID[shared.ID]
	if len(got.Horses) != 1 || got.Horses[0].HorseID != "h-2" {
		t.Fatalf("shared competition must keep the other entry, got %v", got.Horses)
	}
	if len(repo.byID[other.ID].Horses) != 1 {
		t.Fatalf("unrelated competition must stay untouched")
	}
}
