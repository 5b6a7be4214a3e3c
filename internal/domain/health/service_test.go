package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testRepo struct {
	events map[string]Event
}

func newTestRepo() *testRepo {
	return &testRepo{events: map[string]Event{}}
}

func (r *testRepo) Create(_ context.Context, e Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *testRepo) Update(_ context.Context, e Event) error {
	if _, ok := r.events[e.ID]; !ok {
		return ErrNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Event, error) {
	e, ok := r.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return e, nil
}

func (r *testRepo) List(_ context.Context) ([]Event, error) {
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *testRepo) ListByHorse(_ context.Context, horseID string) ([]Event, error) {
	var out []Event
	for _, e := range r.events {
		if e.HorseID == horseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *testRepo) DeleteByHorse(_ context.Context, horseID string) error {
	for id, e := range r.events {
		if e.HorseID == horseID {
			delete(r.events, id)
		}
	}
	return nil
}

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreate_DefaultsToScheduled(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	e, err := svc.Create(context.Background(), "horse-1", CreateInput{
		Type:  EventTypeVaccination,
		Title: "Vacina da gripe",
		Date:  testNow.AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Status != EventStatusScheduled {
		t.Fatalf("status = %q, want %q", e.Status, EventStatusScheduled)
	}
	if e.ID == "" || e.CreatedAt != testNow {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())

	cases := []struct {
		name    string
		horseID string
		in      CreateInput
	}{
		{"missing horse", "", CreateInput{Type: EventTypeFarrier, Title: "Casqueamento", Date: testNow}},
		{"invalid type", "horse-1", CreateInput{Type: "surgery", Title: "X", Date: testNow}},
		{"empty title", "horse-1", CreateInput{Type: EventTypeDeworming, Title: "   ", Date: testNow}},
		{"zero date", "horse-1", CreateInput{Type: EventTypeDeworming, Title: "Vermifugação"}},
		{"negative cost", "horse-1", CreateInput{Type: EventTypeVeterinary, Title: "Consulta", Date: testNow, Cost: -10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.horseID, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	e, err := svc.Create(context.Background(), "horse-1", CreateInput{
		Type:         EventTypeVeterinary,
		Title:        "Consulta de rotina",
		Date:         testNow,
		Veterinarian: "Dra. Souza",
		Cost:         120,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newCost := 150.0
	got, err := svc.Update(context.Background(), e.ID, UpdateInput{Cost: &newCost})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Cost != 150 {
		t.Fatalf("cost = %v, want 150", got.Cost)
	}
	if got.Title != "Consulta de rotina" || got.Veterinarian != "Dra. Souza" {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	empty := "  "
	if _, err := svc.Update(context.Background(), e.ID, UpdateInput{Title: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	e, _ := svc.Create(context.Background(), "horse-1", CreateInput{
		Type: EventTypeVaccination, Title: "Raiva", Date: testNow,
	})

	got, err := svc.UpdateStatus(context.Background(), e.ID, EventStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != EventStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), e.ID, "paused"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "nope", EventStatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListScheduled_FiltersByStatus(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	a, _ := svc.Create(context.Background(), "horse-1", CreateInput{Type: EventTypeFarrier, Title: "Casqueamento", Date: testNow})
	b, _ := svc.Create(context.Background(), "horse-1", CreateInput{Type: EventTypeDeworming, Title: "Vermifugação", Date: testNow})
	if _, err := svc.UpdateStatus(context.Background(), b.ID, EventStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := svc.ListScheduled(context.Background())
	if err != nil {
		t.Fatalf("ListScheduled: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected only the scheduled event, got %+v", got)
	}
}

func TestPurgeHorse_RemovesOnlyThatHorse(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	svc.Create(context.Background(), "horse-1", CreateInput{Type: EventTypeVaccination, Title: "Gripe", Date: testNow})
	svc.Create(context.Background(), "horse-1", CreateInput{Type: EventTypeFarrier, Title: "Casqueamento", Date: testNow})
	keep, _ := svc.Create(context.Background(), "horse-2", CreateInput{Type: EventTypeDeworming, Title: "Vermifugação", Date: testNow})

	if err := svc.PurgeHorse(context.Background(), "horse-1"); err != nil {
		t.Fatalf("PurgeHorse: %v", err)
	}
	all, _ := svc.List(context.Background())
	if len(all) != 1 || all[0].ID != keep.ID {
		t.Fatalf("expected only horse-2's event to survive, got %+v", all)
	}
}
