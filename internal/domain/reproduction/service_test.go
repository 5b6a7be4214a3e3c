package reproduction

import (
	"context"
	"errors"
	"testing"
	"time"

	"horse-control/internal/domain/horses"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[string]Record
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Record{}}
}

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[rec.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) List(ctx context.Context) ([]Record, error) {
	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) ListByMare(ctx context.Context, mareID string) ([]Record, error) {
	out := make([]Record, 0)
	for _, id := range r.order {
		if rec := r.byID[id]; rec.MareID == mareID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	keep := r.order[:0]
	for _, id := range r.order {
		rec := r.byID[id]
		if rec.MareID == horseID || rec.StallionID == horseID {
			delete(r.byID, id)
			continue
		}
		keep = append(keep, id)
	}
	r.order = keep
	return nil
}

type testDirectory struct {
	byID map[string]horses.Horse
}

func (d *testDirectory) GetByID(ctx context.Context, id string) (horses.Horse, error) {
	h, ok := d.byID[id]
	if !ok {
		return horses.Horse{}, horses.ErrNotFound
	}
	return h, nil
}

func newFixture(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	dir := &testDirectory{byID: map[string]horses.Horse{
		"mare-1":     {ID: "mare-1", Name: "Estrela", Sex: horses.SexFemale},
		"stallion-1": {ID: "stallion-1", Name: "Trovão", Sex: horses.SexMale},
		"gelding-1":  {ID: "gelding-1", Name: "Canela", Sex: horses.SexGelded},
	}}
	svc := NewService(repo, dir)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

// -------------------------
// StartInsemination
// -------------------------

func TestStartInsemination_ComputesExpectedBirthDate(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rec, err := svc.StartInsemination(ctx, StartInseminationInput{
		MareID:     "mare-1",
		StallionID: "stallion-1",
		Date:       date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Type != TypeInsemination || rec.Status != StatusInProgress {
		t.Fatalf("expected in-progress insemination, got %s/%s", rec.Type, rec.Status)
	}
	if rec.MareName != "Estrela" || rec.StallionName != "Trovão" {
		t.Fatalf("expected name snapshots, got %q/%q", rec.MareName, rec.StallionName)
	}
	if rec.ParentID != "" {
		t.Fatalf("insemination must not have a parent, got %q", rec.ParentID)
	}

	want := date.AddDate(0, 0, GestationDays)
	if rec.ExpectedBirthDate == nil || !rec.ExpectedBirthDate.Equal(want) {
		t.Fatalf("expected birth date %v, got %v", want, rec.ExpectedBirthDate)
	}
}

func TestStartInsemination_RejectsUnknownMare(t *testing.T) {
	svc, repo := newFixture(t)

	_, err := svc.StartInsemination(context.Background(), StartInseminationInput{
		MareID: "ghost",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrMareNotFound) {
		t.Fatalf("expected ErrMareNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must stay untouched on validation failure")
	}
}

func TestStartInsemination_RejectsNonFemale(t *testing.T) {
	svc, _ := newFixture(t)

	for _, id := range []string{"stallion-1", "gelding-1"} {
		_, err := svc.StartInsemination(context.Background(), StartInseminationInput{
			MareID: id,
			Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, ErrNotAMare) {
			t.Fatalf("%s: expected ErrNotAMare, got %v", id, err)
		}
	}
}

func TestStartInsemination_RejectsFutureDate(t *testing.T) {
	svc, repo := newFixture(t)

	_, err := svc.StartInsemination(context.Background(), StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must stay untouched on validation failure")
	}
}

// -------------------------
// Lifecycle
// -------------------------

func TestLifecycle_FullLineageProducesThreeLinkedRecords(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	ins, err := svc.StartInsemination(ctx, StartInseminationInput{
		MareID:     "mare-1",
		StallionID: "stallion-1",
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	conf, err := svc.ConfirmInsemination(ctx, ins.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if conf.Insemination.Status != StatusCompleted {
		t.Fatalf("insemination must end completed, got %s", conf.Insemination.Status)
	}
	if conf.Gestation.Type != TypeGestation || conf.Gestation.Status != StatusInProgress {
		t.Fatalf("expected in-progress gestation, got %s/%s", conf.Gestation.Type, conf.Gestation.Status)
	}
	if conf.Gestation.ParentID != ins.ID {
		t.Fatalf("gestation parent = %q, want %q", conf.Gestation.ParentID, ins.ID)
	}
	if conf.Gestation.ExpectedBirthDate == nil || !conf.Gestation.ExpectedBirthDate.Equal(*ins.ExpectedBirthDate) {
		t.Fatalf("gestation must carry the expected birth date")
	}

	fin, err := svc.FinalizeGestation(ctx, conf.Gestation.ID, FinalizeInput{
		FoalName: "Relâmpago",
		FoalSex:  FoalMale,
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if fin.Gestation.Status != StatusCompleted {
		t.Fatalf("gestation must end completed, got %s", fin.Gestation.Status)
	}
	if fin.Birth.Status != StatusCompleted {
		t.Fatalf("birth must be completed immediately, got %s", fin.Birth.Status)
	}
	if fin.Birth.ParentID != conf.Gestation.ID {
		t.Fatalf("birth parent = %q, want %q", fin.Birth.ParentID, conf.Gestation.ID)
	}
	if fin.Birth.FoalName != "Relâmpago" || fin.Birth.FoalSex != FoalMale {
		t.Fatalf("birth must carry foal data, got %q/%s", fin.Birth.FoalName, fin.Birth.FoalSex)
	}

	if len(repo.byID) != 3 {
		t.Fatalf("full lineage must leave exactly 3 records, got %d", len(repo.byID))
	}
}

func TestConfirmInsemination_SecondCallFails(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	ins, err := svc.StartInsemination(ctx, StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.ConfirmInsemination(ctx, ins.ID); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if _, err := svc.ConfirmInsemination(ctx, ins.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second confirm: expected ErrInvalidTransition, got %v", err)
	}

	// Exactamente una gestación por confirmación exitosa.
	gestations := 0
	for _, rec := range repo.byID {
		if rec.Type == TypeGestation {
			gestations++
		}
	}
	if gestations != 1 {
		t.Fatalf("expected exactly 1 gestation, got %d", gestations)
	}
}

func TestConfirmInsemination_RejectsGestation(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	ins, _ := svc.StartInsemination(ctx, StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	conf, _ := svc.ConfirmInsemination(ctx, ins.ID)

	if _, err := svc.ConfirmInsemination(ctx, conf.Gestation.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on gestation, got %v", err)
	}
}

func TestFinalizeGestation_EmptyFoalNameLeavesGestationUntouched(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	ins, _ := svc.StartInsemination(ctx, StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	conf, _ := svc.ConfirmInsemination(ctx, ins.ID)

	_, err := svc.FinalizeGestation(ctx, conf.Gestation.ID, FinalizeInput{
		FoalName: "   ",
		FoalSex:  FoalFemale,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := repo.GetByID(ctx, conf.Gestation.ID)
	if got.Status != StatusInProgress {
		t.Fatalf("gestation must remain in progress, got %s", got.Status)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("no birth record must be created, got %d records", len(repo.byID))
	}
}

func TestCancel_HaltsLineage(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	ins, _ := svc.StartInsemination(ctx, StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	cancelled, err := svc.Cancel(ctx, ins.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	if _, err := svc.ConfirmInsemination(ctx, ins.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirm after cancel: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.Cancel(ctx, ins.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel twice: expected ErrInvalidTransition, got %v", err)
	}
}

func TestActiveGestations_OnlyInProgress(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	ins, _ := svc.StartInsemination(ctx, StartInseminationInput{
		MareID: "mare-1",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	conf, _ := svc.ConfirmInsemination(ctx, ins.ID)

	active, err := svc.ActiveGestations(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != conf.Gestation.ID {
		t.Fatalf("expected the one in-progress gestation, got %v", active)
	}

	if _, err := svc.FinalizeGestation(ctx, conf.Gestation.ID, FinalizeInput{FoalName: "Luna", FoalSex: FoalFemale}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	active, _ = svc.ActiveGestations(ctx)
	if len(active) != 0 {
		t.Fatalf("expected no active gestations after birth, got %d", len(active))
	}
}

func TestPurgeHorse_RemovesMareAndStallionRecords(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	if _, err := svc.StartInsemination(ctx, StartInseminationInput{
		MareID:     "mare-1",
		StallionID: "stallion-1",
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.PurgeHorse(ctx, "stallion-1"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected stallion records purged, got %d left", len(repo.byID))
	}
}
