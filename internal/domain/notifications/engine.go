package notifications

import (
	"context"
	"fmt"
	"time"

	"horse-control/internal/domain/competitions"
	"horse-control/internal/domain/health"
	"horse-control/internal/domain/horses"
	"horse-control/internal/domain/reproduction"
	"horse-control/internal/domain/stock"
	"horse-control/internal/platform/logger"
	"horse-control/internal/platform/metrics"
)

// Ventanas de anticipación de cada categoría, en días.
const (
	competitionWindowDays = 7
	birthWindowDays       = 30
	birthWarningDays      = 7
)

// Las fuentes son los servicios de dominio; el motor solo necesita las
// consultas derivadas, no el CRUD completo.
type (
	EventSource interface {
		ListScheduled(ctx context.Context) ([]health.Event, error)
	}
	StockSource interface {
		LowStock(ctx context.Context) ([]stock.Item, error)
	}
	HorseSource interface {
		List(ctx context.Context) ([]horses.Horse, error)
	}
	CompetitionSource interface {
		ListConfirmedWithin(ctx context.Context, days int) ([]competitions.Competition, error)
	}
	GestationSource interface {
		ActiveGestations(ctx context.Context) ([]reproduction.Record, error)
	}
)

// Engine recorre los repositorios de dominio y materializa alertas
// de-duplicadas. Cada pasada re-escanea todo: no hay estado incremental
// más allá de la marca de último chequeo.
type Engine struct {
	notifs *Service

	events EventSource
	stock  StockSource
	horses HorseSource
	comps  CompetitionSource
	repro  GestationSource

	log logger.Logger
	now func() time.Time
}

func NewEngine(notifs *Service, events EventSource, st StockSource, h HorseSource, c CompetitionSource, r GestationSource, log logger.Logger) *Engine {
	return &Engine{
		notifs: notifs,
		events: events,
		stock:  st,
		horses: h,
		comps:  c,
		repro:  r,
		log:    log,
		now:    time.Now,
	}
}

// Run ejecuta una pasada inmediata y después una por minuto hasta que
// el contexto se cancele.
func (e *Engine) Run(ctx context.Context) {
	e.tick(ctx)

	t := time.NewTicker(60 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.tick(ctx)
		}
	}
}

func (e *Engine) tick(ctx context.Context) {
	created, err := e.Generate(ctx)
	if err != nil {
		metrics.NotificationRunErrors.Inc()
		e.log.Error("notification pass failed", map[string]any{"error": err.Error()})
		return
	}
	if created > 0 {
		e.log.Info("notifications generated", map[string]any{"count": created})
	}
}

// Generate corre una pasada completa y devuelve cuántas notificaciones
// nuevas se insertaron. Es idempotente sobre datos sin cambios: correrla
// dos veces seguidas no agrega nada la segunda vez.
func (e *Engine) Generate(ctx context.Context) (int, error) {
	cfg, err := e.notifs.Settings(ctx)
	if err != nil {
		return 0, err
	}
	if !cfg.Enabled {
		return 0, nil
	}

	created := 0
	add := func(category string, in AddInput) error {
		_, ok, err := e.notifs.Add(ctx, in)
		if err != nil {
			return err
		}
		if ok {
			created++
			metrics.NotificationsGenerated.WithLabelValues(category).Inc()
		}
		return nil
	}

	now := e.now()

	if cfg.EventReminders {
		if err := e.generateEventReminders(ctx, now, add); err != nil {
			return created, err
		}
	}
	if cfg.LowStockAlerts {
		if err := e.generateLowStock(ctx, add); err != nil {
			return created, err
		}
	}
	if cfg.HealthAlerts {
		if err := e.generateHealthAlerts(ctx, add); err != nil {
			return created, err
		}
	}
	if cfg.CompetitionReminders {
		if err := e.generateCompetitionReminders(ctx, now, add); err != nil {
			return created, err
		}
	}
	if cfg.ReproductionAlerts {
		if err := e.generateBirthAlerts(ctx, now, add); err != nil {
			return created, err
		}
	}

	metrics.NotificationRuns.Inc()
	if err := e.notifs.repo.SetLastChecked(ctx, e.now()); err != nil {
		return created, err
	}
	return created, nil
}

func (e *Engine) generateEventReminders(ctx context.Context, now time.Time, add func(string, AddInput) error) error {
	events, err := e.events.ListScheduled(ctx)
	if err != nil {
		return err
	}
	for _, ev := range events {
		switch daysUntil(now, ev.Date) {
		case 0:
			// Una vez por evento por día: el bucket de fecha va en la clave.
			err = add("event", AddInput{
				Type:     TypeWarning,
				Title:    "Event today",
				Message:  fmt.Sprintf("%q is scheduled for today", ev.Title),
				Link:     "/agenda",
				DedupKey: fmt.Sprintf("event-today-%s-%s", ev.ID, now.Format("2006-01-02")),
			})
		case 1:
			err = add("event", AddInput{
				Type:     TypeInfo,
				Title:    "Event tomorrow",
				Message:  fmt.Sprintf("%q is scheduled for tomorrow", ev.Title),
				Link:     "/agenda",
				DedupKey: fmt.Sprintf("event-tomorrow-%s", ev.ID),
			})
		default:
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) generateLowStock(ctx context.Context, add func(string, AddInput) error) error {
	items, err := e.stock.LowStock(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		// Una sola alerta por ítem; subir la cantidad después no la
		// resuelve automáticamente.
		err := add("stock", AddInput{
			Type:     TypeWarning,
			Title:    "Low stock: " + it.Name,
			Message:  fmt.Sprintf("%d %s left, minimum is %d", it.Quantity, it.Unit, it.MinQuantity),
			Link:     "/estoque",
			DedupKey: "stock-low-" + it.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) generateHealthAlerts(ctx context.Context, add func(string, AddInput) error) error {
	all, err := e.horses.List(ctx)
	if err != nil {
		return err
	}
	for _, h := range all {
		var (
			typ Type
			msg string
		)
		switch h.Status {
		case horses.StatusInTreatment:
			typ, msg = TypeError, "is in treatment"
		case horses.StatusUnderObservation:
			typ, msg = TypeWarning, "is under observation"
		default:
			continue
		}
		err := add("health", AddInput{
			Type:     typ,
			Title:    "Health alert: " + h.Name,
			Message:  fmt.Sprintf("%s %s", h.Name, msg),
			Link:     "/saude",
			DedupKey: "health-" + h.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) generateCompetitionReminders(ctx context.Context, now time.Time, add func(string, AddInput) error) error {
	upcoming, err := e.comps.ListConfirmedWithin(ctx, competitionWindowDays)
	if err != nil {
		return err
	}
	for _, c := range upcoming {
		days := daysUntil(now, c.Date)
		typ := TypeInfo
		if days <= 1 {
			typ = TypeWarning
		}
		err := add("competition", AddInput{
			Type:     typ,
			Title:    "Competition coming up: " + c.Name,
			Message:  fmt.Sprintf("%s is in %d day(s)", c.Name, days),
			Link:     "/competicao",
			DedupKey: fmt.Sprintf("competition-%s-%d", c.ID, days),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) generateBirthAlerts(ctx context.Context, now time.Time, add func(string, AddInput) error) error {
	gestations, err := e.repro.ActiveGestations(ctx)
	if err != nil {
		return err
	}
	for _, g := range gestations {
		if g.ExpectedBirthDate == nil {
			continue
		}
		days := daysUntil(now, *g.ExpectedBirthDate)
		if days < 0 || days > birthWindowDays {
			continue
		}
		typ := TypeInfo
		if days <= birthWarningDays {
			typ = TypeWarning
		}
		err := add("reproduction", AddInput{
			Type:     typ,
			Title:    "Birth approaching: " + g.MareName,
			Message:  fmt.Sprintf("%s is expected to give birth in %d day(s)", g.MareName, days),
			Link:     "/reproducao",
			DedupKey: "birth-" + g.MareID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// daysUntil compara por componentes de fecha, no por instante: dos
// timestamps del mismo día cuentan como 0 aunque vengan en zonas
// horarias distintas.
func daysUntil(now, t time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
