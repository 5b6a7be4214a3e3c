package router

import (
	"net/http"
	"os"

	"horse-control/internal/adapters/storage/kv"
	mem "horse-control/internal/adapters/storage/memory"
	pg "horse-control/internal/adapters/storage/postgres"
	"horse-control/internal/adapters/storage/sqlite"
	"horse-control/internal/domain/collaborators"
	"horse-control/internal/domain/competitions"
	"horse-control/internal/domain/finance"
	"horse-control/internal/domain/health"
	"horse-control/internal/domain/horses"
	"horse-control/internal/domain/notifications"
	"horse-control/internal/domain/reproduction"
	"horse-control/internal/domain/settings"
	"horse-control/internal/domain/stock"
	"horse-control/internal/domain/users"
	"horse-control/internal/middleware"
	"horse-control/internal/platform/logger"
	"horse-control/internal/ports/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "horse-control/docs"
)

type Options struct {
	Log logger.Logger

	// Opcional: si viene, se usa tal cual. Si no, se elige por env:
	// DB_DSN => Postgres, HC_DB_PATH => SQLite, nada => in-memory.
	Store store.Store

	// DevAuth habilita el header X-Debug-User-ID en lugar del
	// verifier de sesiones. Solo para desarrollo.
	DevAuth bool
}

// App agrupa lo que main necesita: el handler HTTP y el motor de
// notificaciones para correrlo como tarea de fondo.
type App struct {
	Handler http.Handler
	Engine  *notifications.Engine
}

func New(opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	st := opts.Store
	if st == nil {
		var err error
		st, err = storeFromEnv(log)
		if err != nil {
			return nil, err
		}
	}

	// Repos sobre el almacén de documentos
	horseRepo := kv.NewHorseRepo(st)
	eventRepo := kv.NewHealthEventRepo(st)
	stockRepo := kv.NewStockRepo(st)
	txRepo := kv.NewTransactionRepo(st)
	compRepo := kv.NewCompetitionRepo(st)
	collabRepo := kv.NewCollaboratorRepo(st)
	reproRepo := kv.NewReproductionRepo(st)
	notifRepo := kv.NewNotificationRepo(st)
	userRepo := kv.NewUserRepo(st)
	settingsRepo := kv.NewSettingsRepo(st)

	// Services por módulo
	horsesSvc := horses.NewService(horseRepo)
	healthSvc := health.NewService(eventRepo)
	financeSvc := finance.NewService(txRepo)
	stockSvc := stock.NewService(stockRepo, financeSvc)
	compsSvc := competitions.NewService(compRepo)
	collabSvc := collaborators.NewService(collabRepo)
	reproSvc := reproduction.NewService(reproRepo, horsesSvc)
	notifsSvc := notifications.NewService(notifRepo)
	usersSvc := users.NewService(userRepo)
	settingsSvc := settings.NewService(settingsRepo)

	// Cascada del agregado Horse: el orden de registro es el de ejecución.
	horsesSvc.OnDelete(healthSvc, reproSvc, compsSvc)

	engine := notifications.NewEngine(notifsSvc, healthSvc, stockSvc, horsesSvc, compsSvc, reproSvc, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.DevAuth {
		r.Use(middleware.AuthContext(nil))
	} else {
		r.Use(middleware.AuthContext(usersSvc))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	horses.RegisterRoutes(r, horsesSvc)
	health.RegisterRoutes(r, healthSvc, horsesSvc)
	stock.RegisterRoutes(r, stockSvc)
	finance.RegisterRoutes(r, financeSvc)
	competitions.RegisterRoutes(r, compsSvc, horsesSvc)
	collaborators.RegisterRoutes(r, collabSvc)
	reproduction.RegisterRoutes(r, reproSvc)
	notifications.RegisterRoutes(r, notifsSvc, engine)
	settings.RegisterRoutes(r, settingsSvc)

	return &App{Handler: r, Engine: engine}, nil
}

func storeFromEnv(log logger.Logger) (store.Store, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		st, err := pg.Open(dsn)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres store", nil)
		return st, nil
	}
	if path := os.Getenv("HC_DB_PATH"); path != "" {
		st, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite store", map[string]any{"path": path})
		return st, nil
	}
	log.Warn("using in-memory store, data will not survive restarts", nil)
	return mem.NewStore(), nil
}
