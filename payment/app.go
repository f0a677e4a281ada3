package payment

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/exp/slog"

	"github.com/partnerpay/paymentpage/internal/cards"
	"github.com/partnerpay/paymentpage/internal/middleware"
	"github.com/partnerpay/paymentpage/internal/override"
	"github.com/partnerpay/paymentpage/plugins/testcards"
)

// App is the main application. It wires the repository backend, the brand
// catalog and the override registry, and owns the HTTP server lifecycle.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "paymentpage"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	// Choose repository backend: default to pg for runtime; allow mem only
	// when explicitly enabled for tests.
	var repository *Repository
	backend := getenv("REPO_BACKEND", "pg")
	allowMem := getenv("ALLOW_MEM_BACKEND_FOR_TESTS", "false") == "true"
	switch backend {
	case "pg":
		dsn := getenv("DB_DSN", "")
		if dsn == "" {
			return fmt.Errorf("DB_DSN is required for pg backend")
		}
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxIdleConns(5)
		db.SetMaxOpenConns(10)
		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		repository = NewPGRepository(db)
	case "mem":
		if !allowMem {
			return fmt.Errorf("mem repository is disabled at runtime; set ALLOW_MEM_BACKEND_FOR_TESTS=true only in tests")
		}
		repository = NewRepository()
	default:
		return fmt.Errorf("unsupported REPO_BACKEND=%s", backend)
	}

	// The catalog is a configuration error boundary: a malformed catalog
	// aborts startup here instead of failing requests later.
	catalog := cards.DefaultCatalog()

	overrides := override.NewRegistry()
	if a.config.TestCardPrefix != "" {
		plugin := testcards.New(a.config.TestCardPrefix)
		overrides.Use(plugin)
		a.logger.Info("plugin registered", slog.String("plugin", plugin.Name()))
	}

	service := NewService(repository, catalog, overrides, a.config)

	api := NewAPI(service)
	api.AppendRoutes(router)

	// Health endpoints
	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := repository.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	a.srv.Shutdown(context.Background())

	a.wg.Wait()

	a.logger.Info("app stopped")
}
