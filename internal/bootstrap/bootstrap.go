package bootstrap

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/rs/cors"

	assistantinadapter "lernova/internal/modules/assistant/adapter/in"
	assistantoutadapter "lernova/internal/modules/assistant/adapter/out"
	assistantservice "lernova/internal/modules/assistant/service"
	assistantusecase "lernova/internal/modules/assistant/usecase"
	focusinadapter "lernova/internal/modules/focus/adapter/in"
	focusoutadapter "lernova/internal/modules/focus/adapter/out"
	focusout "lernova/internal/modules/focus/port/out"
	focusservice "lernova/internal/modules/focus/service"
	focususecase "lernova/internal/modules/focus/usecase"
	oracleinadapter "lernova/internal/modules/oracle/adapter/in"
	oracleoutadapter "lernova/internal/modules/oracle/adapter/out"
	oracleout "lernova/internal/modules/oracle/port/out"
	oracleservice "lernova/internal/modules/oracle/service"
	oracleusecase "lernova/internal/modules/oracle/usecase"
	settingsinadapter "lernova/internal/modules/settings/adapter/in"
	settingsoutadapter "lernova/internal/modules/settings/adapter/out"
	settingsservice "lernova/internal/modules/settings/service"
	settingsusecase "lernova/internal/modules/settings/usecase"
	"lernova/internal/platform/clock"
	"lernova/internal/platform/config"
	"lernova/internal/platform/httpx"
	"lernova/internal/platform/id"
	"lernova/internal/platform/sqlitedb"
	"lernova/internal/platform/tx"
	uiapp "lernova/internal/ui/app"
)

type App struct {
	FocusCLI     focusinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler
	OracleCLI    oracleinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler

	focusHTTP     focusinadapter.HTTPHandler
	settingsHTTP  settingsinadapter.HTTPHandler
	assistantHTTP assistantinadapter.HTTPHandler

	cfg      config.Config
	logger   hclog.Logger
	db       *sql.DB
	provider oracleout.Provider
}

func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlitedb.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	sessionStore, err := focusoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new session store: %w", err)
	}
	settingsStore, err := settingsoutadapter.NewSQLiteSettingsStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new settings store: %w", err)
	}

	provider, err := newProvider(cfg.Oracle, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	oracleUC := oracleusecase.NewInteractor(oracleservice.NewOracleService(provider, clk, logger, cfg.Oracle.Timeout))
	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(clk, settingsStore))

	var reports focusout.ReportStore
	if cfg.Focus.ReportsDir != "" {
		reports = focusoutadapter.NewVaultReportStore(cfg.Focus.ReportsDir)
	}
	focusUC := focususecase.NewInteractor(
		focusservice.NewSessionService(clk, ids, sessionStore, tx.NewKeyedManager()),
		focusservice.NewClassifier(
			focusoutadapter.NewOracleAdapter(oracleUC),
			logger,
			cfg.Oracle.Timeout,
			cfg.Focus.BatchConcurrency,
			cfg.Focus.BatchTimeout,
		),
		focusoutadapter.NewSettingsAdapter(settingsUC),
		reports,
		logger,
	)

	assistantUC := assistantusecase.NewInteractor(
		assistantservice.NewAssistantService(assistantoutadapter.NewOracleAdapter(oracleUC), logger),
		assistantoutadapter.NewFocusSuggester(focusUC),
		logger,
	)

	return &App{
		FocusCLI:      focusinadapter.NewCLIHandler(focusUC),
		SettingsCLI:   settingsinadapter.NewCLIHandler(settingsUC),
		OracleCLI:     oracleinadapter.NewCLIHandler(oracleUC),
		AssistantCLI:  assistantinadapter.NewCLIHandler(assistantUC),
		focusHTTP:     focusinadapter.NewHTTPHandler(focusUC, cfg.Focus.DefaultUser),
		settingsHTTP:  settingsinadapter.NewHTTPHandler(settingsUC, cfg.Focus.DefaultUser),
		assistantHTTP: assistantinadapter.NewHTTPHandler(assistantUC),
		cfg:           cfg,
		logger:        logger,
		db:            db,
		provider:      provider,
	}, nil
}

func newProvider(cfg config.OracleConfig, logger hclog.Logger) (oracleout.Provider, error) {
	switch cfg.Provider {
	case config.OracleGroq:
		return oracleoutadapter.NewGroqProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, &http.Client{Timeout: cfg.Timeout}), nil
	case config.OraclePlugin:
		return oracleoutadapter.NewPluginProvider(cfg.Plugin.Binary, cfg.Plugin.SHA256, logger), nil
	case config.OracleNone:
		return oracleoutadapter.NewDisabledProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider %q", cfg.Provider)
	}
}

// Handler builds the HTTP surface: module routes, a health check, request
// logging and CORS for the configured extension origins.
func (a *App) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"status": "healthy"})
	}).Methods(http.MethodGet)
	a.focusHTTP.Register(router)
	a.settingsHTTP.Register(router)
	a.assistantHTTP.Register(router)
	router.Use(requestLogger(a.logger.Named("http")))

	return cors.New(cors.Options{
		AllowedOrigins:   a.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)
}

func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) Close() error {
	var firstErr error
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger hclog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(started))
		})
	}
}

func RunTUI(app *App, userID string) error {
	model := uiapp.NewModel(app.FocusCLI, app.SettingsCLI, userID)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
