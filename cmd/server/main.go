package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yukikurage/timesheet-api/internal/config"
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/handlers"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/token"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	log := mustMakeLogger(cfg.LogLevel, cfg.GinMode)

	loc, err := cfg.Location()
	if err != nil {
		log.Error("cannot resolve timezone", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Error("cannot connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db, log); err != nil {
		log.Error("cannot migrate database", "error", err)
		os.Exit(1)
	}

	if cfg.SeedDefaults {
		if err := database.SeedDepartments(db); err != nil {
			log.Error("cannot seed departments", "error", err)
			os.Exit(1)
		}
	}

	store, err := newSessionStore(cfg, log)
	if err != nil {
		log.Error("cannot create session store", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	jobRepo := repository.NewJobCodeRepository(db)

	curfew := services.NewCurfewPolicy(time.Now, loc)

	router := handlers.NewRouter(handlers.Dependencies{
		Auth:        services.NewAuthService(userRepo),
		Tasks:       services.NewTaskService(taskRepo, curfew),
		Reports:     services.NewReportService(taskRepo, userRepo, jobRepo, deptRepo, loc),
		Users:       services.NewUserService(userRepo, deptRepo),
		Departments: services.NewDepartmentService(deptRepo),
		JobCodes:    services.NewJobCodeService(jobRepo, deptRepo, userRepo),
		Curfew:      curfew,
		Tokens:      token.NewManager(cfg.JWTSecret, cfg.JWTExpiry),
		Sessions:    store,
		Log:         log,
	})

	server := http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler:           router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("timesheet api listening", "address", server.Addr, "timezone", loc.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config, log *slog.Logger) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		log.Info("using redis session store", "address", addr)
		store = rs
	} else {
		log.Info("using cookie session store")
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func mustMakeLogger(logLevel, ginMode string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if ginMode == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
