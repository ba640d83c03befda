// Command goblog is a small blog application: users sign up, log in,
// and manage articles through a JSON REST API and server-rendered views.
//
// This file wires the whole system together: configuration, logging, the
// store backend, services, handlers, the router with its middleware, and a
// graceful shutdown path. Dependencies are injected explicitly through
// constructors; there is no container.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mirinai/goblog/articles"
	"github.com/mirinai/goblog/auth"
	"github.com/mirinai/goblog/config"
	"github.com/mirinai/goblog/db"
	"github.com/mirinai/goblog/users"
	"github.com/mirinai/goblog/web"
)

// httpRequests counts handled requests by method and status, exposed on
// /metrics.
var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total number of HTTP requests handled, by method and status code.",
	},
	[]string{"method", "status"},
)

func main() {
	// .env is a development convenience; in production the variables are set
	// directly.
	if err := godotenv.Load(); err != nil {
		fmt.Printf("warning: .env file not found or error loading it: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Pick the store backend. The memory driver runs the whole application
	// without PostgreSQL; the postgres driver connects, migrates, and hands
	// the pool to both feature stores.
	var articleStore articles.Store
	var userStore users.Store
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := db.NewPool(cfg.Database)
		if err != nil {
			sugar.Fatalw("failed to create database pool", "error", err)
		}
		defer pool.Close()

		if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
			sugar.Fatalw("failed to run migrations", "error", err)
		}

		articleStore = articles.NewPostgresStore(pool)
		userStore = users.NewPostgresStore(pool)
	} else {
		sugar.Warnw("using in-memory storage, all data is lost on shutdown")
		articleStore = articles.NewMemStore()
		userStore = users.NewMemStore()
	}

	// Security policy: built once here and passed by reference everywhere it
	// is needed, never read from globals.
	policy := auth.NewPolicy(cfg.Auth.SessionCookie)
	if !policy.CSRFProtection {
		sugar.Warnw("CSRF protection is disabled for compatibility; this is a known weakness")
	}

	sessions := auth.NewSessionStore(cfg.Auth.SessionTTL)
	defer sessions.Close()

	// Services and handlers.
	articleService := articles.NewArticleService(articleStore, sugar)
	articleHandlers := articles.NewHandlers(articleService)

	registrationService := users.NewRegistrationService(userStore, cfg.Auth.BcryptCost, sugar)
	userHandlers := users.NewHandlers(registrationService)

	authService := auth.NewService(users.NewAuthAdapter(userStore))
	authHandlers := auth.NewHandlers(authService, sessions, policy, sugar)

	views, err := web.NewViews(articleService, sugar)
	if err != nil {
		sugar.Fatalw("failed to build views", "error", err)
	}

	prometheus.MustRegister(httpRequests)

	r := chi.NewRouter()

	// Global middleware; chi requires all of it to be registered before any
	// routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(sugar))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(countRequests)
	r.Use(auth.Sessions(sessions, policy))
	r.Use(auth.RequireAuthenticated(policy))

	// REST API.
	r.Route("/api/articles", func(r chi.Router) {
		articleHandlers.RegisterRoutes(r)
	})

	// Views and the form-based auth flow.
	r.Get("/articles", views.HandleArticleList())
	r.Get("/articles/{id}", views.HandleArticleDetail())
	r.Get("/login", views.HandleLoginPage())
	r.Post("/login", authHandlers.HandleLogin())
	r.Get("/logout", authHandlers.HandleLogout())
	r.Get("/signup", views.HandleSignupPage())
	r.Post("/user", userHandlers.HandleRegister())
	r.Handle("/static/*", web.StaticHandler())

	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("failed to start server", "error", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests before
	// exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalw("server shutdown failed", "error", err)
	}
	sugar.Infow("server stopped gracefully")
}

// requestLogger logs one structured line per request.
func requestLogger(logger *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// countRequests feeds the Prometheus request counter.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
