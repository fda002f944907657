package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"labour-dashboard/internal/archive"
	"labour-dashboard/internal/config"
	"labour-dashboard/internal/cron"
	"labour-dashboard/internal/handlers"
	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/insight"
	"labour-dashboard/internal/middleware"
	"labour-dashboard/internal/mockdata"
	"labour-dashboard/internal/store"
)

func main() {
	// 1. Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Open the blob store backing the roster and session
	blobs, cleanup, err := openBlobStore(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer cleanup()

	userStore := store.New(blobs)

	// 3. Initialize the submission archive (local filesystem — swap to S3
	//    by setting ARCHIVE_BACKEND=s3)
	sink, err := openArchiveSink(cfg.Archive)
	if err != nil {
		log.Fatalf("Failed to initialize archive: %v", err)
	}

	// 4. Set up router with global middleware
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5. Initialize handlers with their dependencies
	authHandler := handlers.NewAuthHandler(userStore, cfg.JWTSecret)
	dashboardHandler := handlers.NewDashboardHandler(
		mockdata.New(),
		insight.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		userStore,
	)
	reportsHandler := handlers.NewReportsHandler(userStore, sink)
	userHandler := handlers.NewUserHandler(userStore)

	// Start background jobs
	cron.StartRosterBackup(userStore, sink)

	// 6. Public routes (no authentication required)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Labour Department Dashboard API"))
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.JSON(w, http.StatusOK, map[string]string{"status": "up"})
	})
	r.Post("/api/auth/login", authHandler.Login)

	// 7. Protected routes (require valid JWT)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		// Current user profile and session
		r.Get("/api/auth/me", authHandler.GetMe)
		r.Post("/api/auth/logout", authHandler.Logout)

		// Dashboard (role-scoped — every authenticated officer)
		r.Get("/api/dashboard", dashboardHandler.GetDashboard)

		// AI insight — one generation per caller at a time
		r.With(middleware.RateLimit(rate.Every(2*time.Second), 1)).
			Post("/api/dashboard/insight", dashboardHandler.GenerateInsight)

		// Submission archive listing — any authenticated officer
		r.Get("/api/reports/submissions", reportsHandler.ListSubmissions)

		// Monthly child-labour summary — ALO form
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(hierarchy.RoleALO))

			r.Get("/api/reports/monthly/new", reportsHandler.NewMonthly)
			r.Post("/api/reports/monthly/recalculate", reportsHandler.RecalculateMonthly)
			r.Post("/api/reports/monthly", reportsHandler.SubmitMonthly)

			r.Get("/api/reports/childlabour/new", reportsHandler.NewChildCase)
			r.Post("/api/reports/childlabour", reportsHandler.SubmitChildBatch)
		})

		// Act-wise case summary — ACL form
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(hierarchy.RoleACL))

			r.Get("/api/reports/actwise/new", reportsHandler.NewActWise)
			r.Post("/api/reports/actwise/recalculate", reportsHandler.RecalculateActWise)
			r.Post("/api/reports/actwise", reportsHandler.SubmitActWise)
		})

		// Export — supervisory roles and above
		r.With(middleware.RequireMinRole(hierarchy.RoleACL)).
			Get("/api/reports/monthly/export", reportsHandler.ExportMonthly)

		// User management — COMMISSIONER may inspect the roster,
		// provisioning and revocation stay with ADMIN
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireMinRole(hierarchy.RoleCommissioner))

			r.Get("/api/users", userHandler.List)
			r.Get("/api/users/supervisors", userHandler.Supervisors)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireMinRole(hierarchy.RoleAdmin))

			r.Post("/api/users", userHandler.Create)
			r.Delete("/api/users/{id}", userHandler.Delete)
		})
	})

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server started on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-done
	log.Println("Server stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}

// openBlobStore builds the configured persistence backend. The returned
// cleanup closes any underlying connections.
func openBlobStore(cfg config.StoreConfig) (store.BlobStore, func(), error) {
	switch cfg.Backend {
	case config.StoreFile:
		bs, err := store.NewFileBlobStore(cfg.Dir)
		return bs, func() {}, err
	case config.StoreSQLite:
		bs, err := store.NewSQLiteBlobStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return bs, func() { bs.Close() }, nil
	case config.StorePostgres:
		bs, err := store.NewPostgresBlobStore(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return bs, func() { bs.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// openArchiveSink builds the configured submission archive.
func openArchiveSink(cfg config.ArchiveConfig) (archive.Sink, error) {
	switch cfg.Backend {
	case config.ArchiveLocal:
		return archive.NewLocalSink(cfg.Dir)
	case config.ArchiveS3:
		return archive.NewS3Sink(context.Background(),
			cfg.S3.Endpoint, cfg.S3.Region,
			cfg.S3.AccessKey, cfg.S3.SecretKey,
			cfg.S3.Bucket, cfg.S3.Prefix,
		)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}
