package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/game-tec/pointsboard/internal/api/http"
	auth "github.com/game-tec/pointsboard/internal/auth/middleware"
	"github.com/game-tec/pointsboard/internal/config"
	"github.com/game-tec/pointsboard/internal/db"
	"github.com/game-tec/pointsboard/internal/ledger"
	"github.com/game-tec/pointsboard/internal/store"
	"github.com/game-tec/pointsboard/internal/teams"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	catalog, err := ledger.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	// --- Stores ---
	var ledgerStore ledger.Store
	var registryStore teams.Store
	switch cfg.StoreDriver {
	case "file":
		ledgerStore = store.NewLedgerFile(cfg.DataFile)
		registryStore = store.NewRegistryFile(cfg.TeamsFile)
	case "sqlite", "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		ledgerStore = store.NewLedgerSQL(dbh)
		registryStore = store.NewRegistrySQL(dbh)
	default:
		log.Fatalf("unsupported store driver: %s", cfg.StoreDriver)
	}

	ledgerSvc := ledger.NewService(ledgerStore, catalog)
	teamsSvc := teams.NewService(registryStore, ledgerSvc, time.Now)
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if cfg.EnableMetrics {
		r.Use(api.MetricsMiddleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Staff surface (ledger + rankings + teams overview)
	r.Post("/students", api.RegisterStudentHandler(ledgerSvc))
	r.Post("/students/{modality}/bulk", api.BulkRegisterHandler(ledgerSvc))
	r.Post("/students/delete", api.DeleteStudentHandler(ledgerSvc))
	r.Post("/students/bulk-delete", api.BulkDeleteHandler(ledgerSvc))
	r.Get("/students/{modality}", api.ListStudentsHandler(ledgerSvc))

	r.Post("/points", api.AddPointsHandler(ledgerSvc))
	r.Get("/rankings/{modality}", api.GetRankingHandler(ledgerSvc))
	r.Get("/rankings/{modality}/export", api.ExportRankingHandler(ledgerSvc, cfg.ExportDir))

	r.Get("/catalog", api.CatalogHandler(ledgerSvc))
	r.Post("/admin/reset", api.ResetHandler(ledgerSvc))
	r.Get("/teams/admin/summary", api.TeamsAdminSummaryHandler(teamsSvc))
	r.Get("/teams/{teamID}/ranking", api.TeamRankingHandler(teamsSvc))

	// Student self-service surface
	r.Post("/teams/register", api.TeamRegisterHandler(teamsSvc, authSvc))
	r.Post("/teams/login", api.TeamLoginHandler(teamsSvc, authSvc))
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Get("/teams/me", api.MeHandler(teamsSvc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	if cfg.EnableMetrics {
		r.Method("GET", "/metrics", api.MetricsHandler())
	}

	log.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.StoreDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
