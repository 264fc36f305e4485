package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kumarsatish86/complianceos-suggest/internal/application"
	applib "github.com/kumarsatish86/complianceos-suggest/internal/application/library"
	appsugg "github.com/kumarsatish86/complianceos-suggest/internal/application/suggestions"
	"github.com/kumarsatish86/complianceos-suggest/internal/config"
	domai "github.com/kumarsatish86/complianceos-suggest/internal/domain/ai"
	domev "github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
	domlib "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
	domq "github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domsugg "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
	aiopenai "github.com/kumarsatish86/complianceos-suggest/internal/infra/ai/openai"
	mysqlp "github.com/kumarsatish86/complianceos-suggest/internal/infra/db/mysql"
	postgresp "github.com/kumarsatish86/complianceos-suggest/internal/infra/db/postgres"
	"github.com/kumarsatish86/complianceos-suggest/internal/infra/httpserver"
	minioStore "github.com/kumarsatish86/complianceos-suggest/internal/infra/storage"
	"github.com/kumarsatish86/complianceos-suggest/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect DB sesuai driver
	var (
		db           *sql.DB
		questionRepo domq.Repository
		evidenceRepo domev.Repository
		libraryRepo  domlib.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		questionRepo = postgresp.NewQuestionRepository(db)
		evidenceRepo = postgresp.NewEvidenceRepository(db)
		libraryRepo = postgresp.NewLibraryRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		questionRepo = mysqlp.NewQuestionRepository(db)
		evidenceRepo = mysqlp.NewEvidenceRepository(db)
		libraryRepo = mysqlp.NewLibraryRepository(db)
	}
	defer db.Close()

	// init minio (optional; tanpa ini archive export tidak tersedia)
	var exports domlib.ExportStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		exports = store
	} else {
		log.Println("minio not configured, library export archiving disabled")
	}

	// init generative capability (optional)
	var aiClient domai.Client
	if cfg.OpenAI.APIKey != "" {
		aiClient = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		log.Println("openai not configured, generative suggestions disabled")
	}

	clock := application.SystemClock{}

	// empat generator, urutan = prioritas sumber
	generators := []domsugg.Generator{
		&appsugg.LibraryGenerator{Repo: libraryRepo, Cfg: cfg.Scoring},
		&appsugg.EvidenceGenerator{Repo: evidenceRepo, Cfg: cfg.Scoring, Clock: clock},
		&appsugg.PatternGenerator{Evidence: evidenceRepo, Cfg: cfg.Scoring},
		&appsugg.GenerativeGenerator{Client: aiClient, Cfg: cfg.Scoring},
	}

	suggestSvc := &appsugg.Service{
		Questions:  questionRepo,
		Generators: generators,
		Cfg:        cfg.Scoring,
	}
	librarySvc := &applib.Service{
		Repo:           libraryRepo,
		Exports:        exports,
		Clock:          clock,
		ConfidenceStep: cfg.Scoring.UsageConfidenceIncrement,
	}

	// init router
	mux := httpserver.NewRouter(suggestSvc, librarySvc, httpserver.Options{
		AuthKeys:           cfg.Auth.Keys,
		RateLimitCapacity:  cfg.RateLimit.Capacity,
		RateLimitPerSecond: cfg.RateLimit.PerSecond,
		Health: middleware.HealthHandler(map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
		}),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
