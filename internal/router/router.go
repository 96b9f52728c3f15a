package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"kennel-registry/internal/adapters/blob/cloudinary"
	blobmem "kennel-registry/internal/adapters/blob/memory"
	s3blob "kennel-registry/internal/adapters/blob/s3"
	mem "kennel-registry/internal/adapters/storage/memory"
	pg "kennel-registry/internal/adapters/storage/postgres"
	"kennel-registry/internal/domain/dogs"
	"kennel-registry/internal/middleware"
	"kennel-registry/internal/platform/logger"
	"kennel-registry/internal/ports/blob"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, intenta DB_DSN y cae a in-memory.
	DB *sql.DB

	// Opcional: blob store explícito. Si no, elige por BLOB_DRIVER
	// (cloudinary|s3|memory, default memory).
	Uploader blob.Uploader

	// Opcional: logger. Si no, NewFromEnv.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	repo := pickRepo(opts.DB, log)
	uploader := pickUploader(opts.Uploader, log)

	svc := dogs.NewService(repo, uploader, log)
	dogs.RegisterRoutes(r, svc)

	return r
}

func pickRepo(db *sql.DB, log logger.Logger) dogs.Repository {
	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{
					"error": err.Error(),
				})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		return pg.NewDogsRepo(db)
	}
	return mem.NewDogsRepo()
}

func pickUploader(up blob.Uploader, log logger.Logger) blob.Uploader {
	if up != nil {
		return up
	}

	switch os.Getenv("BLOB_DRIVER") {
	case "cloudinary":
		c, err := cloudinary.NewFromEnv()
		if err == nil {
			return c
		}
		log.Warn("cloudinary not configured, falling back to in-memory blob", map[string]any{
			"error": err.Error(),
		})
	case "s3":
		s, err := s3blob.OpenFromEnv(context.Background())
		if err == nil {
			return s
		}
		log.Warn("s3 not configured, falling back to in-memory blob", map[string]any{
			"error": err.Error(),
		})
	}

	return blobmem.NewStore()
}
