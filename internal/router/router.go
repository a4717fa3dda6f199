package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pawcare/internal/adapters/storage/memory"
	"pawcare/internal/adapters/storage/sqldb"
	_ "pawcare/internal/docs"
	"pawcare/internal/domain/appointments"
	"pawcare/internal/domain/oplog"
	"pawcare/internal/domain/pets"
	"pawcare/internal/domain/prescriptions"
	"pawcare/internal/domain/reports"
	"pawcare/internal/domain/users"
	"pawcare/internal/middleware"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/metrics"
	"pawcare/internal/ports/blob"
	"pawcare/internal/seed"
)

type Options struct {
	Logger logger.Logger // nil => nop

	// Opcional: si viene, usa Postgres/SQLite. Si no, in-memory.
	DB *sqldb.DB

	// Opcional: sin store, POST /pets/{id}/photo responde 503.
	Photos blob.Store

	// nil => registry propio (tests en paralelo no chocan)
	Registry *prometheus.Registry

	AllowedOrigins []string
	MaxUploadBytes int64
	SeedDemoData   bool
}

type repos struct {
	pets          pets.Repository
	appointments  appointments.Repository
	prescriptions prescriptions.Repository
	users         users.Repository
	oplog         oplog.Repository
}

func newRepos(db *sqldb.DB) repos {
	if db != nil {
		return repos{
			pets:          sqldb.NewPetsRepo(db),
			appointments:  sqldb.NewAppointmentsRepo(db),
			prescriptions: sqldb.NewPrescriptionsRepo(db),
			users:         sqldb.NewUsersRepo(db),
			oplog:         sqldb.NewOplogRepo(db),
		}
	}
	return repos{
		pets:          mem.NewPetRepo(),
		appointments:  mem.NewAppointmentRepo(),
		prescriptions: mem.NewPrescriptionRepo(),
		users:         mem.NewUserRepo(),
		oplog:         mem.NewOplogRepo(),
	}
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m := metrics.New(reg)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log, m))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.Photos != nil && opts.Photos.Driver() == blob.DriverFilesystem {
		r.Get("/uploads/*", uploadsHandler(opts.Photos, log))
	}

	rp := newRepos(opts.DB)

	if opts.SeedDemoData {
		seeded, err := seed.Run(context.Background(), seed.Repos{
			Pets:          rp.pets,
			Appointments:  rp.appointments,
			Prescriptions: rp.prescriptions,
			Users:         rp.users,
		}, time.Now())
		if err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			log.Info("demo data seeded", nil)
		}
	}

	// Services por módulo
	opSvc := oplog.NewService(rp.oplog, m)
	petsSvc := pets.NewService(rp.pets, opSvc, opts.Photos)
	apptSvc := appointments.NewService(rp.appointments, opSvc)
	rxSvc := prescriptions.NewService(rp.prescriptions, opSvc)
	usersSvc := users.NewService(rp.users)
	reportsSvc := reports.NewService(apptSvc, rxSvc, opSvc, m)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		pets.RegisterRoutes(api, petsSvc, log, opts.MaxUploadBytes)
		appointments.RegisterRoutes(api, apptSvc, log)
		prescriptions.RegisterRoutes(api, rxSvc, log)
		users.RegisterRoutes(api, usersSvc, log)
		oplog.RegisterRoutes(api, opSvc, log)
		reports.RegisterRoutes(api, reportsSvc, log)
	})

	return r, nil
}

func healthHandler(db *sqldb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// uploadsHandler sirve los archivos del store fs bajo su prefijo público.
func uploadsHandler(store blob.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, rc, err := store.Get(r.Context(), chi.URLParam(r, "*"))
		if errors.Is(err, blob.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			// key inválida (traversal) o error de disco: no damos detalle
			log.Warn("upload lookup failed", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"path":       r.URL.Path,
				"err":        err,
			})
			http.NotFound(w, r)
			return
		}
		defer rc.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		if info.ETag != "" {
			w.Header().Set("ETag", strconv.Quote(info.ETag))
		}
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = io.Copy(w, rc)
	}
}
