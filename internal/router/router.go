package router

import (
	"net/http"
	"time"

	"petcare/internal/adapters/docstore/memory"
	"petcare/internal/adapters/storage/documents"
	"petcare/internal/domain/illness"
	"petcare/internal/domain/lookup"
	"petcare/internal/domain/owners"
	"petcare/internal/domain/pets"
	"petcare/internal/domain/report"
	"petcare/internal/domain/vetfinder"
	"petcare/internal/middleware"
	"petcare/internal/platform/config"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"
	"petcare/internal/ports/auth"
	"petcare/internal/ports/blob"
	"petcare/internal/ports/diagnosis"
	"petcare/internal/ports/docstore"

	_ "petcare/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, X-Debug-User-ID)

	// Store es el document store. nil = in-memory.
	Store docstore.Store
	AppID string

	Identity  auth.IdentityProvider // nil = /auth/* responde 501
	Assistant diagnosis.Assistant   // nil = diagnóstico no disponible
	Archive   blob.Store            // nil = los PDF no se archivan
	Sessions  *illness.SessionStore // nil = store propio con TTL default

	ReportFontFile   string
	MaxHNAttempts    int
	DiagnosisTimeout time.Duration

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = memory.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Repos sobre el document store
	appID := opts.AppID
	if appID == "" {
		appID = config.DefaultAppID
	}
	paths := documents.NewPaths(appID)
	ownersRepo := documents.NewOwnersRepo(store, paths)
	petsRepo := documents.NewPetsRepo(store, paths)
	illnessRepo := documents.NewIllnessRepo(store, paths)

	// Services por módulo
	ownerOpts := []owners.Option{owners.WithLogger(log)}
	if opts.Identity != nil {
		ownerOpts = append(ownerOpts, owners.WithIdentity(opts.Identity))
	}
	ownersSvc := owners.NewService(ownersRepo, ownerOpts...)

	petOpts := []pets.Option{pets.WithLogger(log), pets.WithMetrics(opts.Metrics)}
	if opts.MaxHNAttempts > 0 {
		petOpts = append(petOpts, pets.WithMaxHNAttempts(opts.MaxHNAttempts))
	}
	petsSvc := pets.NewService(petsRepo, ownersRepo, petOpts...)

	lookupSvc := lookup.NewService(ownersRepo, petsSvc, lookup.WithLogger(log), lookup.WithMetrics(opts.Metrics))

	illnessOpts := []illness.Option{
		illness.WithLogger(log),
		illness.WithMetrics(opts.Metrics),
		illness.WithRenderer(report.NewRenderer(opts.ReportFontFile)),
	}
	if opts.Assistant != nil {
		illnessOpts = append(illnessOpts, illness.WithAssistant(opts.Assistant))
	}
	if opts.Archive != nil {
		illnessOpts = append(illnessOpts, illness.WithArchive(opts.Archive))
	}
	if opts.Sessions != nil {
		illnessOpts = append(illnessOpts, illness.WithSessions(opts.Sessions))
	}
	if opts.DiagnosisTimeout > 0 {
		illnessOpts = append(illnessOpts, illness.WithDiagnosisTimeout(opts.DiagnosisTimeout))
	}
	illnessSvc := illness.NewService(illnessRepo, petsSvc, illnessOpts...)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc)
	pets.RegisterRoutes(r, petsSvc)
	lookup.RegisterRoutes(r, lookupSvc, ownersSvc)
	illness.RegisterRoutes(r, illnessSvc, ownersSvc)
	vetfinder.RegisterRoutes(r)

	return r
}
