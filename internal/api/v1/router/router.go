package router

import (
	"context"
	"fmt"
	"net/http"

	"coursedesk/internal/api/v1/handler"
	"coursedesk/internal/catalog"
	"coursedesk/internal/config"
	"coursedesk/internal/courseapi"
	"coursedesk/internal/middleware"
	"coursedesk/internal/pubsub"
	"coursedesk/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Services are the orchestrators behind the HTTP surface. Audio is nil when
// uploads are not configured.
type Services struct {
	Courses service.CourseService
	Audio   service.AudioService
}

// New wires the remote course service, event publisher and object storage from
// cfg and returns the HTTP handler. The returned func releases the clients.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close client")
			}
		}
	}

	// 1. Resolve the course service token
	token := cfg.CourseAPIToken
	if cfg.CourseAPITokenSecret != "" {
		secrets, err := service.NewSecretResolver(ctx, cfg)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create secret resolver: %w", err)
		}
		token, err = secrets.Resolve(ctx, cfg.CourseAPITokenSecret)
		secrets.Close()
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to resolve course API token: %w", err)
		}
		logger.Info().Msg("Course API token loaded from Secret Manager")
	}

	// 2. Remote course service client
	api := courseapi.NewClient(cfg.CourseAPIBaseURL, token, cfg.CourseAPITimeout(), logger)

	// 3. Course change events
	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	if cfg.EventsEnabled() {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create Pub/Sub publisher: %w", err)
		}
		closers = append(closers, p.Close)
		publisher = p
		logger.Info().Str("topic", cfg.PubSubCourseEventsTopic).Msg("Course events enabled")
	}

	// 4. Audio practice uploads
	var audioSvc service.AudioService
	if cfg.AudioUploadsEnabled() {
		s3Client, err := service.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, cleanup, err
		}
		audioSvc = service.NewAudioService(s3Client, cfg.S3Bucket, service.ObjectBaseURL(cfg), cfg.PresignTTL(), logger)
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("Audio uploads enabled")
	}

	courseSvc := service.NewCourseService(api, publisher, cfg.PubSubCourseEventsTopic, cfg.BulkDeleteWorkers, logger)

	return NewHandler(cfg, Services{Courses: courseSvc, Audio: audioSvc}, logger), cleanup, nil
}

// NewHandler builds the routes for svcs.
func NewHandler(cfg *config.Config, svcs Services, logger zerolog.Logger) http.Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	courseHandler := handler.NewCourseHandler(
		svcs.Courses,
		svcs.Audio,
		validate,
		catalog.AdminView(cfg.AdminPageSize),
		catalog.CatalogView(cfg.CatalogPageSize),
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	authMw := middleware.Passthrough
	if cfg.JWTSecret != "" {
		authMw = middleware.AuthMiddleware(cfg.JWTSecret, logger)
	} else {
		logger.Warn().Msg("JWT_SECRET is not set, management routes are unauthenticated")
	}

	r.Route("/v1", func(r chi.Router) {
		courseHandler.RegisterRoutes(r, authMw)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
