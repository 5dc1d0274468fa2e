package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	userservice "showcase/contexts/identity/user-service"
	userpostgres "showcase/contexts/identity/user-service/adapters/postgres"
	admindashboardservice "showcase/contexts/internal-ops/admin-dashboard-service"
	dashboardpostgres "showcase/contexts/internal-ops/admin-dashboard-service/adapters/postgres"
	dashboardapp "showcase/contexts/internal-ops/admin-dashboard-service/application"
	dashboardentities "showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"
	blogservice "showcase/contexts/publishing/blog-service"
	blogpostgres "showcase/contexts/publishing/blog-service/adapters/postgres"
	awardservice "showcase/contexts/showcase/award-service"
	awardpostgres "showcase/contexts/showcase/award-service/adapters/postgres"
	awardports "showcase/contexts/showcase/award-service/ports"
	competitionservice "showcase/contexts/showcase/competition-service"
	competitionpostgres "showcase/contexts/showcase/competition-service/adapters/postgres"
	competitionports "showcase/contexts/showcase/competition-service/ports"
	projectservice "showcase/contexts/showcase/project-service"
	projectpostgres "showcase/contexts/showcase/project-service/adapters/postgres"
	projectports "showcase/contexts/showcase/project-service/ports"
	votingservice "showcase/contexts/showcase/voting-service"
	votingpostgres "showcase/contexts/showcase/voting-service/adapters/postgres"
	"showcase/internal/app/worker"
	"showcase/internal/platform/config"
	"showcase/internal/platform/db"
	"showcase/internal/platform/httpserver"
	"showcase/internal/platform/mailer"
	"showcase/internal/platform/messaging"
	"showcase/internal/platform/objectstore"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relays       []worker.OutboxRelay
	notifier     worker.ModerationNotifier
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	userRepo := userpostgres.NewRepository(pg.DB, logger)
	userModule := userservice.NewModule(userservice.Dependencies{
		Repository: userRepo,
		Clock:      userpostgres.SystemClock{},
		IDGen:      userpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	dashboardRepo := dashboardpostgres.NewRepository(pg.DB, logger)
	dashboardModule := admindashboardservice.NewModule(admindashboardservice.Dependencies{
		Audits: dashboardRepo,
		Stats:  dashboardRepo,
		Clock:  dashboardpostgres.SystemClock{},
		IDGen:  dashboardpostgres.UUIDGenerator{},
		Logger: logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingservice.NewModule(votingservice.Dependencies{
		Repository: votingRepo,
		Projects:   votingpostgres.NewVotableDirectory(pg.DB),
		Clock:      votingpostgres.SystemClock{},
		Logger:     logger,
	})

	projectRepo := projectpostgres.NewRepository(pg.DB, logger)
	projectModule := projectservice.NewModule(projectservice.Dependencies{
		Repository: projectRepo,
		Actors:     userModule.Service,
		Outbox:     projectRepo,
		Audit:      projectAuditSink{service: dashboardModule.Service},
		Votes:      votingModule.Handler,
		Clock:      projectpostgres.SystemClock{},
		IDGen:      projectpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	competitionRepo := competitionpostgres.NewRepository(pg.DB, logger)
	competitionModule := competitionservice.NewModule(competitionservice.Dependencies{
		Repository: competitionRepo,
		Actors:     userModule.Service,
		Outbox:     competitionRepo,
		Audit:      competitionAuditSink{service: dashboardModule.Service},
		Clock:      competitionpostgres.SystemClock{},
		IDGen:      competitionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	awardRepo := awardpostgres.NewRepository(pg.DB, logger)
	awardModule := awardservice.NewModule(awardservice.Dependencies{
		Repository: awardRepo,
		References: awardpostgres.NewReferenceDirectory(pg.DB),
		Actors:     userModule.Service,
		Outbox:     awardRepo,
		Audit:      awardAuditSink{service: dashboardModule.Service},
		Clock:      awardpostgres.SystemClock{},
		IDGen:      awardpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	media := objectstore.NewMemoryStore(cfg.PublicBase)
	blogRepo := blogpostgres.NewRepository(pg.DB, logger)
	blogModule := blogservice.NewModule(blogservice.Dependencies{
		Repository: blogRepo,
		Covers:     media,
		Clock:      blogpostgres.SystemClock{},
		IDGen:      blogpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(httpserver.Modules{
		Projects:     projectModule,
		Competitions: competitionModule,
		Awards:       awardModule,
		Votes:        votingModule,
		Posts:        blogModule,
		Users:        userModule,
		Dashboard:    dashboardModule,
		Uploads:      media,
		Media:        media,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	var sender mailer.Sender = mailer.LogSender{Logger: logger}
	if strings.TrimSpace(cfg.SMTPAddr) != "" {
		sender = mailer.SMTPSender{Addr: cfg.SMTPAddr, From: cfg.MailFrom}
	}

	return &WorkerApp{
		postgres: pg,
		relays: []worker.OutboxRelay{
			{
				Name:      "projects",
				Outbox:    projectpostgres.NewRepository(pg.DB, logger),
				Publisher: bus,
				BatchSize: 100,
				Logger:    logger,
			},
			{
				Name:      "competitions",
				Outbox:    competitionpostgres.NewRepository(pg.DB, logger),
				Publisher: bus,
				BatchSize: 100,
				Logger:    logger,
			},
			{
				Name:      "awards",
				Outbox:    awardpostgres.NewRepository(pg.DB, logger),
				Publisher: bus,
				BatchSize: 100,
				Logger:    logger,
			},
		},
		notifier: worker.ModerationNotifier{
			Subscriber:          bus,
			Mailer:              sender,
			ProjectsEnabled:     cfg.EnableProjectNotifications,
			CompetitionsEnabled: cfg.EnableCompetitionNotifications,
			AwardsEnabled:       cfg.EnableAwardNotifications,
			AwardInbox:          cfg.ModerationInbox,
			Logger:              logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.notifier.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"relay_enabled", w.relayEnabled,
	)

	for {
		if w.relayEnabled {
			for _, relay := range w.relays {
				if err := relay.RunOnce(ctx); err != nil {
					return err
				}
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// Audit sinks bridge each moderation context to the shared audit trail.

type projectAuditSink struct {
	service dashboardapp.Service
}

func (s projectAuditSink) RecordModerationAction(ctx context.Context, action projectports.ModerationAudit) error {
	return s.service.RecordModerationAction(ctx, dashboardentities.AuditEntry{
		EntityType: action.EntityType,
		EntityID:   action.EntityID,
		Action:     action.Action,
		ActorID:    action.ActorID,
		ActorRole:  action.ActorRole,
		Reason:     action.Reason,
		OccurredAt: action.OccurredAt,
	})
}

type competitionAuditSink struct {
	service dashboardapp.Service
}

func (s competitionAuditSink) RecordModerationAction(ctx context.Context, action competitionports.ModerationAudit) error {
	return s.service.RecordModerationAction(ctx, dashboardentities.AuditEntry{
		EntityType: action.EntityType,
		EntityID:   action.EntityID,
		Action:     action.Action,
		ActorID:    action.ActorID,
		ActorRole:  action.ActorRole,
		Reason:     action.Reason,
		OccurredAt: action.OccurredAt,
	})
}

type awardAuditSink struct {
	service dashboardapp.Service
}

func (s awardAuditSink) RecordModerationAction(ctx context.Context, action awardports.ModerationAudit) error {
	return s.service.RecordModerationAction(ctx, dashboardentities.AuditEntry{
		EntityType: action.EntityType,
		EntityID:   action.EntityID,
		Action:     action.Action,
		ActorID:    action.ActorID,
		ActorRole:  action.ActorRole,
		Reason:     action.Reason,
		OccurredAt: action.OccurredAt,
	})
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
