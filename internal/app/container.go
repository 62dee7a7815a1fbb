// Package app wires configuration, storage, and services into a running
// application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dimun/agendalo/internal/scheduling/application/services"
	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/scheduling/infrastructure/cache"
	"github.com/dimun/agendalo/internal/scheduling/infrastructure/persistence"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	_ "github.com/dimun/agendalo/internal/shared/infrastructure/database/postgres"
	_ "github.com/dimun/agendalo/internal/shared/infrastructure/database/sqlite"
	"github.com/dimun/agendalo/internal/shared/infrastructure/migrations"
	"github.com/dimun/agendalo/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DB database.Connection

	// RedisClient is nil when no REDIS_URL is configured.
	RedisClient *redis.Client

	PersonRepo       domain.PersonRepository
	RoleRepo         domain.RoleRepository
	AvailabilityRepo domain.AvailabilityRepository
	BusinessRepo     domain.BusinessHoursRepository
	AgendaRepo       domain.AgendaRepository

	AgendaService   *services.AgendaService
	CalendarService *services.CalendarService
}

// NewContainer connects to storage, applies migrations, and wires the
// service graph.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DBMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database ready", "driver", string(conn.Driver()))

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     conn,

		PersonRepo:       persistence.NewPersonRepository(conn),
		AvailabilityRepo: persistence.NewAvailabilityRepository(conn),
		BusinessRepo:     persistence.NewBusinessHoursRepository(conn),
		AgendaRepo:       persistence.NewAgendaRepository(conn),
	}

	roleRepo := domain.RoleRepository(persistence.NewRoleRepository(conn))
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		c.RedisClient = redis.NewClient(opts)
		roleRepo = cache.NewRoleCache(roleRepo, c.RedisClient, cfg.RoleCacheTTL, logger)
		logger.Info("role cache enabled")
	}
	c.RoleRepo = roleRepo

	scheduler := services.NewCPScheduler(cfg.SolverTimeLimit, logger)
	c.AgendaService = services.NewAgendaService(
		c.AgendaRepo, c.AvailabilityRepo, c.BusinessRepo, c.RoleRepo, scheduler, logger,
	)
	c.CalendarService = services.NewCalendarService(c.AvailabilityRepo, c.PersonRepo, c.RoleRepo)

	return c, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("close redis client", "error", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
