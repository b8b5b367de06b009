package container

import (
	"log/slog"

	"github.com/movepal/api/internal/config"
	"github.com/movepal/api/internal/services"
	"github.com/movepal/api/internal/session"
	"github.com/movepal/api/internal/upstream"
)

// Container holds all application dependencies
type Container struct {
	Logger   *slog.Logger
	Config   *config.Config
	Upstream *upstream.Client
	Sessions *session.Store

	BookingService    *services.BookingService
	AssignmentService *services.AssignmentService
	IntakeService     *services.IntakeService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, client *upstream.Client) *Container {
	return &Container{
		Logger:            logger,
		Config:            cfg,
		Upstream:          client,
		Sessions:          session.NewStore(),
		BookingService:    services.NewBookingService(client, logger),
		AssignmentService: services.NewAssignmentService(client, logger),
		IntakeService:     services.NewIntakeService(client, logger),
	}
}
