package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekklesia/ekklesia/internal/config"
	"github.com/ekklesia/ekklesia/internal/event_bus"
	"github.com/ekklesia/ekklesia/internal/utils"
	"github.com/ekklesia/ekklesia/pkg/area"
	"github.com/ekklesia/ekklesia/pkg/assignment"
	"github.com/ekklesia/ekklesia/pkg/availability"
	"github.com/ekklesia/ekklesia/pkg/booking"
	"github.com/ekklesia/ekklesia/pkg/environment"
	"github.com/ekklesia/ekklesia/pkg/google"
	"github.com/ekklesia/ekklesia/pkg/ministry"
	"github.com/ekklesia/ekklesia/pkg/notification"
	"github.com/ekklesia/ekklesia/pkg/regular_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
	"github.com/ekklesia/ekklesia/pkg/servant"
	"github.com/ekklesia/ekklesia/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	MinistryService ministry.Service
	MinistryHandler *ministry.Handler

	AreaService area.Service
	AreaHandler *area.Handler

	ServantService servant.Service
	ServantHandler *servant.Handler

	RegularEventService regular_event.Service
	RegularEventHandler *regular_event.Handler

	EnvironmentService environment.Service
	EnvironmentHandler *environment.Handler

	BookingService booking.Service
	BookingHandler *booking.Handler

	SchedulePeriodService schedule_period.Service
	SchedulePeriodHandler *schedule_period.Handler

	AvailabilityService availability.Service
	AvailabilityHandler *availability.Handler

	AssignmentService assignment.Service
	AssignmentHandler *assignment.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Mailer               notification.Mailer
	AvailabilityNotifier *notification.AvailabilityNotifier
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.MinistryService = ministry.NewService(ministry.NewRepository(db))
	deps.MinistryHandler = ministry.NewHandler(deps.MinistryService)

	deps.AreaService = area.NewService(area.NewRepository(db))
	deps.AreaHandler = area.NewHandler(deps.AreaService)

	servantRepo := servant.NewServantRepo(db)
	deps.ServantService = servant.NewServantService(servantRepo)
	deps.ServantHandler = servant.NewHandler(deps.ServantService)

	regularEventRepo := regular_event.NewRepository(db)
	deps.RegularEventService = regular_event.NewService(regularEventRepo)
	deps.RegularEventHandler = regular_event.NewHandler(deps.RegularEventService)

	deps.EnvironmentService = environment.NewService(environment.NewRepository(db))
	deps.EnvironmentHandler = environment.NewHandler(deps.EnvironmentService)

	bookingRepo := booking.NewRepository(db)
	deps.BookingService = booking.NewService(bookingRepo)
	deps.BookingHandler = booking.NewHandler(deps.BookingService)

	periodRepo := schedule_period.NewRepository(db)
	eventRepo := schedule_event.NewRepository(db)
	deps.SchedulePeriodService = schedule_period.NewService(
		periodRepo, eventRepo, regularEventRepo, bookingRepo, deps.EventBus, deps.Clock)
	deps.SchedulePeriodHandler = schedule_period.NewHandler(deps.SchedulePeriodService)

	deps.AvailabilityService = availability.NewService(
		availability.NewRepository(db), periodRepo, eventRepo, servantRepo, deps.Clock)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	deps.AssignmentService = assignment.NewService(assignment.NewRepository(db), eventRepo, periodRepo)
	deps.AssignmentHandler = assignment.NewHandler(deps.AssignmentService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, periodRepo, eventRepo)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	if cfg.Mail.Enabled {
		deps.Mailer = notification.NewGmailMailer(deps.GoogleAuth, cfg.Mail.From)
	} else {
		deps.Mailer = notification.NoopMailer{}
	}
	deps.AvailabilityNotifier = notification.NewAvailabilityNotifier(servantRepo, deps.Mailer, cfg.Host)
	deps.AvailabilityNotifier.Register(deps.EventBus)

	return deps
}
