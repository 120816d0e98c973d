package app

import (
	"github.com/gorilla/mux"

	"github.com/ekklesia/ekklesia/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")

	// Ministries
	r.HandleFunc("/api/ministry", deps.MinistryHandler.List).Methods("GET")
	r.HandleFunc("/api/ministry", deps.MinistryHandler.Create).Methods("POST")
	r.HandleFunc("/api/ministry/{ministryId}", deps.MinistryHandler.Get).Methods("GET")
	r.HandleFunc("/api/ministry/{ministryId}", deps.MinistryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/ministry/{ministryId}", deps.MinistryHandler.Delete).Methods("DELETE")

	// Areas
	r.HandleFunc("/api/ministry/{ministryId}/area", deps.AreaHandler.ListByMinistry).Methods("GET")
	r.HandleFunc("/api/ministry/{ministryId}/area", deps.AreaHandler.Create).Methods("POST")
	r.HandleFunc("/api/area/{areaId}", deps.AreaHandler.Get).Methods("GET")
	r.HandleFunc("/api/area/{areaId}", deps.AreaHandler.Update).Methods("PUT")
	r.HandleFunc("/api/area/{areaId}", deps.AreaHandler.Delete).Methods("DELETE")

	// Servants
	r.HandleFunc("/api/area/{areaId}/servant", deps.ServantHandler.ListByArea).Methods("GET")
	r.HandleFunc("/api/area/{areaId}/servant", deps.ServantHandler.Create).Methods("POST")
	r.HandleFunc("/api/servant/{servantId}", deps.ServantHandler.Get).Methods("GET")
	r.HandleFunc("/api/servant/{servantId}", deps.ServantHandler.Update).Methods("PUT")
	r.HandleFunc("/api/servant/{servantId}", deps.ServantHandler.Delete).Methods("DELETE")

	// Regular event templates
	r.HandleFunc("/api/regular-event", deps.RegularEventHandler.List).Methods("GET")
	r.HandleFunc("/api/regular-event", deps.RegularEventHandler.Create).Methods("POST")
	r.HandleFunc("/api/regular-event/{eventId}", deps.RegularEventHandler.Get).Methods("GET")
	r.HandleFunc("/api/regular-event/{eventId}", deps.RegularEventHandler.Update).Methods("PUT")
	r.HandleFunc("/api/regular-event/{eventId}", deps.RegularEventHandler.Delete).Methods("DELETE")

	// Environments (facilities)
	r.HandleFunc("/api/environment", deps.EnvironmentHandler.List).Methods("GET")
	r.HandleFunc("/api/environment", deps.EnvironmentHandler.Create).Methods("POST")
	r.HandleFunc("/api/environment/{environmentId}", deps.EnvironmentHandler.Get).Methods("GET")
	r.HandleFunc("/api/environment/{environmentId}", deps.EnvironmentHandler.Update).Methods("PUT")
	r.HandleFunc("/api/environment/{environmentId}", deps.EnvironmentHandler.Delete).Methods("DELETE")

	// Bookings
	r.HandleFunc("/api/booking", deps.BookingHandler.List).Methods("GET")
	r.HandleFunc("/api/booking", deps.BookingHandler.Create).Methods("POST")
	r.HandleFunc("/api/booking/{bookingId}", deps.BookingHandler.Get).Methods("GET")
	r.HandleFunc("/api/booking/{bookingId}", deps.BookingHandler.Update).Methods("PUT")
	r.HandleFunc("/api/booking/{bookingId}", deps.BookingHandler.Delete).Methods("DELETE")

	// Schedule periods
	r.HandleFunc("/api/schedule-period", deps.SchedulePeriodHandler.List).Methods("GET")
	r.HandleFunc("/api/schedule-period", deps.SchedulePeriodHandler.Create).Methods("POST")
	r.HandleFunc("/api/schedule-period/{periodId}", deps.SchedulePeriodHandler.Get).Methods("GET")
	r.HandleFunc("/api/schedule-period/{periodId}", deps.SchedulePeriodHandler.Update).Methods("PUT")
	r.HandleFunc("/api/schedule-period/{periodId}", deps.SchedulePeriodHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/schedule-period/{periodId}/publish", deps.SchedulePeriodHandler.Publish).Methods("POST")
	r.HandleFunc("/api/schedule-period/{periodId}/generate-events", deps.SchedulePeriodHandler.GenerateEvents).Methods("POST")
	r.HandleFunc("/api/schedule-period/{periodId}/import-bookings", deps.SchedulePeriodHandler.ImportBookings).Methods("POST")

	// Schedule events
	r.HandleFunc("/api/schedule-period/{periodId}/event", deps.SchedulePeriodHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/schedule-period/{periodId}/event", deps.SchedulePeriodHandler.AddEvent).Methods("POST")
	r.HandleFunc("/api/schedule-event/{eventId}", deps.SchedulePeriodHandler.DeleteEvent).Methods("DELETE")

	// Availability (the token routes are public)
	r.HandleFunc("/api/availability/{token}", deps.AvailabilityHandler.GetForm).Methods("GET")
	r.HandleFunc("/api/availability/{token}", deps.AvailabilityHandler.Submit).Methods("POST")
	r.HandleFunc("/api/schedule-period/{periodId}/availability", deps.AvailabilityHandler.ListForPeriod).Methods("GET")

	// Assignments
	r.HandleFunc("/api/schedule-event/{eventId}/assignment", deps.AssignmentHandler.ListByEvent).Methods("GET")
	r.HandleFunc("/api/schedule-event/{eventId}/assignment", deps.AssignmentHandler.Assign).Methods("POST")
	r.HandleFunc("/api/schedule-event/{eventId}/assignment/{areaId}", deps.AssignmentHandler.DeleteByEventAndArea).Methods("DELETE")
	r.HandleFunc("/api/assignment/{assignmentId}", deps.AssignmentHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/schedule-period/{periodId}/assignment", deps.AssignmentHandler.ListByPeriod).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/schedule-period/{periodId}/export-to-google", deps.GoogleHandler.ExportPeriod).Methods("POST")
}
