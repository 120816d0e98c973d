package google

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
	"github.com/ekklesia/ekklesia/pkg/user"
)

// defaultEventDuration is used for exported events, which only carry a
// start time.
const defaultEventDuration = 90 * time.Minute

type CalendarItem struct {
	ID      string
	Summary string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ExportPeriod(ctx context.Context, periodId int, calendarId string) (int, error)
}

type ServiceImpl struct {
	auth    *GoogleAuth
	periods schedule_period.Repository
	events  schedule_event.Repository
}

func NewService(auth *GoogleAuth, periods schedule_period.Repository, events schedule_event.Repository) *ServiceImpl {
	return &ServiceImpl{auth: auth, periods: periods, events: events}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var items []CalendarItem
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return items, nil
}

// ExportPeriod copies every event of the period into the user's Google
// calendar and returns how many events were exported. When calendarId is
// empty the user's primary calendar is used.
func (s *ServiceImpl) ExportPeriod(ctx context.Context, periodId int, calendarId string) (int, error) {
	period, err := s.periods.Get(ctx, periodId)
	if err != nil {
		return 0, err
	}
	events, err := s.events.ListByPeriod(ctx, period.Id)
	if err != nil {
		return 0, err
	}

	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return 0, err
	}
	if calendarId == "" {
		calendarId = "primary"
	}

	exported := 0
	for _, event := range events {
		start, err := eventStart(event)
		if err != nil {
			return exported, err
		}
		_, err = googleService.Events.Insert(calendarId, &gcal.Event{
			Summary: event.Title,
			Start: &gcal.EventDateTime{
				DateTime: start.Format(time.RFC3339),
			},
			End: &gcal.EventDateTime{
				DateTime: start.Add(defaultEventDuration).Format(time.RFC3339),
			},
		}).Do()
		if err != nil {
			err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
			log.Error(err)
			return exported, err
		}
		exported++
	}
	log.Infof("Exported %d events of period %d to Google Calendar", exported, period.Id)
	return exported, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context) (*gcal.Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func eventStart(event schedule_event.ScheduleEvent) (time.Time, error) {
	parsed, err := time.Parse("15:04", event.EventTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event time %q: %w", event.EventTime, err)
	}
	d := event.EventDate
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.Local), nil
}
