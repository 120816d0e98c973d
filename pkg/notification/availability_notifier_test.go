package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia/ekklesia/internal/event_bus"
	"github.com/ekklesia/ekklesia/pkg/servant"
)

type recordingMailer struct {
	to      []string
	subject string
	body    string
	sent    int
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	m.sent++
	return nil
}

func setup(t *testing.T) (*event_bus.EventBus, *servant.StubRepository, *recordingMailer) {
	t.Helper()
	bus := event_bus.NewEventBus()
	servants := servant.NewStubServantRepo()
	mailer := &recordingMailer{}
	notifier := NewAvailabilityNotifier(servants, mailer, "https://rosters.example.org")
	notifier.Register(bus)
	return bus, servants, mailer
}

func statusChange(to string) event_bus.Event {
	return event_bus.NewEvent(context.Background(), event_bus.SchedulePeriodStatusChangedEvent,
		event_bus.SchedulePeriodStatusChanged{
			PeriodId:          1,
			MinistryId:        1,
			Month:             3,
			Year:              2025,
			From:              "draft",
			To:                to,
			AvailabilityToken: "token123",
		})
}

func TestAvailabilityNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("should email the form link when collection starts", func(t *testing.T) {
		// given
		bus, servants, mailer := setup(t)
		servants.AreaMinistry[1] = 1
		_, err := servants.Create(ctx, servant.Servant{AreaId: 1, Name: "Anna", Email: "anna@example.org"})
		require.NoError(t, err)

		// when
		err = bus.Publish(statusChange("collecting"))

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, mailer.sent)
		assert.Equal(t, []string{"anna@example.org"}, mailer.to)
		assert.Equal(t, "Availability for March 2025", mailer.subject)
		assert.Contains(t, mailer.body, "https://rosters.example.org/availability/token123")
	})

	t.Run("should skip servants without an email address", func(t *testing.T) {
		// given
		bus, servants, mailer := setup(t)
		servants.AreaMinistry[1] = 1
		_, err := servants.Create(ctx, servant.Servant{AreaId: 1, Name: "Anna", Email: "anna@example.org"})
		require.NoError(t, err)
		_, err = servants.Create(ctx, servant.Servant{AreaId: 1, Name: "Ben"})
		require.NoError(t, err)

		// when
		err = bus.Publish(statusChange("collecting"))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"anna@example.org"}, mailer.to)
	})

	t.Run("should include the deadline when one is set", func(t *testing.T) {
		// given
		bus, servants, mailer := setup(t)
		servants.AreaMinistry[1] = 1
		_, err := servants.Create(ctx, servant.Servant{AreaId: 1, Name: "Anna", Email: "anna@example.org"})
		require.NoError(t, err)
		deadline := time.Date(2025, time.February, 20, 23, 59, 0, 0, time.UTC)
		event := event_bus.NewEvent(ctx, event_bus.SchedulePeriodStatusChangedEvent,
			event_bus.SchedulePeriodStatusChanged{
				MinistryId: 1, Month: 3, Year: 2025,
				From: "draft", To: "collecting",
				AvailabilityToken: "token123", Deadline: &deadline,
			})

		// when
		err = bus.Publish(event)

		// then
		require.NoError(t, err)
		assert.Contains(t, mailer.body, "Thursday, 20 February 2025")
	})

	t.Run("should ignore other status changes", func(t *testing.T) {
		// given
		bus, servants, mailer := setup(t)
		servants.AreaMinistry[1] = 1
		_, err := servants.Create(ctx, servant.Servant{AreaId: 1, Name: "Anna", Email: "anna@example.org"})
		require.NoError(t, err)

		// when
		err = bus.Publish(statusChange("scheduling"))

		// then
		require.NoError(t, err)
		assert.Zero(t, mailer.sent)
	})
}
