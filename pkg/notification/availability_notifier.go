package notification

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/internal/event_bus"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
	"github.com/ekklesia/ekklesia/pkg/servant"
)

// ServantProvider supplies the active servants of a ministry.
type ServantProvider interface {
	ListByMinistry(ctx context.Context, ministryId int) ([]servant.Servant, error)
}

// AvailabilityNotifier emails the availability form link to every servant of
// the ministry when a period starts collecting availability.
type AvailabilityNotifier struct {
	servants ServantProvider
	mailer   Mailer
	host     string
}

func NewAvailabilityNotifier(servants ServantProvider, mailer Mailer, host string) *AvailabilityNotifier {
	return &AvailabilityNotifier{servants: servants, mailer: mailer, host: host}
}

// Register subscribes the notifier to period status changes on the bus and
// returns the unsubscribe function.
func (n *AvailabilityNotifier) Register(bus *event_bus.EventBus) func() {
	return event_bus.SubscribeTyped(bus, event_bus.SchedulePeriodStatusChangedEvent,
		func(e event_bus.EventT[event_bus.SchedulePeriodStatusChanged]) error {
			if e.Data.To != string(schedule_period.StatusCollecting) {
				return nil
			}
			return n.notify(e.Context(), e.Data)
		})
}

func (n *AvailabilityNotifier) notify(ctx context.Context, change event_bus.SchedulePeriodStatusChanged) error {
	servants, err := n.servants.ListByMinistry(ctx, change.MinistryId)
	if err != nil {
		return fmt.Errorf("failed to list servants for notification: %w", err)
	}

	var recipients []string
	for _, sv := range servants {
		if sv.Email != "" {
			recipients = append(recipients, sv.Email)
		}
	}
	if len(recipients) == 0 {
		log.Debugf("No servants with email addresses for ministry %d, skipping availability mail", change.MinistryId)
		return nil
	}

	monthName := time.Month(change.Month).String()
	subject := fmt.Sprintf("Availability for %s %d", monthName, change.Year)
	body := fmt.Sprintf(
		"Please fill in your availability for %s %d:\r\n\r\n%s/availability/%s\r\n",
		monthName, change.Year, n.host, change.AvailabilityToken)
	if change.Deadline != nil {
		body += fmt.Sprintf("\r\nThe deadline is %s.\r\n", change.Deadline.Format("Monday, 2 January 2006"))
	}

	if err := n.mailer.Send(ctx, recipients, subject, body); err != nil {
		return fmt.Errorf("failed to send availability mail: %w", err)
	}
	log.Infof("Sent availability mail for period %d to %d servant(s)", change.PeriodId, len(recipients))
	return nil
}
