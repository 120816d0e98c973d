package booking

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Booking is a room reservation made by a member or ministry.
// Approved bookings can be imported into a schedule period.
type Booking struct {
	Id            int
	EnvironmentId int
	Title         string
	EventDate     time.Time
	// EventTime is the start time in "HH:MM" 24h notation.
	EventTime   string
	Status      Status
	RequestedBy string
}

func (b Booking) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("booking title is required")
	}
	if b.EnvironmentId == 0 {
		return fmt.Errorf("booking environment is required")
	}
	if b.EventDate.IsZero() {
		return fmt.Errorf("booking date is required")
	}
	if _, err := time.Parse("15:04", b.EventTime); err != nil {
		return fmt.Errorf("booking time must be in HH:MM format: %w", err)
	}
	switch b.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("unknown booking status: %s", b.Status)
	}
	return nil
}
