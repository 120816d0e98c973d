package availability

import (
	"fmt"
	"time"
)

// ServantAvailability records one servant's answer for one event.
// A missing row means the servant has not answered for that event.
type ServantAvailability struct {
	Id          int
	ServantId   int
	EventId     int
	IsAvailable bool
	Note        string
	SubmittedAt time.Time
}

func (a ServantAvailability) Validate() error {
	if a.ServantId == 0 {
		return fmt.Errorf("servant is required")
	}
	if a.EventId == 0 {
		return fmt.Errorf("event is required")
	}
	return nil
}
