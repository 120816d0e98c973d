package assignment

import "fmt"

// ScheduleAssignment puts one servant on duty for one area of one event.
// An event holds at most one assignment per area; assigning the same area
// again replaces the previous servant.
type ScheduleAssignment struct {
	Id        int
	EventId   int
	AreaId    int
	ServantId int
	Note      string
}

func (a ScheduleAssignment) Validate() error {
	if a.EventId == 0 {
		return fmt.Errorf("event is required")
	}
	if a.AreaId == 0 {
		return fmt.Errorf("area is required")
	}
	if a.ServantId == 0 {
		return fmt.Errorf("servant is required")
	}
	return nil
}
