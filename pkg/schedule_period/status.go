package schedule_period

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusCollecting Status = "collecting"
	StatusScheduling Status = "scheduling"
	StatusPublished  Status = "published"
	StatusClosed     Status = "closed"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the allowed status changes. Forward moves walk the
// lifecycle one step at a time; collecting and scheduling may also step
// back to reopen a stage. Published periods can only be closed, and closed
// is terminal.
var transitions = map[Status][]Status{
	StatusDraft:      {StatusCollecting},
	StatusCollecting: {StatusDraft, StatusScheduling},
	StatusScheduling: {StatusCollecting, StatusPublished},
	StatusPublished:  {StatusClosed},
	StatusClosed:     {},
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("unknown period status: %s", s)
	}
	return status, nil
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
