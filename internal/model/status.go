package model

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
	StatusRecurring Status = "recurring"
)

var validStatuses = []Status{StatusPending, StatusWaiting, StatusCompleted, StatusDeleted, StatusRecurring}

func ValidateStatus(s Status) error {
	for _, v := range validStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q: must be one of pending, waiting, completed, deleted, recurring", s)
}
