package models

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusBacklog    Status = "BACKLOG"
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus maps a wire value onto the closed status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBacklog, StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	Duration    string
	// DueDate, when set, is always noon UTC on some calendar day.
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
