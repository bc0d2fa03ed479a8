package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PrioritySmall  Priority = "small"
	PriorityMedium Priority = "medium"
	PriorityBig    Priority = "big"
)

// DeadlineEpoch is the sentinel deadline stored when a todo has no due date.
var DeadlineEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

type Todo struct {
	ID        int
	UUID      uuid.UUID
	Name      string   `validate:"required,min=1,max=255"`
	Deadline  time.Time
	Priority  Priority `validate:"required,oneof=small medium big"`
	UserId    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":         t.ID,
		"uuid":       t.UUID,
		"name":       t.Name,
		"deadline":   t.Deadline.Format(time.DateOnly),
		"priority":   t.Priority,
		"user_id":    t.UserId,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

// DeadlineOrEpoch normalizes an unset deadline to the epoch sentinel date.
func (t *Todo) DeadlineOrEpoch() time.Time {
	if t.Deadline.IsZero() {
		return DeadlineEpoch
	}

	return t.Deadline.Truncate(24 * time.Hour)
}

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PrioritySmall, PriorityMedium, PriorityBig:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("invalid priority: %s", s)
	}
}

func (p Priority) String() string {
	return string(p)
}
