package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"todoapp/internal/core/domain"
)

func NewTodo(customData ...map[string]any) domain.Todo {
	instance := fab.New(domain.Todo{})

	data := map[string]any{
		"ID":        0,
		"UUID":      uuid.New(),
		"Name":      fmt.Sprintf("todo-%d", nextSeq()),
		"Deadline":  domain.DeadlineEpoch,
		"Priority":  domain.PriorityMedium,
		"UserId":    0,
		"CreatedAt": time.Now().UTC(),
		"UpdatedAt": time.Now().UTC(),
	}

	for _, custom := range customData {
		for key, value := range custom {
			data[key] = value
		}
	}

	return instance.Build(data)
}
