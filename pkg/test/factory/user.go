package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"todoapp/internal/core/domain"
)

var seq atomic.Int64

func nextSeq() int64 {
	return seq.Add(1)
}

func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	data := map[string]any{
		"ID":        0,
		"UUID":      uuid.New(),
		"Email":     fmt.Sprintf("user-%d@example.com", nextSeq()),
		"GoogleId":  "",
		"GithubId":  "",
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
