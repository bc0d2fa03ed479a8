package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical local account a federated login resolves to.
// Email is the dedup key across providers; the provider id fields are
// additive and only ever set, never cleared or reassigned.
type User struct {
	ID        int
	UUID      uuid.UUID
	Email     string `validate:"required,email,max=255"`
	GoogleId  string
	GithubId  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasGoogleId() bool {
	return u.GoogleId != ""
}

func (u *User) HasGithubId() bool {
	return u.GithubId != ""
}
