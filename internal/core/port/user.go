package port

import (
	"context"

	"todoapp/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByGoogleId(ctx context.Context, googleId string) (domain.User, error)
	GetByGithubId(ctx context.Context, githubId string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

// IdentityService reconciles an authenticated principal into a canonical
// local user, linking provider ids to one account keyed by email.
type IdentityService interface {
	Resolve(ctx context.Context, principal domain.Principal) (domain.User, error)
	Username(principal domain.Principal) (string, error)
}
