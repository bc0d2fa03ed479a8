package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	tel "todoapp/internal/core/telemetry"
)

// IdentityService maps a federated login principal onto the canonical
// local user. Email is the durable cross-provider join key; provider ids
// are only ever added to an account, never removed or reassigned.
type IdentityService struct {
	repo  port.UserRepository
	probe port.Telemetry
}

func NewIdentityService(repo port.UserRepository, probe port.Telemetry) *IdentityService {
	if probe == nil {
		probe = tel.NewNoOpProbe()
	}

	return &IdentityService{
		repo:  repo,
		probe: probe,
	}
}

// providerLogin is the provider-neutral projection of a principal used by
// the reconcile path.
type providerLogin struct {
	provider domain.Provider
	id       string
	email    string
}

func (is *IdentityService) Resolve(ctx context.Context, principal domain.Principal) (domain.User, error) {
	if principal == nil {
		return domain.User{}, fmt.Errorf("%w: principal", domain.ErrInvalidInput)
	}

	login, err := extractLogin(principal)

	if err != nil {
		slog.Error("Identity#Resolve rejected principal", "error", err)
		return domain.User{}, err
	}

	ctx, span := is.probe.StartServiceSpan(ctx, "identity", "Resolve", map[string]interface{}{
		"principal.provider": string(login.provider),
	})
	defer span.End()

	user, err := is.reconcile(ctx, login)

	if errors.Is(err, domain.ErrDuplicateKey) {
		// A concurrent first login for the same email lost the race against
		// the store's unique index. The record exists now, so re-run the
		// lookup-and-link path once before giving up.
		slog.Warn("Identity#Resolve duplicate key, retrying lookup", "provider", login.provider)
		user, err = is.reconcile(ctx, login)
	}

	if err != nil {
		span.SetStatus("error", err.Error())
		return domain.User{}, err
	}

	return user, nil
}

// Username returns the display name the provider asserts for the
// principal: the Google name claim or the Github login attribute.
func (is *IdentityService) Username(principal domain.Principal) (string, error) {
	if principal == nil {
		return "", fmt.Errorf("%w: principal", domain.ErrInvalidInput)
	}

	switch p := principal.(type) {
	case domain.GooglePrincipal:
		if p.Name == "" {
			return "", &domain.MissingAttributeError{Attribute: "name"}
		}
		return p.Name, nil
	case domain.GithubPrincipal:
		if p.Login == "" {
			return "", &domain.MissingAttributeError{Attribute: "login"}
		}
		return p.Login, nil
	default:
		return "", domain.ErrUnsupportedPrincipal
	}
}

func extractLogin(principal domain.Principal) (providerLogin, error) {
	switch p := principal.(type) {
	case domain.GooglePrincipal:
		if p.Sub == "" {
			return providerLogin{}, &domain.MissingAttributeError{Attribute: "sub"}
		}
		if p.Email == "" {
			return providerLogin{}, &domain.MissingAttributeError{Attribute: "email"}
		}
		return providerLogin{provider: domain.ProviderGoogle, id: p.Sub, email: p.Email}, nil
	case domain.GithubPrincipal:
		if p.Id == "" {
			return providerLogin{}, &domain.MissingAttributeError{Attribute: "id"}
		}
		if p.Email == "" {
			return providerLogin{}, &domain.MissingAttributeError{Attribute: "email"}
		}
		return providerLogin{provider: domain.ProviderGithub, id: p.Id, email: p.Email}, nil
	default:
		return providerLogin{}, domain.ErrUnsupportedPrincipal
	}
}

func (is *IdentityService) reconcile(ctx context.Context, login providerLogin) (domain.User, error) {
	existing, err := is.repo.GetByEmail(ctx, login.email)

	switch {
	case err == nil:
		return is.link(ctx, existing, login)
	case errors.Is(err, domain.ErrNotFound):
		return is.create(ctx, login)
	default:
		return domain.User{}, err
	}
}

func (is *IdentityService) create(ctx context.Context, login providerLogin) (domain.User, error) {
	now := time.Now()

	user := domain.User{
		UUID:      uuid.New(),
		Email:     login.email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch login.provider {
	case domain.ProviderGoogle:
		user.GoogleId = login.id
	case domain.ProviderGithub:
		user.GithubId = login.id
	}

	created, err := is.repo.Create(ctx, user)

	if err != nil {
		return domain.User{}, err
	}

	is.probe.RecordBusinessEvent(ctx, "created", "user", created.UUID.String(), map[string]interface{}{
		"provider": string(login.provider),
	})

	return created, nil
}

// link attaches the missing provider id to an existing account. When the
// account already carries an id for this provider the login is a no-op.
func (is *IdentityService) link(ctx context.Context, user domain.User, login providerLogin) (domain.User, error) {
	switch login.provider {
	case domain.ProviderGoogle:
		if user.HasGoogleId() {
			return user, nil
		}
		user.GoogleId = login.id
	case domain.ProviderGithub:
		if user.HasGithubId() {
			return user, nil
		}
		user.GithubId = login.id
	}

	user.UpdatedAt = time.Now()

	linked, err := is.repo.Update(ctx, user)

	if err != nil {
		return domain.User{}, err
	}

	is.probe.RecordBusinessEvent(ctx, "linked", "user", linked.UUID.String(), map[string]interface{}{
		"provider": string(login.provider),
	})

	return linked, nil
}
