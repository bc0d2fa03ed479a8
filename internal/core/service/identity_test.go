package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todoapp/pkg/test"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/adapter/database/sqlite/repository"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
)

type IdentityServiceTestSuite struct {
	suite.Suite
	UseCase  *service.IdentityService
	UserRepo port.UserRepository
}

func (s *IdentityServiceTestSuite) SetupTest() {
	db := sqlite.WrapDB(InitTestDB())

	s.UserRepo = repository.NewUserRepository(db, nil)
	s.UseCase = service.NewIdentityService(s.UserRepo, nil)
}

func TestIdentityServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(IdentityServiceTestSuite))
}

func (s *IdentityServiceTestSuite) TestResolve_FirstGoogleLoginCreatesUser() {
	user, err := s.UseCase.Resolve(context.Background(), domain.GooglePrincipal{
		Sub:   "google-sub-1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})

	Expect(err).To(BeNil())
	Expect(user.ID).NotTo(BeZero())
	Expect(user.Email).To(Equal("ada@example.com"))
	Expect(user.GoogleId).To(Equal("google-sub-1"))
	Expect(user.GithubId).To(BeEmpty())
}

func (s *IdentityServiceTestSuite) TestResolve_SecondProviderLinksByEmail() {
	first, err := s.UseCase.Resolve(context.Background(), domain.GooglePrincipal{
		Sub:   "google-sub-2",
		Name:  "Grace Hopper",
		Email: "grace@example.com",
	})
	Expect(err).To(BeNil())

	second, err := s.UseCase.Resolve(context.Background(), domain.GithubPrincipal{
		Id:    "777",
		Login: "ghopper",
		Email: "grace@example.com",
	})

	Expect(err).To(BeNil())
	Expect(second.ID).To(Equal(first.ID))
	Expect(second.GoogleId).To(Equal("google-sub-2"))
	Expect(second.GithubId).To(Equal("777"))
}

func (s *IdentityServiceTestSuite) TestResolve_RepeatLoginNeverReassignsProviderId() {
	first, err := s.UseCase.Resolve(context.Background(), domain.GithubPrincipal{
		Id:    "1000",
		Login: "octocat",
		Email: "octo@example.com",
	})
	Expect(err).To(BeNil())

	again, err := s.UseCase.Resolve(context.Background(), domain.GithubPrincipal{
		Id:    "2000",
		Login: "octocat",
		Email: "octo@example.com",
	})

	Expect(err).To(BeNil())
	Expect(again.ID).To(Equal(first.ID))
	Expect(again.GithubId).To(Equal("1000"))
}

func (s *IdentityServiceTestSuite) TestResolve_NilPrincipalIsInvalidInput() {
	_, err := s.UseCase.Resolve(context.Background(), nil)

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *IdentityServiceTestSuite) TestResolve_MissingAttributes() {
	var missingErr *domain.MissingAttributeError

	_, err := s.UseCase.Resolve(context.Background(), domain.GooglePrincipal{
		Email: "nosub@example.com",
	})
	Expect(errors.As(err, &missingErr)).To(BeTrue())
	Expect(missingErr.Attribute).To(Equal("sub"))

	_, err = s.UseCase.Resolve(context.Background(), domain.GooglePrincipal{
		Sub: "google-sub-3",
	})
	Expect(errors.As(err, &missingErr)).To(BeTrue())
	Expect(missingErr.Attribute).To(Equal("email"))

	_, err = s.UseCase.Resolve(context.Background(), domain.GithubPrincipal{
		Email: "noid@example.com",
	})
	Expect(errors.As(err, &missingErr)).To(BeTrue())
	Expect(missingErr.Attribute).To(Equal("id"))
}

func (s *IdentityServiceTestSuite) TestUsername_PerProviderAttribute() {
	name, err := s.UseCase.Username(domain.GooglePrincipal{
		Sub:   "google-sub-4",
		Name:  "Alan Turing",
		Email: "alan@example.com",
	})
	Expect(err).To(BeNil())
	Expect(name).To(Equal("Alan Turing"))

	login, err := s.UseCase.Username(domain.GithubPrincipal{
		Id:    "99",
		Login: "aturing",
		Email: "alan@example.com",
	})
	Expect(err).To(BeNil())
	Expect(login).To(Equal("aturing"))
}

func (s *IdentityServiceTestSuite) TestUsername_MissingAttribute() {
	var missingErr *domain.MissingAttributeError

	_, err := s.UseCase.Username(domain.GooglePrincipal{Sub: "s", Email: "e@x.com"})
	Expect(errors.As(err, &missingErr)).To(BeTrue())
	Expect(missingErr.Attribute).To(Equal("name"))

	_, err = s.UseCase.Username(domain.GithubPrincipal{Id: "1", Email: "e@x.com"})
	Expect(errors.As(err, &missingErr)).To(BeTrue())
	Expect(missingErr.Attribute).To(Equal("login"))
}

// racingUserRepo simulates a concurrent first login: the lookup misses,
// the insert hits the unique index, and the record is visible on the
// next lookup.
type racingUserRepo struct {
	inner   port.UserRepository
	winner  domain.User
	created bool
	lookups int
}

func (r *racingUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.lookups++

	if r.lookups == 1 {
		return domain.User{}, domain.ErrNotFound
	}

	return r.winner, nil
}

func (r *racingUserRepo) GetByGoogleId(ctx context.Context, googleId string) (domain.User, error) {
	return r.inner.GetByGoogleId(ctx, googleId)
}

func (r *racingUserRepo) GetByGithubId(ctx context.Context, githubId string) (domain.User, error) {
	return r.inner.GetByGithubId(ctx, githubId)
}

func (r *racingUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	r.created = true
	return domain.User{}, domain.ErrDuplicateKey
}

func (r *racingUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return r.inner.Update(ctx, user)
}

func (s *IdentityServiceTestSuite) TestResolve_RetriesOnceAfterLosingCreateRace() {
	winner, err := s.UserRepo.Create(context.Background(), domain.User{
		UUID:     uuid.New(),
		Email:    "raced@example.com",
		GoogleId: "google-sub-5",
	})
	Expect(err).To(BeNil())

	racing := &racingUserRepo{inner: s.UserRepo, winner: winner}
	useCase := service.NewIdentityService(racing, nil)

	resolved, err := useCase.Resolve(context.Background(), domain.GooglePrincipal{
		Sub:   "google-sub-5",
		Name:  "Racer",
		Email: "raced@example.com",
	})

	Expect(err).To(BeNil())
	Expect(racing.created).To(BeTrue())
	Expect(resolved.ID).To(Equal(winner.ID))
}
