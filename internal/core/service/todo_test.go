package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todoapp/pkg/test"
	"todoapp/pkg/test/factory"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/adapter/database/sqlite/repository"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
)

type TodoServiceTestSuite struct {
	suite.Suite
	UseCase  *service.TodoService
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
}

func (s *TodoServiceTestSuite) SetupTest() {
	db := sqlite.WrapDB(InitTestDB())

	s.TodoRepo = repository.NewTodoRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)
	s.UseCase = service.NewTodoService(s.TodoRepo, nil)
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) TestSave_AssignsUUIDAndEpochDeadline() {
	todo, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "buy milk",
		Priority: domain.PriorityMedium,
	})

	Expect(err).To(BeNil())
	Expect(todo.UUID).NotTo(Equal(uuid.Nil))
	Expect(todo.Deadline.Format(time.DateOnly)).To(Equal("1970-01-01"))
	Expect(todo.Priority).To(Equal(domain.PriorityMedium))
}

func (s *TodoServiceTestSuite) TestSave_KeepsExplicitDeadline() {
	todo, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "file taxes",
		Priority: domain.PriorityBig,
		Deadline: time.Date(2026, time.April, 30, 18, 0, 0, 0, time.UTC),
	})

	Expect(err).To(BeNil())
	Expect(todo.Deadline.Format(time.DateOnly)).To(Equal("2026-04-30"))
}

func (s *TodoServiceTestSuite) TestSave_ValidationErrorForEmptyName() {
	_, err := s.UseCase.Save(context.Background(), domain.Todo{
		Priority: domain.PriorityMedium,
	})

	var validationErr *domain.ValidationError
	Expect(errors.As(err, &validationErr)).To(BeTrue())
	Expect(validationErr.Violations).NotTo(BeEmpty())
	Expect(validationErr.Violations[0].Field).To(Equal("name"))
}

func (s *TodoServiceTestSuite) TestSave_ValidationErrorForUnknownPriority() {
	_, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "walk the dog",
		Priority: domain.Priority("urgent"),
	})

	var validationErr *domain.ValidationError
	Expect(errors.As(err, &validationErr)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestSave_DuplicateNameConflicts() {
	_, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "unique task",
		Priority: domain.PrioritySmall,
	})
	Expect(err).To(BeNil())

	_, err = s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "unique task",
		Priority: domain.PriorityBig,
	})

	Expect(errors.Is(err, domain.ErrDuplicateKey)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestGet_BlankIdIsInvalidInput() {
	_, err := s.UseCase.Get(context.Background(), "   ")

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestGet_UnknownIdIsNotFound() {
	_, err := s.UseCase.Get(context.Background(), uuid.New().String())

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_OnlyTouchesMutableFields() {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	Expect(err).To(BeNil())

	created, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "draft report",
		Priority: domain.PrioritySmall,
		UserId:   user.ID,
	})
	Expect(err).To(BeNil())

	updated, err := s.UseCase.Update(context.Background(), created.UUID.String(), domain.Todo{
		UUID:     uuid.New(),
		Name:     "final report",
		Priority: domain.PriorityBig,
		Deadline: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		UserId:   999,
	})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("final report"))
	Expect(updated.Priority).To(Equal(domain.PriorityBig))
	Expect(updated.Deadline.Format(time.DateOnly)).To(Equal("2026-09-01"))

	Expect(updated.UUID).To(Equal(created.UUID))
	Expect(updated.UserId).To(Equal(user.ID))
	Expect(updated.ID).To(Equal(created.ID))
}

func (s *TodoServiceTestSuite) TestUpdate_UnknownIdIsNotFound() {
	_, err := s.UseCase.Update(context.Background(), uuid.New().String(), domain.Todo{
		Name:     "ghost",
		Priority: domain.PriorityMedium,
	})

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestDelete_ThenGetIsNotFound() {
	created, err := s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "temporary",
		Priority: domain.PriorityMedium,
	})
	Expect(err).To(BeNil())

	Expect(s.UseCase.Delete(context.Background(), created.UUID.String())).To(BeNil())

	_, err = s.UseCase.Get(context.Background(), created.UUID.String())
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())

	err = s.UseCase.Delete(context.Background(), created.UUID.String())
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestListForUser_ScopesToOwner() {
	alice, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	Expect(err).To(BeNil())

	bob, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	Expect(err).To(BeNil())

	_, err = s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "alice task",
		Priority: domain.PrioritySmall,
		UserId:   alice.ID,
	})
	Expect(err).To(BeNil())

	_, err = s.UseCase.Save(context.Background(), domain.Todo{
		Name:     "bob task",
		Priority: domain.PrioritySmall,
		UserId:   bob.ID,
	})
	Expect(err).To(BeNil())

	mine, err := s.UseCase.ListForUser(context.Background(), alice.ID)
	Expect(err).To(BeNil())
	Expect(mine).To(HaveLen(1))
	Expect(mine[0].Name).To(Equal("alice task"))

	all, err := s.UseCase.List(context.Background())
	Expect(err).To(BeNil())
	Expect(all).To(HaveLen(2))
}
