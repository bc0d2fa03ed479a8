package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	tel "todoapp/internal/core/telemetry"
	"todoapp/internal/core/util"
)

type TodoService struct {
	repo  port.TodoRepository
	probe port.Telemetry
}

func NewTodoService(repo port.TodoRepository, probe port.Telemetry) *TodoService {
	if probe == nil {
		probe = tel.NewNoOpProbe()
	}

	return &TodoService{
		repo:  repo,
		probe: probe,
	}
}

func (ts *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	return ts.repo.GetAll(ctx)
}

func (ts *TodoService) ListForUser(ctx context.Context, userId int) ([]domain.Todo, error) {
	return ts.repo.GetAllByUserId(ctx, userId)
}

func (ts *TodoService) Get(ctx context.Context, uid string) (domain.Todo, error) {
	if strings.TrimSpace(uid) == "" {
		return domain.Todo{}, fmt.Errorf("%w: id", domain.ErrInvalidInput)
	}

	return ts.repo.GetByUUID(ctx, uid)
}

// Save validates the candidate before touching the store; a duplicate name
// surfaces as ErrDuplicateKey from the store's unique index.
func (ts *TodoService) Save(ctx context.Context, candidate domain.Todo) (domain.Todo, error) {
	if err := util.ValidateEntity(candidate); err != nil {
		return domain.Todo{}, err
	}

	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Save", map[string]interface{}{
		"todo.name": candidate.Name,
	})
	defer span.End()

	now := time.Now()

	newTodo := domain.Todo{
		UUID:      candidate.UUID,
		Name:      candidate.Name,
		Deadline:  candidate.DeadlineOrEpoch(),
		Priority:  candidate.Priority,
		UserId:    candidate.UserId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if newTodo.UUID == uuid.Nil {
		newTodo.UUID = uuid.New()
	}

	todo, err := ts.repo.Create(ctx, newTodo)

	if err != nil {
		slog.Error("Todo#Save repository create failed", "error", err, "name", newTodo.Name)
		span.SetStatus("error", err.Error())
		return domain.Todo{}, err
	}

	ts.probe.RecordBusinessEvent(ctx, "created", "todo", todo.UUID.String(), map[string]interface{}{
		"name":     todo.Name,
		"priority": todo.Priority.String(),
	})

	return todo, nil
}

// Update copies name, deadline and priority from the candidate onto the
// stored record. Id, uuid and the user back-reference never change.
func (ts *TodoService) Update(ctx context.Context, uid string, candidate domain.Todo) (domain.Todo, error) {
	if strings.TrimSpace(uid) == "" {
		return domain.Todo{}, fmt.Errorf("%w: id", domain.ErrInvalidInput)
	}

	if err := util.ValidateEntity(candidate); err != nil {
		return domain.Todo{}, err
	}

	current, err := ts.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	updated := current
	updated.Name = candidate.Name
	updated.Deadline = candidate.DeadlineOrEpoch()
	updated.Priority = candidate.Priority
	updated.UpdatedAt = time.Now()

	todo, err := ts.repo.UpdateByUUID(ctx, updated)

	if err != nil {
		slog.Error("Todo#Update repository update failed", "error", err, "uuid", uid)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (ts *TodoService) Delete(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("%w: id", domain.ErrInvalidInput)
	}

	if err := ts.repo.DeleteByUUID(ctx, uid); err != nil {
		return err
	}

	ts.probe.RecordBusinessEvent(ctx, "deleted", "todo", uid, nil)

	return nil
}
