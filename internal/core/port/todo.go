package port

import (
	"context"

	"todoapp/internal/core/domain"
)

type TodoRepository interface {
	GetAll(ctx context.Context) ([]domain.Todo, error)
	GetAllByUserId(ctx context.Context, userId int) ([]domain.Todo, error)
	GetByUUID(ctx context.Context, uid string) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	DeleteByUUID(ctx context.Context, uid string) error
}

type TodoService interface {
	List(ctx context.Context) ([]domain.Todo, error)
	ListForUser(ctx context.Context, userId int) ([]domain.Todo, error)
	Get(ctx context.Context, uid string) (domain.Todo, error)
	Save(ctx context.Context, candidate domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, uid string, candidate domain.Todo) (domain.Todo, error)
	Delete(ctx context.Context, uid string) error
}
