package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	tel "todoapp/internal/core/telemetry"
)

var todoColumns = []string{"id", "uuid", "name", "deadline", "priority", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db    *sqlite.DB
	probe port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, probe port.Telemetry) port.TodoRepository {
	if probe == nil {
		probe = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:    db,
		probe: probe,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		todo   domain.Todo
		uid    string
		prio   string
		userId sql.NullInt64
	)

	err := row.Scan(&todo.ID, &uid, &todo.Name, &todo.Deadline, &prio, &userId, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.UUID, err = uuid.Parse(uid)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Priority = domain.Priority(prio)
	todo.UserId = int(userId.Int64)

	return todo, nil
}

func (tr *TodoRepository) getAllWhere(ctx context.Context, pred interface{}) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("id ASC")

	if pred != nil {
		query = query.Where(pred)
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, sqlite.ClassifyError("todos.select", err)
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, sqlite.ClassifyError("todos.select", err)
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, sqlite.ClassifyError("todos.scan", err)
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, sqlite.ClassifyError("todos.select", err)
	}

	return todos, nil
}

func (tr *TodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return tr.getAllWhere(ctx, nil)
}

func (tr *TodoRepository) GetAllByUserId(ctx context.Context, userId int) ([]domain.Todo, error) {
	return tr.getAllWhere(ctx, sq.Eq{"user_id": userId})
}

func (tr *TodoRepository) GetByUUID(ctx context.Context, uid string) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, sqlite.ClassifyError("todos.select", err)
	}

	todo, err := scanTodo(tr.db.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, sqlite.ClassifyError("todos.select", err)
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tr.probe.StartRepositorySpan(ctx, "Create", "todo", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "todos",
		"todo.uuid": todo.UUID.String(),
	})
	defer span.End()

	startTime := time.Now()

	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "name", "deadline", "priority", "user_id", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.Name, todo.Deadline.Format(time.DateOnly), string(todo.Priority), nullableId(todo.UserId), todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, sqlite.ClassifyError("todos.insert", err)
	}

	if _, err := tr.db.ExecContext(ctx, stmt, args...); err != nil {
		classified := sqlite.ClassifyError("todos.insert", err)
		span.SetStatus("error", classified.Error())
		span.RecordError(classified)
		tr.probe.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), classified)
		return domain.Todo{}, classified
	}

	saved, err := tr.GetByUUID(ctx, todo.UUID.String())

	if err != nil {
		slog.Error("Todo read-back after insert failed", "error", err, "uuid", todo.UUID)
		return domain.Todo{}, err
	}

	span.SetStatus("ok", "")
	tr.probe.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), nil)

	return saved, nil
}

func (tr *TodoRepository) UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	// Only the mutable columns are written; id, uuid and user_id stay as
	// stored no matter what the caller passes.
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		Set("name", todo.Name).
		Set("deadline", todo.Deadline.Format(time.DateOnly)).
		Set("priority", string(todo.Priority)).
		Set("updated_at", todo.UpdatedAt).
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		ToSql()

	if err != nil {
		return domain.Todo{}, sqlite.ClassifyError("todos.update", err)
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, sqlite.ClassifyError("todos.update", err)
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.Todo{}, domain.ErrNotFound
	}

	return todo, nil
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return sqlite.ClassifyError("todos.delete", err)
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return sqlite.ClassifyError("todos.delete", err)
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func nullableId(id int) interface{} {
	if id == 0 {
		return nil
	}

	return id
}
