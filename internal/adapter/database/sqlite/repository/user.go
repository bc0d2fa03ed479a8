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

var userColumns = []string{"id", "uuid", "email", "google_id", "github_id", "created_at", "updated_at"}

type UserRepository struct {
	db    *sqlite.DB
	probe port.Telemetry
}

func NewUserRepository(db *sqlite.DB, probe port.Telemetry) port.UserRepository {
	if probe == nil {
		probe = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:    db,
		probe: probe,
	}
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		user     domain.User
		uid      string
		googleId sql.NullString
		githubId sql.NullString
	)

	err := row.Scan(&user.ID, &uid, &user.Email, &googleId, &githubId, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return domain.User{}, err
	}

	user.UUID, err = uuid.Parse(uid)

	if err != nil {
		return domain.User{}, err
	}

	user.GoogleId = googleId.String
	user.GithubId = githubId.String

	return user, nil
}

func (ur *UserRepository) getOneWhere(ctx context.Context, pred sq.Eq) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, sqlite.ClassifyError("users.select", err)
	}

	user, err := scanUser(ur.db.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, sqlite.ClassifyError("users.select", err)
	}

	return user, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOneWhere(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByGoogleId(ctx context.Context, googleId string) (domain.User, error) {
	return ur.getOneWhere(ctx, sq.Eq{"google_id": googleId})
}

func (ur *UserRepository) GetByGithubId(ctx context.Context, githubId string) (domain.User, error) {
	return ur.getOneWhere(ctx, sq.Eq{"github_id": githubId})
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.probe.StartRepositorySpan(ctx, "Create", "user", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "users",
		"user.uuid": user.UUID.String(),
	})
	defer span.End()

	startTime := time.Now()

	// Empty provider ids are stored as NULL so the partial unique indexes
	// only bite on real values.
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "google_id", "github_id", "created_at", "updated_at").
		Values(user.UUID.String(), user.Email, nullableString(user.GoogleId), nullableString(user.GithubId), user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, sqlite.ClassifyError("users.insert", err)
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		classified := sqlite.ClassifyError("users.insert", err)
		span.SetStatus("error", classified.Error())
		span.RecordError(classified)
		ur.probe.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), classified)
		return domain.User{}, classified
	}

	saved, err := ur.getOneWhere(ctx, sq.Eq{"uuid": user.UUID.String()})

	if err != nil {
		slog.Error("User read-back after insert failed", "error", err, "uuid", user.UUID)
		return domain.User{}, err
	}

	span.SetStatus("ok", "")
	ur.probe.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), nil)

	return saved, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("google_id", nullableString(user.GoogleId)).
		Set("github_id", nullableString(user.GithubId)).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"uuid": user.UUID.String()}).
		ToSql()

	if err != nil {
		return domain.User{}, sqlite.ClassifyError("users.update", err)
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, sqlite.ClassifyError("users.update", err)
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	return user, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}

	return s
}
