package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/models"
)

// TaskReadRepository handles task read operations. Every query is scoped by
// owner; a task is never visible outside its owner_id.
type TaskReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTaskReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TaskReadRepository {
	return &TaskReadRepository{db: db, txGetter: txGetter}
}

func (r *TaskReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// ListByOwner returns all tasks of the owner, newest first.
func (r *TaskReadRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.TaskDB, error) {
	const query = `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	tasks := make([]models.TaskDB, 0)
	err := sqlx.SelectContext(ctx, r.executor(ctx), &tasks, query, ownerID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{ownerID},
		"result", len(tasks),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns the task only when both id and owner match; nil otherwise.
func (r *TaskReadRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.TaskDB, error) {
	const query = `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	var task models.TaskDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &task, query, id, ownerID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, ownerID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskWriteRepository handles task write operations
type TaskWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTaskWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TaskWriteRepository {
	return &TaskWriteRepository{db: db, txGetter: txGetter}
}

func (r *TaskWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Create inserts a task for the owner and returns the stored record.
func (r *TaskWriteRepository) Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error) {
	const query = `
		INSERT INTO tasks (owner_id, title, description, completed, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, owner_id, title, description, completed, created_at, updated_at
	`

	var task models.TaskDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &task, query, ownerID, title, description, completed)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{ownerID, title, completed},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update overwrites title, description and completed for the owner's task and
// stamps updated_at. Returns nil when no row matched (absent or foreign task).
func (r *TaskWriteRepository) Update(ctx context.Context, id, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error) {
	const query = `
		UPDATE tasks
		SET title = $3, description = $4, completed = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, description, completed, created_at, updated_at
	`

	var task models.TaskDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &task, query, id, ownerID, title, description, completed)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, ownerID, title, completed},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the owner's task. Returns false when no row matched.
func (r *TaskWriteRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	const query = `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, id, ownerID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, ownerID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
