package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskboard/internal/domain"
)

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	CountByProjectStatus(ctx context.Context, projectID string) (map[domain.Status]int, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, status, project_id, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Status,
		task.ProjectID,
		task.UserID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
        SELECT id, title, status, project_id, user_id, created_at, updated_at
        FROM tasks WHERE id=$1`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Status,
		&task.ProjectID,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject returns the project's tasks with the assignee joined in.
func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	const query = `
        SELECT t.id, t.title, t.status, t.project_id, t.user_id, t.created_at, t.updated_at,
               u.id, u.name, u.email, u.role
        FROM tasks t
        JOIN users u ON u.id = t.user_id
        WHERE t.project_id=$1
        ORDER BY t.created_at`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		var assignee domain.User
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Status,
			&task.ProjectID,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
			&assignee.ID,
			&assignee.Name,
			&assignee.Email,
			&assignee.Role,
		); err != nil {
			return nil, err
		}
		task.Assignee = &assignee
		result = append(result, task)
	}
	return result, rows.Err()
}

// ListByUser returns the user's tasks with the owning project joined in.
func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	const query = `
        SELECT t.id, t.title, t.status, t.project_id, t.user_id, t.created_at, t.updated_at,
               p.id, p.name, p.status
        FROM tasks t
        JOIN projects p ON p.id = t.project_id
        WHERE t.user_id=$1
        ORDER BY p.created_at, t.created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		var project domain.Project
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Status,
			&task.ProjectID,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
			&project.ID,
			&project.Name,
			&project.Status,
		); err != nil {
			return nil, err
		}
		task.Project = &project
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) CountByProjectStatus(ctx context.Context, projectID string) (map[domain.Status]int, error) {
	const query = `
        SELECT status, COUNT(*) FROM tasks
        WHERE project_id=$1 GROUP BY status`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status domain.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	const query = `
        UPDATE tasks SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, title, status, project_id, user_id, created_at, updated_at`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&task.ID,
		&task.Title,
		&task.Status,
		&task.ProjectID,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
