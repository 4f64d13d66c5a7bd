package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskboard/internal/cache"
	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/events"
	"github.com/spec-kit/taskboard/internal/repository"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// TaskService coordinates task workflows.
type TaskService struct {
	tasks      repository.TaskRepository
	projects   repository.ProjectRepository
	users      repository.UserRepository
	snapshots  *cache.Snapshots
	dispatcher events.Dispatcher
}

// TaskDependencies bundles collaborators for the task service.
type TaskDependencies struct {
	TaskRepo    repository.TaskRepository
	ProjectRepo repository.ProjectRepository
	UserRepo    repository.UserRepository
	Snapshots   *cache.Snapshots
	Dispatcher  events.Dispatcher
}

// TaskCreateInput describes the task creation payload. Project and assignee
// are referenced by their unique natural keys, not ids.
type TaskCreateInput struct {
	Title       string
	Status      domain.Status
	ProjectName string
	UserEmail   string
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		projects:   deps.ProjectRepo,
		users:      deps.UserRepo,
		snapshots:  deps.Snapshots,
		dispatcher: deps.Dispatcher,
	}
}

// Create resolves the project by name and the assignee by email, then
// inserts the task connected to both. Either lookup failing is NotFound and
// nothing is persisted.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	project, err := s.projects.GetByName(ctx, input.ProjectName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", map[string]any{"name": input.ProjectName})
		}
		return nil, err
	}

	assignee, err := s.users.GetByEmail(ctx, input.UserEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": input.UserEmail})
		}
		return nil, err
	}

	task := &domain.Task{
		Title:     title,
		Status:    status,
		ProjectID: project.ID,
		UserID:    assignee.ID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	task.Project = project
	task.Assignee = assignee

	s.publish(ctx, events.Event{
		Type:      events.EventTaskCreated,
		ProjectID: project.ID,
		Actor:     actorFor(actor),
		Payload: events.TaskCreatedPayload{
			TaskID:        task.ID,
			Title:         task.Title,
			Status:        task.Status,
			AssigneeID:    assignee.ID,
			AssigneeEmail: assignee.Email,
		},
	})
	return task, nil
}

// ListByProject returns the project's tasks with assignees joined in,
// serving from the snapshot cache when possible.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	if projectID == "" {
		return nil, apperrors.NewValidationError("projectId required", nil)
	}
	if tasks, err := s.snapshots.GetProjectTasks(ctx, projectID); err == nil {
		return tasks, nil
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.snapshots.SetProjectTasks(ctx, projectID, tasks)
	return tasks, nil
}

// ListForUser returns the caller's tasks with projects joined in.
func (s *TaskService) ListForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

// UpdateStatus sets a task's status. Only the assignee or an admin may
// change it, checked before the write.
func (s *TaskService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.Status) (*domain.Task, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && current.UserID != actor.ID {
		return nil, apperrors.NewForbidden("only the assignee or an admin may update this task")
	}

	task, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTaskStatusChanged,
		ProjectID: task.ProjectID,
		Actor:     actorFor(actor),
		Payload: events.TaskStatusChangedPayload{
			TaskID:    task.ID,
			OldStatus: current.Status,
			NewStatus: task.Status,
		},
	})
	return task, nil
}

// Delete removes a task by id.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTaskDeleted,
		ProjectID: task.ProjectID,
		Actor:     actorFor(actor),
		Payload:   events.TaskDeletedPayload{TaskID: id},
	})
	return nil
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
