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

// ProjectService coordinates project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	snapshots  *cache.Snapshots
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles collaborators for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	TaskRepo    repository.TaskRepository
	Snapshots   *cache.Snapshots
	Dispatcher  events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		tasks:      deps.TaskRepo,
		snapshots:  deps.Snapshots,
		dispatcher: deps.Dispatcher,
	}
}

// Create inserts a new project. Duplicate names fail with Conflict; the
// unique index on projects.name backs the pre-check.
func (s *ProjectService) Create(ctx context.Context, actor *domain.User, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	if _, err := s.projects.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("project with this name already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	project := &domain.Project{Name: name, Status: domain.StatusTodo}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventProjectCreated,
		ProjectID: project.ID,
		Actor:     actorFor(actor),
		Payload:   events.ProjectCreatedPayload{Name: project.Name, Status: project.Status},
	})
	return project, nil
}

// List returns all projects, serving from the snapshot cache when possible.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if projects, err := s.snapshots.GetProjects(ctx); err == nil {
		return projects, nil
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshots.SetProjects(ctx, projects)
	return projects, nil
}

// UpdateStatus sets the project status after validating the enumeration.
func (s *ProjectService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.Status) (*domain.Project, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	current, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return nil, err
	}

	project, err := s.projects.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventProjectStatusChanged,
		ProjectID: project.ID,
		Actor:     actorFor(actor),
		Payload:   events.ProjectStatusChangedPayload{OldStatus: current.Status, NewStatus: project.Status},
	})
	return project, nil
}

// Delete removes the project and, through the FK cascade, its tasks.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventProjectDeleted,
		ProjectID: id,
		Actor:     actorFor(actor),
		Payload:   events.ProjectDeletedPayload{Name: project.Name},
	})
	return nil
}

// ManagerOverview assembles per-project task counts for the read-only
// manager dashboard.
func (s *ProjectService) ManagerOverview(ctx context.Context) ([]domain.ProjectOverview, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]domain.ProjectOverview, 0, len(projects))
	for _, project := range projects {
		counts, err := s.tasks.CountByProjectStatus(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		overviews = append(overviews, domain.ProjectOverview{
			Project:    project,
			TaskCounts: counts,
			TotalTasks: total,
		})
	}
	return overviews, nil
}

func (s *ProjectService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Role: user.Role}
}
