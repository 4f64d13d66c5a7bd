package dashboard

import (
	"context"

	"github.com/spec-kit/taskboard/internal/api/dto"
)

// API is the slice of the HTTP client the dashboard views consume.
// *client.Client satisfies it; tests substitute a fake.
type API interface {
	ListProjects(ctx context.Context) ([]dto.ProjectResponse, error)
	CreateProject(ctx context.Context, name string) (*dto.ProjectResponse, error)
	UpdateProjectStatus(ctx context.Context, id, status string) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error
	ManagerOverview(ctx context.Context) ([]dto.ProjectOverviewResponse, error)
	CreateTask(ctx context.Context, title, status, projectName, userEmail string) (*dto.TaskResponse, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]dto.TaskResponse, error)
	ListMyTasks(ctx context.Context) ([]dto.TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, id, status string) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}
