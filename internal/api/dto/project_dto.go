package dto

import (
	"time"

	"github.com/spec-kit/taskboard/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// UpdateProjectRequest payload.
type UpdateProjectRequest struct {
	Status string `json:"status"`
}

// ProjectResponse shape.
type ProjectResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProjectOverviewResponse is one row of the manager dashboard.
type ProjectOverviewResponse struct {
	Project    ProjectResponse       `json:"project"`
	TaskCounts map[domain.Status]int `json:"task_counts"`
	TotalTasks int                   `json:"total_tasks"`
}

// ProjectFromDomain maps a domain project to its response shape.
func ProjectFromDomain(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        project.ID,
		Name:      project.Name,
		Status:    project.Status,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

// OverviewFromDomain maps a manager overview row.
func OverviewFromDomain(overview domain.ProjectOverview) ProjectOverviewResponse {
	return ProjectOverviewResponse{
		Project:    ProjectFromDomain(&overview.Project),
		TaskCounts: overview.TaskCounts,
		TotalTasks: overview.TotalTasks,
	}
}
