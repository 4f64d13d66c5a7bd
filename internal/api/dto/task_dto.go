package dto

import (
	"time"

	"github.com/spec-kit/taskboard/internal/domain"
)

// CreateTaskRequest payload. Project and assignee are referenced by natural
// keys so the admin form can submit what it renders.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	ProjectName string `json:"projectName"`
	UserEmail   string `json:"userEmail"`
}

// UpdateTaskRequest payload.
type UpdateTaskRequest struct {
	Status string `json:"status"`
}

// TaskResponse shape. Assignee or project is present depending on which
// listing produced the task.
type TaskResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Status    domain.Status    `json:"status"`
	ProjectID string           `json:"project_id"`
	UserID    string           `json:"user_id"`
	Assignee  *UserResponse    `json:"user,omitempty"`
	Project   *ProjectResponse `json:"project,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TaskFromDomain maps a domain task to its response shape.
func TaskFromDomain(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		ProjectID: task.ProjectID,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.Assignee != nil {
		assignee := UserFromDomain(task.Assignee)
		resp.Assignee = &assignee
	}
	if task.Project != nil {
		project := ProjectFromDomain(task.Project)
		resp.Project = &project
	}
	return resp
}

// TasksFromDomain maps a task slice.
func TasksFromDomain(tasks []domain.Task) []TaskResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, TaskFromDomain(&tasks[i]))
	}
	return items
}
