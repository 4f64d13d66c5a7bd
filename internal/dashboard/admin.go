package dashboard

import (
	"context"
	"sync"

	"github.com/spec-kit/taskboard/internal/api/dto"
)

// PendingTask is a locally staged new-task row that has not been submitted
// yet.
type PendingTask struct {
	Title     string
	UserEmail string
	Status    string
}

// AdminView drives the admin dashboard: full project/task management with
// search, status filtering and pagination over the project list.
type AdminView struct {
	api   API
	State ViewState

	mu             sync.Mutex
	projects       []dto.ProjectResponse
	tasksByProject map[string][]dto.TaskResponse
	pending        map[string][]PendingTask
}

// NewAdminView constructs the view.
func NewAdminView(api API, pageSize int) *AdminView {
	return &AdminView{
		api:            api,
		State:          NewViewState(pageSize),
		tasksByProject: make(map[string][]dto.TaskResponse),
		pending:        make(map[string][]PendingTask),
	}
}

// Refresh reloads the project list and then each project's tasks, one call
// per project. A failed task fetch leaves that project's list empty rather
// than failing the whole refresh.
func (v *AdminView) Refresh(ctx context.Context) error {
	projects, err := v.api.ListProjects(ctx)
	if err != nil {
		return err
	}

	taskMap := make(map[string][]dto.TaskResponse, len(projects))
	for _, project := range projects {
		tasks, err := v.api.ListTasksByProject(ctx, project.ID)
		if err != nil {
			taskMap[project.ID] = nil
			continue
		}
		taskMap[project.ID] = tasks
	}

	v.mu.Lock()
	v.projects = projects
	v.tasksByProject = taskMap
	v.mu.Unlock()
	return nil
}

// VisibleProjects returns the current page of projects after applying the
// name search.
func (v *AdminView) VisibleProjects() ([]dto.ProjectResponse, int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := make([]dto.ProjectResponse, 0, len(v.projects))
	for _, project := range v.projects {
		if v.State.MatchesSearch(project.Name) {
			filtered = append(filtered, project)
		}
	}
	totalPages := v.State.TotalPages(len(filtered))
	start, end := v.State.PageBounds(len(filtered))
	return filtered[start:end], totalPages
}

// Tasks returns a project's fetched tasks.
func (v *AdminView) Tasks(projectID string) []dto.TaskResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tasksByProject[projectID]
}

// PendingTasks returns a project's staged new-task rows.
func (v *AdminView) PendingTasks(projectID string) []PendingTask {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]PendingTask(nil), v.pending[projectID]...)
}

// AddTaskRow stages an empty new-task row for the project.
func (v *AdminView) AddTaskRow(projectID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending[projectID] = append(v.pending[projectID], PendingTask{Status: "TODO"})
}

// SetTaskRow updates a staged row's fields.
func (v *AdminView) SetTaskRow(projectID string, index int, row PendingTask) {
	v.mu.Lock()
	defer v.mu.Unlock()
	rows := v.pending[projectID]
	if index < 0 || index >= len(rows) {
		return
	}
	rows[index] = row
}

// AssignTasks submits every staged row for the project as a task creation
// call, then clears the staged rows and refreshes. The first failing call
// aborts the batch; already created tasks stay created.
func (v *AdminView) AssignTasks(ctx context.Context, projectID string) error {
	v.mu.Lock()
	var projectName string
	for _, project := range v.projects {
		if project.ID == projectID {
			projectName = project.Name
			break
		}
	}
	rows := append([]PendingTask(nil), v.pending[projectID]...)
	v.mu.Unlock()

	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = "TODO"
		}
		if _, err := v.api.CreateTask(ctx, row.Title, status, projectName, row.UserEmail); err != nil {
			return err
		}
	}

	v.mu.Lock()
	delete(v.pending, projectID)
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// CreateProject creates a project and refreshes.
func (v *AdminView) CreateProject(ctx context.Context, name string) error {
	if _, err := v.api.CreateProject(ctx, name); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// DeleteProject deletes a project and refreshes.
func (v *AdminView) DeleteProject(ctx context.Context, id string) error {
	if err := v.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// DeleteTask deletes a task and refreshes.
func (v *AdminView) DeleteTask(ctx context.Context, id string) error {
	if err := v.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// ChangeProjectStatus updates a project's status and reflects the change in
// the local list without a full re-fetch.
func (v *AdminView) ChangeProjectStatus(ctx context.Context, id, status string) error {
	updated, err := v.api.UpdateProjectStatus(ctx, id, status)
	if err != nil {
		return err
	}
	v.mu.Lock()
	for i := range v.projects {
		if v.projects[i].ID == id {
			v.projects[i] = *updated
			break
		}
	}
	v.mu.Unlock()
	return nil
}
