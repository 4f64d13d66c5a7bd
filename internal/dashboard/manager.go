package dashboard

import (
	"context"
	"sync"

	"github.com/spec-kit/taskboard/internal/api/dto"
)

// ManagerView is the read-only dashboard. It carries the same fan-out and
// pagination pattern as the admin view plus the aggregated overview rows.
type ManagerView struct {
	api   API
	State ViewState

	mu             sync.Mutex
	projects       []dto.ProjectResponse
	tasksByProject map[string][]dto.TaskResponse
	overview       []dto.ProjectOverviewResponse
}

// NewManagerView constructs the view.
func NewManagerView(api API, pageSize int) *ManagerView {
	return &ManagerView{
		api:            api,
		State:          NewViewState(pageSize),
		tasksByProject: make(map[string][]dto.TaskResponse),
	}
}

// Refresh reloads the project list, the per-project tasks and the
// aggregated overview.
func (v *ManagerView) Refresh(ctx context.Context) error {
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

	overview, err := v.api.ManagerOverview(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.projects = projects
	v.tasksByProject = taskMap
	v.overview = overview
	v.mu.Unlock()
	return nil
}

// VisibleProjects returns the current page of projects after the name
// search.
func (v *ManagerView) VisibleProjects() ([]dto.ProjectResponse, int) {
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
func (v *ManagerView) Tasks(projectID string) []dto.TaskResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tasksByProject[projectID]
}

// Overview returns the aggregated per-project rows.
func (v *ManagerView) Overview() []dto.ProjectOverviewResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]dto.ProjectOverviewResponse(nil), v.overview...)
}
