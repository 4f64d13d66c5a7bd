package dashboard

import (
	"context"
	"sync"

	"github.com/spec-kit/taskboard/internal/api/dto"
)

// UserTask pairs a fetched task with a locally staged status. The staged
// value only reaches the server on an explicit Submit.
type UserTask struct {
	Task   dto.TaskResponse
	Staged string
}

// ProjectGroup is one project's slice of the caller's tasks.
type ProjectGroup struct {
	ProjectID   string
	ProjectName string
	Tasks       []UserTask
}

// UserView shows the caller's own tasks grouped by project, with a staged
// status dropdown per task and explicit submit instead of auto-save.
type UserView struct {
	api   API
	State ViewState

	mu     sync.Mutex
	groups []ProjectGroup
}

// NewUserView constructs the view.
func NewUserView(api API, pageSize int) *UserView {
	return &UserView{api: api, State: NewViewState(pageSize)}
}

// Refresh reloads the caller's tasks and groups them by project, preserving
// the server's project ordering.
func (v *UserView) Refresh(ctx context.Context) error {
	tasks, err := v.api.ListMyTasks(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int)
	var groups []ProjectGroup
	for _, task := range tasks {
		projectID := task.ProjectID
		projectName := "Unknown Project"
		if task.Project != nil {
			projectName = task.Project.Name
		}
		pos, ok := index[projectID]
		if !ok {
			pos = len(groups)
			index[projectID] = pos
			groups = append(groups, ProjectGroup{ProjectID: projectID, ProjectName: projectName})
		}
		groups[pos].Tasks = append(groups[pos].Tasks, UserTask{Task: task, Staged: string(task.Status)})
	}

	v.mu.Lock()
	v.groups = groups
	v.mu.Unlock()
	return nil
}

// Groups returns the task groups with the search and status filters
// applied. Groups left empty by the filters are dropped.
func (v *UserView) Groups() []ProjectGroup {
	v.mu.Lock()
	defer v.mu.Unlock()

	var filtered []ProjectGroup
	for _, group := range v.groups {
		var tasks []UserTask
		for _, item := range group.Tasks {
			if !v.State.MatchesSearch(item.Task.Title) {
				continue
			}
			if !v.State.MatchesStatus(string(item.Task.Status)) {
				continue
			}
			tasks = append(tasks, item)
		}
		if len(tasks) == 0 {
			continue
		}
		filtered = append(filtered, ProjectGroup{
			ProjectID:   group.ProjectID,
			ProjectName: group.ProjectName,
			Tasks:       tasks,
		})
	}
	return filtered
}

// StageStatus records a new status locally for the given task.
func (v *UserView) StageStatus(taskID, status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for gi := range v.groups {
		for ti := range v.groups[gi].Tasks {
			if v.groups[gi].Tasks[ti].Task.ID == taskID {
				v.groups[gi].Tasks[ti].Staged = status
				return
			}
		}
	}
}

// Submit sends the staged status for the given task to the server, then
// refreshes.
func (v *UserView) Submit(ctx context.Context, taskID string) error {
	v.mu.Lock()
	staged := ""
	for _, group := range v.groups {
		for _, item := range group.Tasks {
			if item.Task.ID == taskID {
				staged = item.Staged
			}
		}
	}
	v.mu.Unlock()

	if staged == "" {
		return nil
	}
	if _, err := v.api.UpdateTaskStatus(ctx, taskID, staged); err != nil {
		return err
	}
	return v.Refresh(ctx)
}
