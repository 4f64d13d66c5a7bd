package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/taskboard/internal/cache"
	"github.com/spec-kit/taskboard/internal/domain"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

type taskFixture struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	tasks    *fakeTaskRepo
	svc      *TaskService
}

func newTaskFixture() *taskFixture {
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	tasks := newFakeTaskRepo(users, projects)
	svc := NewTaskService(TaskDependencies{
		TaskRepo:    tasks,
		ProjectRepo: projects,
		UserRepo:    users,
		Snapshots:   cache.NewSnapshots(nil, 0, zap.NewNop()),
	})
	return &taskFixture{users: users, projects: projects, tasks: tasks, svc: svc}
}

func (f *taskFixture) addUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email, Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *taskFixture) addProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	project := &domain.Project{Name: name, Status: domain.StatusTodo}
	require.NoError(t, f.projects.Create(context.Background(), project))
	return project
}

func TestCreateTaskResolvesProjectAndAssignee(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	ada := f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	atlas := f.addProject(t, "Atlas")

	task, err := f.svc.Create(ctx, admin, TaskCreateInput{
		Title:       "wire up auth",
		ProjectName: "Atlas",
		UserEmail:   "ada@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.Equal(t, atlas.ID, task.ProjectID)
	assert.Equal(t, ada.ID, task.UserID)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, "ada@x.com", task.Assignee.Email)
}

func TestCreateTaskMissingProjectOrUser(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	f.addProject(t, "Atlas")

	_, err := f.svc.Create(ctx, admin, TaskCreateInput{
		Title:       "t",
		ProjectName: "Nope",
		UserEmail:   "ada@x.com",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Create(ctx, admin, TaskCreateInput{
		Title:       "t",
		ProjectName: "Atlas",
		UserEmail:   "nobody@x.com",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	// neither failed attempt persisted anything
	assert.Empty(t, f.tasks.tasks)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	f.addProject(t, "Atlas")

	_, err := f.svc.Create(ctx, admin, TaskCreateInput{Title: "  ", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Create(ctx, admin, TaskCreateInput{Title: "t", Status: "SHIPPED", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListByProjectIncludesAssignee(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	atlas := f.addProject(t, "Atlas")
	other := f.addProject(t, "Borealis")

	_, err := f.svc.Create(ctx, admin, TaskCreateInput{Title: "a", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin, TaskCreateInput{Title: "b", ProjectName: "Borealis", UserEmail: "ada@x.com"})
	require.NoError(t, err)

	tasks, err := f.svc.ListByProject(ctx, atlas.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)
	require.NotNil(t, tasks[0].Assignee)
	assert.Equal(t, "ada@x.com", tasks[0].Assignee.Email)

	tasks, err = f.svc.ListByProject(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Title)

	_, err = f.svc.ListByProject(ctx, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListForUserReturnsOnlyOwnTasks(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	ada := f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	f.addUser(t, "Bob", "bob@x.com", domain.RoleUser)
	f.addProject(t, "Atlas")

	_, err := f.svc.Create(ctx, admin, TaskCreateInput{Title: "mine", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin, TaskCreateInput{Title: "theirs", ProjectName: "Atlas", UserEmail: "bob@x.com"})
	require.NoError(t, err)

	tasks, err := f.svc.ListForUser(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)
	require.NotNil(t, tasks[0].Project)
	assert.Equal(t, "Atlas", tasks[0].Project.Name)
}

func TestUpdateTaskStatusAssigneeOrAdmin(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	ada := f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	bob := f.addUser(t, "Bob", "bob@x.com", domain.RoleUser)
	f.addProject(t, "Atlas")

	task, err := f.svc.Create(ctx, admin, TaskCreateInput{Title: "t", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, bob, task.ID, domain.StatusDone)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	updated, err := f.svc.UpdateStatus(ctx, ada, task.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)

	updated, err = f.svc.UpdateStatus(ctx, admin, task.ID, domain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, admin, "missing", domain.StatusDone)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteTask(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	f.addUser(t, "Ada", "ada@x.com", domain.RoleUser)
	f.addProject(t, "Atlas")

	task, err := f.svc.Create(ctx, admin, TaskCreateInput{Title: "t", ProjectName: "Atlas", UserEmail: "ada@x.com"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, admin, task.ID))
	assert.Empty(t, f.tasks.tasks)

	err = f.svc.Delete(ctx, admin, task.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}
