package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskboard/internal/domain"
)

// In-memory repository fakes with pgx.ErrNoRows semantics matching the
// Postgres implementations.

type fakeUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.seq++
	user.ID = fmt.Sprintf("u%d", f.seq)
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProjectRepo struct {
	seq      int
	projects map[string]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*domain.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	f.seq++
	project.ID = fmt.Sprintf("p%d", f.seq)
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	if project, ok := f.projects[id]; ok {
		copied := *project
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProjectRepo) GetByName(_ context.Context, name string) (*domain.Project, error) {
	for _, project := range f.projects {
		if project.Name == name {
			copied := *project
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	result := make([]domain.Project, 0, len(f.projects))
	for i := 1; i <= f.seq; i++ {
		if project, ok := f.projects[fmt.Sprintf("p%d", i)]; ok {
			result = append(result, *project)
		}
	}
	return result, nil
}

func (f *fakeProjectRepo) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	project.Status = status
	copied := *project
	return &copied, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.projects, id)
	return nil
}

type fakeTaskRepo struct {
	seq      int
	tasks    map[string]*domain.Task
	users    *fakeUserRepo
	projects *fakeProjectRepo
}

func newFakeTaskRepo(users *fakeUserRepo, projects *fakeProjectRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task), users: users, projects: projects}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	f.seq++
	task.ID = fmt.Sprintf("t%d", f.seq)
	copied := *task
	copied.Assignee = nil
	copied.Project = nil
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if task, ok := f.tasks[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	var result []domain.Task
	for i := 1; i <= f.seq; i++ {
		task, ok := f.tasks[fmt.Sprintf("t%d", i)]
		if !ok || task.ProjectID != projectID {
			continue
		}
		copied := *task
		if assignee, err := f.users.GetByID(ctx, task.UserID); err == nil {
			copied.Assignee = assignee
		}
		result = append(result, copied)
	}
	return result, nil
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	var result []domain.Task
	for i := 1; i <= f.seq; i++ {
		task, ok := f.tasks[fmt.Sprintf("t%d", i)]
		if !ok || task.UserID != userID {
			continue
		}
		copied := *task
		if project, err := f.projects.GetByID(ctx, task.ProjectID); err == nil {
			copied.Project = project
		}
		result = append(result, copied)
	}
	return result, nil
}

func (f *fakeTaskRepo) CountByProjectStatus(_ context.Context, projectID string) (map[domain.Status]int, error) {
	counts := make(map[domain.Status]int)
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			counts[task.Status]++
		}
	}
	return counts, nil
}

func (f *fakeTaskRepo) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	task.Status = status
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tasks, id)
	return nil
}
