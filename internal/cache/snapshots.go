package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/events"
)

const (
	projectListKey     = "taskboard:projects"
	projectTasksKey    = "taskboard:project-tasks:"
	defaultSnapshotTTL = 30 * time.Second
)

// ErrMiss is returned when no snapshot is cached for the requested key.
var ErrMiss = errors.New("cache miss")

// Snapshots caches the read-heavy dashboard queries (project list and
// per-project task lists) in Redis. Snapshots are dropped on every mutation
// event, so a stale entry lives at most one TTL.
type Snapshots struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshots builds the cache. A nil client disables caching: every read
// misses and every write is a no-op.
func NewSnapshots(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Snapshots {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &Snapshots{client: client, ttl: ttl, logger: logger}
}

// GetProjects returns the cached project list.
func (s *Snapshots) GetProjects(ctx context.Context) ([]domain.Project, error) {
	if s == nil || s.client == nil {
		return nil, ErrMiss
	}
	raw, err := s.client.Get(ctx, projectListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, err
	}
	var projects []domain.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, ErrMiss
	}
	return projects, nil
}

// SetProjects stores the project list snapshot.
func (s *Snapshots) SetProjects(ctx context.Context, projects []domain.Project) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(projects)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, projectListKey, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("snapshot set failed", zap.Error(err))
	}
}

// GetProjectTasks returns the cached task list for a project.
func (s *Snapshots) GetProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	if s == nil || s.client == nil {
		return nil, ErrMiss
	}
	raw, err := s.client.Get(ctx, projectTasksKey+projectID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, err
	}
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, ErrMiss
	}
	return tasks, nil
}

// SetProjectTasks stores a per-project task snapshot.
func (s *Snapshots) SetProjectTasks(ctx context.Context, projectID string, tasks []domain.Task) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, projectTasksKey+projectID, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("snapshot set failed", zap.Error(err))
	}
}

// Invalidate drops the project list snapshot and, when projectID is set, the
// matching task snapshot.
func (s *Snapshots) Invalidate(ctx context.Context, projectID string) {
	if s == nil || s.client == nil {
		return
	}
	keys := []string{projectListKey}
	if projectID != "" {
		keys = append(keys, projectTasksKey+projectID)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("snapshot invalidation failed", zap.Error(err))
	}
}

// RegisterInvalidation subscribes the cache to every mutation event.
func (s *Snapshots) RegisterInvalidation(dispatcher events.Dispatcher) {
	if s == nil || dispatcher == nil {
		return
	}
	for _, eventType := range events.MutationEventTypes() {
		dispatcher.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			s.Invalidate(ctx, event.ProjectID)
			return nil
		})
	}
}
