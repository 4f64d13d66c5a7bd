package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spec-kit/taskboard/internal/api/dto"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// Client is a thin HTTP client for the taskboard API. After a successful
// Login or Register, the issued bearer token is attached to every request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// Login authenticates and stores the session token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.SessionResponse, error) {
	var session dto.SessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Auth.Token
	return &session, nil
}

// Register creates an account and stores the session token.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*dto.SessionResponse, error) {
	var session dto.SessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Auth.Token
	return &session, nil
}

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	var projects []dto.ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, name string) (*dto.ProjectResponse, error) {
	var project dto.ProjectResponse
	if err := c.do(ctx, http.MethodPost, "/projects", dto.CreateProjectRequest{Name: name}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProjectStatus sets a project's status.
func (c *Client) UpdateProjectStatus(ctx context.Context, id, status string) (*dto.ProjectResponse, error) {
	var project dto.ProjectResponse
	path := "/projects/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, dto.UpdateProjectRequest{Status: status}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// ManagerOverview fetches the read-only manager dashboard rows.
func (c *Client) ManagerOverview(ctx context.Context) ([]dto.ProjectOverviewResponse, error) {
	var overviews []dto.ProjectOverviewResponse
	if err := c.do(ctx, http.MethodGet, "/projects/manager-view", nil, &overviews); err != nil {
		return nil, err
	}
	return overviews, nil
}

// CreateTask creates and assigns a task by project name and user email.
func (c *Client) CreateTask(ctx context.Context, title, status, projectName, userEmail string) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	err := c.do(ctx, http.MethodPost, "/tasks", dto.CreateTaskRequest{
		Title:       title,
		Status:      status,
		ProjectName: projectName,
		UserEmail:   userEmail,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasksByProject fetches a project's tasks with assignees joined in.
func (c *Client) ListTasksByProject(ctx context.Context, projectID string) ([]dto.TaskResponse, error) {
	var tasks []dto.TaskResponse
	path := "/tasks?projectId=" + url.QueryEscape(projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListMyTasks fetches the caller's tasks with projects joined in.
func (c *Client) ListMyTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	var tasks []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/user", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus sets a task's status.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	path := "/tasks/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, dto.UpdateTaskRequest{Status: status}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(envelope.Data, out)
}

// decodeAPIError maps the server's error envelope back onto the DomainError
// taxonomy so callers can branch on codes.
func decodeAPIError(status int, raw []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Code == "" {
		return apperrors.NewDomainError("INTERNAL_ERROR", fmt.Sprintf("unexpected response status %d", status), status, nil)
	}
	return apperrors.NewDomainError(envelope.Error.Code, envelope.Error.Message, status, envelope.Error.Details)
}
