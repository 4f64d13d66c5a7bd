package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskboard/internal/api/dto"
	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/service"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// TasksHandler manages task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.ProjectName == "" || req.UserEmail == "" {
		return apperrors.NewValidationError("title, projectName, userEmail required", nil)
	}

	task, err := h.service.Create(c.Context(), principal.User, service.TaskCreateInput{
		Title:       req.Title,
		Status:      domain.Status(req.Status),
		ProjectName: req.ProjectName,
		UserEmail:   req.UserEmail,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TaskFromDomain(task)})
}

// ListByProject GET /tasks?projectId=.
func (h *TasksHandler) ListByProject(c *fiber.Ctx) error {
	projectID := c.Query("projectId")
	if projectID == "" {
		return apperrors.NewValidationError("projectId query parameter required", nil)
	}
	tasks, err := h.service.ListByProject(c.Context(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TasksFromDomain(tasks)})
}

// ListForCurrentUser GET /tasks/user.
func (h *TasksHandler) ListForCurrentUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tasks, err := h.service.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TasksFromDomain(tasks)})
}

// UpdateStatus PUT /tasks/:id.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	task, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), domain.Status(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TaskFromDomain(task)})
}

// Delete DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
