package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/spec-kit/taskboard/internal/api/dto"
	"github.com/spec-kit/taskboard/internal/client"
	"github.com/spec-kit/taskboard/internal/config"
	"github.com/spec-kit/taskboard/internal/dashboard"
	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Dashboard.Email == "" || cfg.Dashboard.Password == "" {
		logger.Fatal("DASHBOARD_EMAIL and DASHBOARD_PASSWORD are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := client.New(cfg.Dashboard.APIBaseURL)
	session, err := api.Login(ctx, cfg.Dashboard.Email, cfg.Dashboard.Password)
	if err != nil {
		logger.Fatal("login failed", zap.Error(err))
	}
	logger.Info("logged in",
		zap.String("user", session.User.Name),
		zap.String("role", string(session.User.Role)),
	)

	refresher := dashboard.NewRefresher(cfg.Dashboard.RefreshInterval(), logger)

	switch session.User.Role {
	case domain.RoleAdmin:
		view := dashboard.NewAdminView(api, cfg.Dashboard.PageSize)
		refresher.Start(ctx, func(ctx context.Context) error {
			if err := view.Refresh(ctx); err != nil {
				return err
			}
			renderAdmin(view)
			return nil
		})
	case domain.RoleManager:
		view := dashboard.NewManagerView(api, cfg.Dashboard.PageSize)
		refresher.Start(ctx, func(ctx context.Context) error {
			if err := view.Refresh(ctx); err != nil {
				return err
			}
			renderManager(view)
			return nil
		})
	case domain.RoleUser:
		view := dashboard.NewUserView(api, cfg.Dashboard.PageSize)
		refresher.Start(ctx, func(ctx context.Context) error {
			if err := view.Refresh(ctx); err != nil {
				return err
			}
			renderUser(session.User.Name, view)
			return nil
		})
	default:
		logger.Fatal("unknown role", zap.String("role", string(session.User.Role)))
	}

	waitForShutdown(logger)
	refresher.Stop()
}

func renderAdmin(view *dashboard.AdminView) {
	projects, totalPages := view.VisibleProjects()
	fmt.Printf("\n== Admin Dashboard (page %d/%d) ==\n", view.State.Page, max(totalPages, 1))
	for _, project := range projects {
		fmt.Printf("\n%s [%s]\n", project.Name, project.Status)
		renderTaskTable(view.Tasks(project.ID))
	}
}

func renderManager(view *dashboard.ManagerView) {
	projects, totalPages := view.VisibleProjects()
	fmt.Printf("\n== Manager Dashboard (page %d/%d) ==\n", view.State.Page, max(totalPages, 1))
	for _, row := range view.Overview() {
		fmt.Printf("%s [%s] tasks=%d todo=%d in_progress=%d done=%d\n",
			row.Project.Name,
			row.Project.Status,
			row.TotalTasks,
			row.TaskCounts[domain.StatusTodo],
			row.TaskCounts[domain.StatusInProgress],
			row.TaskCounts[domain.StatusDone],
		)
	}
	for _, project := range projects {
		fmt.Printf("\n%s [%s]\n", project.Name, project.Status)
		renderTaskTable(view.Tasks(project.ID))
	}
}

func renderUser(name string, view *dashboard.UserView) {
	fmt.Printf("\n== %s's Dashboard ==\n", name)
	for _, group := range view.Groups() {
		fmt.Printf("\n%s\n", group.ProjectName)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTask\tStatus\tStaged")
		for i, item := range group.Tasks {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, item.Task.Title, item.Task.Status, item.Staged)
		}
		w.Flush()
	}
}

func renderTaskTable(tasks []dto.TaskResponse) {
	if len(tasks) == 0 {
		fmt.Println("  (no tasks)")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTask\tAssigned To\tStatus")
	for i, task := range tasks {
		assignee := ""
		if task.Assignee != nil {
			assignee = task.Assignee.Email
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, task.Title, assignee, task.Status)
	}
	w.Flush()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
