package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/db"
	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import projects and tasks from another database",
		Long: `Import all projects and tasks from another ganttline database into the
current one. Imported records get new IDs; deleted tasks stay deleted.

Example:
  ganttline import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			res, err := importAll(cmd.Context(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			a.logger.Info("import finished", "source", sourcePath, "projects", res.Projects, "tasks", res.Tasks)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects and %d tasks from %s\n", res.Projects, res.Tasks, sourcePath)
			return nil
		},
	}

	return cmd
}

type importResult struct {
	Projects int
	Tasks    int
}

func importAll(ctx context.Context, dest task.Repository, sourcePath string) (importResult, error) {
	var res importResult

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return res, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	projects, err := sourceRepo.ListProjects(ctx)
	if err != nil {
		return res, fmt.Errorf("listing source projects: %w", err)
	}

	idMap := make(map[string]string, len(projects))
	for _, p := range projects {
		copied := *p
		copied.ID = uuid.NewString()
		if err := dest.CreateProject(ctx, &copied); err != nil {
			return res, fmt.Errorf("importing project %q: %w", p.Name, err)
		}
		idMap[p.ID] = copied.ID
		res.Projects++
	}

	tasks, err := sourceRepo.ListTasks(ctx, task.TaskFilter{IncludeDeleted: true})
	if err != nil {
		return res, fmt.Errorf("listing source tasks: %w", err)
	}

	for _, t := range tasks {
		copied := *t
		copied.ID = uuid.NewString()
		if t.ProjectID != "" {
			newID, ok := idMap[t.ProjectID]
			if !ok {
				return res, fmt.Errorf("task %q references unknown project %s", t.Name, t.ProjectID)
			}
			copied.ProjectID = newID
		}
		if err := dest.CreateTask(ctx, &copied); err != nil {
			return res, fmt.Errorf("importing task %q: %w", t.Name, err)
		}
		res.Tasks++
	}

	return res, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
