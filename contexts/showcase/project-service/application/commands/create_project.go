package commands

import (
	"context"
	"log/slog"
	"strings"

	application "showcase/contexts/showcase/project-service/application"
	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
)

type CreateProjectCommand struct {
	Name        string
	Summary     string
	Description string
	TeamName    string
	TeamEmail   string
	RepoURL     string
	DemoURL     string
	CoverURL    string
}

type IntakeUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Create persists a new project in pending state. Moderation is the
// only writer of the approval fields afterwards.
func (uc IntakeUseCase) Create(ctx context.Context, cmd CreateProjectCommand) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	project := entities.Project{
		Name:        strings.TrimSpace(cmd.Name),
		Summary:     strings.TrimSpace(cmd.Summary),
		Description: strings.TrimSpace(cmd.Description),
		TeamName:    strings.TrimSpace(cmd.TeamName),
		TeamEmail:   strings.TrimSpace(cmd.TeamEmail),
		RepoURL:     strings.TrimSpace(cmd.RepoURL),
		DemoURL:     strings.TrimSpace(cmd.DemoURL),
	}
	if !project.ValidateCreate() {
		return entities.Project{}, domainerrors.ErrInvalidProjectInput
	}

	projectID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	now := uc.Clock.Now().UTC()
	project.ProjectID = projectID
	project.Status = entities.ApprovalStatusPending
	project.CreatedAt = now
	project.UpdatedAt = now

	showcase := entities.Showcase{
		ProjectID: projectID,
		CoverURL:  strings.TrimSpace(cmd.CoverURL),
		UpdatedAt: now,
	}
	if err := uc.Repository.CreateProject(ctx, project, showcase); err != nil {
		return entities.Project{}, err
	}

	logger.Info("project submitted",
		"event", "project_submitted",
		"module", "showcase/project-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"team", project.TeamName,
	)
	return project, nil
}
