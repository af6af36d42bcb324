package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/repo"
)

type ProjectService interface {
	Add(ctx context.Context, p *model.Project) (uuid.UUID, error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, p *model.Project) (*model.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListAll(ctx context.Context) ([]*model.Project, error)
	ListAllOfUser(ctx context.Context, userID string) ([]*model.Project, error)

	FindVisible(ctx context.Context, id uuid.UUID, who model.Identity) (*model.Project, error)
	UpdateAs(ctx context.Context, p *model.Project, who model.Identity) (*model.Project, error)
	DeleteAs(ctx context.Context, id uuid.UUID, who model.Identity) (*model.Project, error)
	ListVisible(ctx context.Context, who model.Identity) ([]*model.Project, error)
	ListChangedSince(ctx context.Context, userID string, since time.Time) ([]*model.Project, error)
}

type projectService struct {
	*lifecycle[model.Project, *model.Project]
}

func NewProjectService(r repo.ProjectRepo, opts ...Option) ProjectService {
	return &projectService{lifecycle: newLifecycle[model.Project](r, opts)}
}
