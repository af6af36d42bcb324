package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/repo"
)

type TimeEntryService interface {
	Add(ctx context.Context, e *model.TimeEntry) (uuid.UUID, error)
	Update(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	Delete(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error)
	ListAll(ctx context.Context) ([]*model.TimeEntry, error)
	ListAllOfUser(ctx context.Context, userID string) ([]*model.TimeEntry, error)
	ListAllOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.TimeEntry, error)
	ListAllOfUserAndProject(ctx context.Context, userID string, projectID uuid.UUID) ([]*model.TimeEntry, error)

	FindVisible(ctx context.Context, id uuid.UUID, who model.Identity) (*model.TimeEntry, error)
	UpdateAs(ctx context.Context, e *model.TimeEntry, who model.Identity) (*model.TimeEntry, error)
	DeleteAs(ctx context.Context, id uuid.UUID, who model.Identity) (*model.TimeEntry, error)
	ListVisible(ctx context.Context, who model.Identity) ([]*model.TimeEntry, error)
	ListVisibleOfProject(ctx context.Context, projectID uuid.UUID, who model.Identity) ([]*model.TimeEntry, error)
	ListChangedSince(ctx context.Context, userID string, since time.Time) ([]*model.TimeEntry, error)
}

type timeEntryService struct {
	*lifecycle[model.TimeEntry, *model.TimeEntry]
	projects repo.ProjectRepo
}

// NewTimeEntryService builds the time entry lifecycle. projects is consulted
// on every write that carries a project id.
func NewTimeEntryService(r repo.TimeEntryRepo, projects repo.ProjectRepo, opts ...Option) TimeEntryService {
	return &timeEntryService{
		lifecycle: newLifecycle[model.TimeEntry](r, opts),
		projects:  projects,
	}
}

func (s *timeEntryService) Add(ctx context.Context, e *model.TimeEntry) (uuid.UUID, error) {
	if err := s.checkProject(ctx, e, model.OpAdd); err != nil {
		return uuid.Nil, err
	}
	return s.lifecycle.Add(ctx, e)
}

func (s *timeEntryService) Update(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error) {
	if err := s.checkProject(ctx, e, model.OpUpdate); err != nil {
		return nil, err
	}
	return s.lifecycle.Update(ctx, e)
}

func (s *timeEntryService) Delete(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error) {
	if err := s.checkProject(ctx, e, model.OpDelete); err != nil {
		return nil, err
	}
	return s.lifecycle.Delete(ctx, e)
}

func (s *timeEntryService) UpdateAs(ctx context.Context, e *model.TimeEntry, who model.Identity) (*model.TimeEntry, error) {
	if err := s.checkProject(ctx, e, model.OpUpdate); err != nil {
		return nil, err
	}
	return s.lifecycle.UpdateAs(ctx, e, who)
}

func (s *timeEntryService) ListAllOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.TimeEntry, error) {
	return s.store.List(ctx, repo.Filter{}.Project(projectID).NotDeleted())
}

func (s *timeEntryService) ListAllOfUserAndProject(ctx context.Context, userID string, projectID uuid.UUID) ([]*model.TimeEntry, error) {
	return s.store.List(ctx, repo.Filter{}.Owner(userID).Project(projectID).NotDeleted())
}

func (s *timeEntryService) ListVisibleOfProject(ctx context.Context, projectID uuid.UUID, who model.Identity) ([]*model.TimeEntry, error) {
	if who.IsAdmin {
		return s.ListAllOfProject(ctx, projectID)
	}
	return s.ListAllOfUserAndProject(ctx, who.UserID, projectID)
}

// checkProject rejects entries pointing at a project id that was never stored.
// A nil project id is normalised to "no project".
func (s *timeEntryService) checkProject(ctx context.Context, e *model.TimeEntry, op string) error {
	if e.ProjectID != nil && *e.ProjectID == uuid.Nil {
		e.ProjectID = nil
	}
	if e.ProjectID == nil {
		return nil
	}
	ok, err := s.projects.ExistsByID(ctx, *e.ProjectID)
	if err == nil && !ok {
		err = &model.InvalidReferenceError{Kind: model.KindProject, ID: *e.ProjectID}
	}
	if err != nil {
		s.observe(op, err)
		return err
	}
	return nil
}
