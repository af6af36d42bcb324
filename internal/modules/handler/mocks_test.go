package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/timeasy-io/timeasy/internal/middleware"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/service"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) project(args mock.Arguments) (*model.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) projects(args mock.Arguments) ([]*model.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectService) Add(ctx context.Context, p *model.Project) (uuid.UUID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	return m.project(m.Called(ctx, p))
}

func (m *MockProjectService) Delete(ctx context.Context, p *model.Project) (*model.Project, error) {
	return m.project(m.Called(ctx, p))
}

func (m *MockProjectService) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return m.project(m.Called(ctx, id))
}

func (m *MockProjectService) ListAll(ctx context.Context) ([]*model.Project, error) {
	return m.projects(m.Called(ctx))
}

func (m *MockProjectService) ListAllOfUser(ctx context.Context, userID string) ([]*model.Project, error) {
	return m.projects(m.Called(ctx, userID))
}

func (m *MockProjectService) FindVisible(ctx context.Context, id uuid.UUID, who model.Identity) (*model.Project, error) {
	return m.project(m.Called(ctx, id, who))
}

func (m *MockProjectService) UpdateAs(ctx context.Context, p *model.Project, who model.Identity) (*model.Project, error) {
	return m.project(m.Called(ctx, p, who))
}

func (m *MockProjectService) DeleteAs(ctx context.Context, id uuid.UUID, who model.Identity) (*model.Project, error) {
	return m.project(m.Called(ctx, id, who))
}

func (m *MockProjectService) ListVisible(ctx context.Context, who model.Identity) ([]*model.Project, error) {
	return m.projects(m.Called(ctx, who))
}

func (m *MockProjectService) ListChangedSince(ctx context.Context, userID string, since time.Time) ([]*model.Project, error) {
	return m.projects(m.Called(ctx, userID, since))
}

// MockTimeEntryService is a mock implementation of TimeEntryService
type MockTimeEntryService struct {
	mock.Mock
}

func (m *MockTimeEntryService) entry(args mock.Arguments) (*model.TimeEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) entries(args mock.Arguments) ([]*model.TimeEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) Add(ctx context.Context, e *model.TimeEntry) (uuid.UUID, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTimeEntryService) Update(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, e))
}

func (m *MockTimeEntryService) Delete(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, e))
}

func (m *MockTimeEntryService) FindByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, id))
}

func (m *MockTimeEntryService) ListAll(ctx context.Context) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx))
}

func (m *MockTimeEntryService) ListAllOfUser(ctx context.Context, userID string) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, userID))
}

func (m *MockTimeEntryService) ListAllOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, projectID))
}

func (m *MockTimeEntryService) ListAllOfUserAndProject(ctx context.Context, userID string, projectID uuid.UUID) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, userID, projectID))
}

func (m *MockTimeEntryService) FindVisible(ctx context.Context, id uuid.UUID, who model.Identity) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, id, who))
}

func (m *MockTimeEntryService) UpdateAs(ctx context.Context, e *model.TimeEntry, who model.Identity) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, e, who))
}

func (m *MockTimeEntryService) DeleteAs(ctx context.Context, id uuid.UUID, who model.Identity) (*model.TimeEntry, error) {
	return m.entry(m.Called(ctx, id, who))
}

func (m *MockTimeEntryService) ListVisible(ctx context.Context, who model.Identity) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, who))
}

func (m *MockTimeEntryService) ListVisibleOfProject(ctx context.Context, projectID uuid.UUID, who model.Identity) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, projectID, who))
}

func (m *MockTimeEntryService) ListChangedSince(ctx context.Context, userID string, since time.Time) ([]*model.TimeEntry, error) {
	return m.entries(m.Called(ctx, userID, since))
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportTimeEntries(ctx context.Context, who model.Identity, projectID *uuid.UUID) (*service.ExportOutput, error) {
	args := m.Called(ctx, who, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}

var (
	testUser  = model.Identity{UserID: "u1"}
	testAdmin = model.Identity{UserID: "root", IsAdmin: true}
)

// setupRouter returns a test engine that authenticates every request as who.
func setupRouter(who *model.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if who != nil {
			middleware.SetIdentity(c, *who)
		}
		c.Next()
	})
	return r
}
