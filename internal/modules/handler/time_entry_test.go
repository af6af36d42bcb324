package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/service"
)

func TestTimeEntryHandler_CreateTimeEntry(t *testing.T) {
	projectID := uuid.New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockTimeEntryService)
		expectedStatus int
	}{
		{
			name: "with project",
			body: CreateTimeEntryReq{TimeEntryReq: TimeEntryReq{Description: "review", StartTime: &start, EndTime: &end, ProjectID: &projectID}},
			setup: func(svc *MockTimeEntryService) {
				svc.On("Add", mock.Anything, mock.MatchedBy(func(e *model.TimeEntry) bool {
					return e.OwnerUserID == "u1" && e.ProjectID != nil && *e.ProjectID == projectID && e.EndTime.Equal(end)
				})).Return(uuid.New(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "open entry without project",
			body: map[string]interface{}{"description": "running", "start_time": start},
			setup: func(svc *MockTimeEntryService) {
				svc.On("Add", mock.Anything, mock.MatchedBy(func(e *model.TimeEntry) bool {
					return e.ProjectID == nil && e.EndTime == nil
				})).Return(uuid.New(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "unknown project",
			body: CreateTimeEntryReq{TimeEntryReq: TimeEntryReq{ProjectID: &projectID}},
			setup: func(svc *MockTimeEntryService) {
				svc.On("Add", mock.Anything, mock.Anything).
					Return(uuid.Nil, &model.InvalidReferenceError{Kind: model.KindProject, ID: projectID})
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "end before start",
			body:           CreateTimeEntryReq{TimeEntryReq: TimeEntryReq{StartTime: &end, EndTime: &start}},
			setup:          func(*MockTimeEntryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed project id",
			body:           map[string]interface{}{"project_id": "nope"},
			setup:          func(*MockTimeEntryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTimeEntryService{}
			tt.setup(mockService)

			handler := NewTimeEntryHandler(mockService, &MockExportService{})
			router := setupRouter(&testUser)
			router.POST("/time_entry", handler.CreateTimeEntry)

			body, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/time_entry", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTimeEntryHandler_ListTimeEntries(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		query          string
		setup          func(*MockTimeEntryService)
		expectedStatus int
	}{
		{
			name:  "all visible",
			query: "",
			setup: func(svc *MockTimeEntryService) {
				svc.On("ListVisible", mock.Anything, testUser).Return([]*model.TimeEntry{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "of project",
			query: "?project_id=" + projectID.String(),
			setup: func(svc *MockTimeEntryService) {
				svc.On("ListVisibleOfProject", mock.Anything, projectID, testUser).Return([]*model.TimeEntry{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad project id",
			query:          "?project_id=123",
			setup:          func(*MockTimeEntryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "braced project id",
			query:          "?project_id=" + url.QueryEscape("{"+projectID.String()+"}"),
			setup:          func(*MockTimeEntryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTimeEntryService{}
			tt.setup(mockService)

			handler := NewTimeEntryHandler(mockService, &MockExportService{})
			router := setupRouter(&testUser)
			router.GET("/time_entry", handler.ListTimeEntries)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/time_entry"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTimeEntryHandler_ByID(t *testing.T) {
	id := uuid.New()
	missing := &model.NotFoundError{Kind: model.KindTimeEntry, ID: id}

	svc := &MockTimeEntryService{}
	svc.On("FindVisible", mock.Anything, id, testUser).Return(nil, missing)
	svc.On("UpdateAs", mock.Anything, mock.MatchedBy(func(e *model.TimeEntry) bool {
		return e.ID == id && e.Description == "fixed"
	}), testUser).Return(&model.TimeEntry{ID: id, Description: "fixed"}, nil)
	svc.On("DeleteAs", mock.Anything, id, testUser).Return(&model.TimeEntry{ID: id, Lifecycle: model.Lifecycle{Deleted: true}}, nil)
	svc.On("ListChangedSince", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return([]*model.TimeEntry{}, nil)

	handler := NewTimeEntryHandler(svc, &MockExportService{})
	router := setupRouter(&testUser)
	router.GET("/time_entry/changes", handler.ListTimeEntryChanges)
	router.GET("/time_entry/:time_entry_id", handler.GetTimeEntry)
	router.PUT("/time_entry/:time_entry_id", handler.UpdateTimeEntry)
	router.DELETE("/time_entry/:time_entry_id", handler.DeleteTimeEntry)

	body, _ := sonic.Marshal(TimeEntryReq{Description: "fixed"})
	tests := []struct {
		method         string
		path           string
		body           []byte
		expectedStatus int
	}{
		{"GET", "/time_entry/" + id.String(), nil, http.StatusNotFound},
		{"PUT", "/time_entry/" + id.String(), body, http.StatusOK},
		{"DELETE", "/time_entry/" + id.String(), nil, http.StatusOK},
		{"GET", "/time_entry/changes?since=2024-01-01T00:00:00.5Z", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBuffer(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
	svc.AssertExpectations(t)
}

func TestTimeEntryHandler_ExportTimeEntries(t *testing.T) {
	projectID := uuid.New()
	out := &service.ExportOutput{Key: "exports/u1/k.json", URL: "https://s3/k", Count: 2}

	tests := []struct {
		name           string
		body           []byte
		setup          func(*MockExportService)
		expectedStatus int
	}{
		{
			name: "everything",
			body: nil,
			setup: func(svc *MockExportService) {
				svc.On("ExportTimeEntries", mock.Anything, testUser, (*uuid.UUID)(nil)).Return(out, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "one project",
			body: []byte(`{"project_id":"` + projectID.String() + `"}`),
			setup: func(svc *MockExportService) {
				svc.On("ExportTimeEntries", mock.Anything, testUser, &projectID).Return(out, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "storage not configured",
			body: nil,
			setup: func(svc *MockExportService) {
				svc.On("ExportTimeEntries", mock.Anything, testUser, (*uuid.UUID)(nil)).
					Return(nil, &model.StoreError{Op: "export", Err: service.ErrExportUnavailable})
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			export := &MockExportService{}
			tt.setup(export)

			handler := NewTimeEntryHandler(&MockTimeEntryService{}, export)
			router := setupRouter(&testUser)
			router.POST("/time_entry/export", handler.ExportTimeEntries)

			req := httptest.NewRequest("POST", "/time_entry/export", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			export.AssertExpectations(t)
		})
	}
}
