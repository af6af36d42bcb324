package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/serializer"
	"github.com/timeasy-io/timeasy/internal/modules/service"
)

type TimeEntryHandler struct {
	svc    service.TimeEntryService
	export service.ExportService
}

func NewTimeEntryHandler(s service.TimeEntryService, export service.ExportService) *TimeEntryHandler {
	return &TimeEntryHandler{
		svc:    s,
		export: export,
	}
}

type TimeEntryReq struct {
	Description string     `json:"description" binding:"max=4096" example:"Code review"`
	StartTime   *time.Time `json:"start_time" example:"2024-01-01T09:00:00Z"`
	EndTime     *time.Time `json:"end_time" example:"2024-01-01T10:30:00Z"`
	ProjectID   *uuid.UUID `json:"project_id" swaggertype:"string" format:"uuid"`
}

type CreateTimeEntryReq struct {
	ID *uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	TimeEntryReq
}

func (r TimeEntryReq) validate(c *gin.Context) bool {
	if r.StartTime != nil && r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(errEndBeforeStart.Error(), errEndBeforeStart))
		return false
	}
	return true
}

func (r TimeEntryReq) entry(id uuid.UUID) model.TimeEntry {
	return model.TimeEntry{
		ID:          id,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		ProjectID:   r.ProjectID,
	}
}

type ListTimeEntriesReq struct {
	ProjectID string `form:"project_id" json:"project_id" binding:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

type ExportTimeEntriesReq struct {
	ProjectID *uuid.UUID `json:"project_id" swaggertype:"string" format:"uuid"`
}

// CreateTimeEntry godoc
//
//	@Summary		Create time entry
//	@Description	Create a time entry owned by the caller. project_id must name an existing project.
//	@Tags			time_entry
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTimeEntryReq	true	"CreateTimeEntry payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.TimeEntry}
//	@Failure		409	{object}	serializer.Response
//	@Failure		422	{object}	serializer.Response
//	@Router			/time_entry [post]
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	req := CreateTimeEntryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if !req.validate(c) {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	id := uuid.Nil
	if req.ID != nil {
		id = *req.ID
	}
	entry := req.entry(id)
	entry.OwnerUserID = who.UserID
	if _, err := h.svc.Add(c.Request.Context(), &entry); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: entry})
}

// ListTimeEntries godoc
//
//	@Summary		List time entries
//	@Description	Admins see every live entry, other callers their own. Optionally narrowed to one project.
//	@Tags			time_entry
//	@Produce		json
//	@Param			project_id	query	string	false	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TimeEntry}
//	@Router			/time_entry [get]
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	req := ListTimeEntriesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	var (
		items []*model.TimeEntry
		err   error
	)
	if req.ProjectID != "" {
		projectID, perr := uuid.Parse(req.ProjectID)
		if perr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project_id", perr))
			return
		}
		items, err = h.svc.ListVisibleOfProject(c.Request.Context(), projectID, who)
	} else {
		items, err = h.svc.ListVisible(c.Request.Context(), who)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// ListTimeEntryChanges godoc
//
//	@Summary		List changed time entries
//	@Description	Time entries of the caller updated at or after since, deleted ones included.
//	@Tags			time_entry
//	@Produce		json
//	@Param			since	query	string	true	"RFC 3339 timestamp"	example("2024-01-01T00:00:00Z")
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TimeEntry}
//	@Router			/time_entry/changes [get]
func (h *TimeEntryHandler) ListTimeEntryChanges(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	since, ok := changesSince(c)
	if !ok {
		return
	}
	items, err := h.svc.ListChangedSince(c.Request.Context(), who.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// GetTimeEntry godoc
//
//	@Summary		Get time entry
//	@Tags			time_entry
//	@Produce		json
//	@Param			time_entry_id	path	string	true	"Time entry ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TimeEntry}
//	@Failure		404	{object}	serializer.Response
//	@Router			/time_entry/{time_entry_id} [get]
func (h *TimeEntryHandler) GetTimeEntry(c *gin.Context) {
	id, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}
	entry, err := h.svc.FindVisible(c.Request.Context(), id, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: entry})
}

// UpdateTimeEntry godoc
//
//	@Summary		Update time entry
//	@Description	Replace description, times and project. Owner and creation time are kept.
//	@Tags			time_entry
//	@Accept			json
//	@Produce		json
//	@Param			time_entry_id	path	string					true	"Time entry ID"	Format(uuid)
//	@Param			payload			body	handler.TimeEntryReq	true	"UpdateTimeEntry payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TimeEntry}
//	@Failure		404	{object}	serializer.Response
//	@Failure		422	{object}	serializer.Response
//	@Router			/time_entry/{time_entry_id} [put]
func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	id, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}
	req := TimeEntryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if !req.validate(c) {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	entry := req.entry(id)
	saved, err := h.svc.UpdateAs(c.Request.Context(), &entry, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: saved})
}

// DeleteTimeEntry godoc
//
//	@Summary		Delete time entry
//	@Description	Soft delete. The entry stays visible to the change feed.
//	@Tags			time_entry
//	@Produce		json
//	@Param			time_entry_id	path	string	true	"Time entry ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TimeEntry}
//	@Failure		404	{object}	serializer.Response
//	@Router			/time_entry/{time_entry_id} [delete]
func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	id, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}
	saved, err := h.svc.DeleteAs(c.Request.Context(), id, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: saved})
}

// ExportTimeEntries godoc
//
//	@Summary		Export timesheet
//	@Description	Upload the caller's visible time entries as JSON and return a presigned download link.
//	@Tags			time_entry
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.ExportTimeEntriesReq	false	"Export payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.ExportOutput}
//	@Router			/time_entry/export [post]
func (h *TimeEntryHandler) ExportTimeEntries(c *gin.Context) {
	req := ExportTimeEntriesReq{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.export.ExportTimeEntries(c.Request.Context(), who, req.ProjectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}
