package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/serializer"
	"github.com/timeasy-io/timeasy/internal/modules/service"
)

type ProjectHandler struct {
	svc     service.ProjectService
	entries service.TimeEntryService
}

func NewProjectHandler(s service.ProjectService, entries service.TimeEntryService) *ProjectHandler {
	return &ProjectHandler{
		svc:     s,
		entries: entries,
	}
}

type CreateProjectReq struct {
	ID          *uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Description string     `json:"description" binding:"required,max=4096" example:"Website relaunch"`
}

type UpdateProjectReq struct {
	Description string `json:"description" binding:"required,max=4096" example:"Website relaunch (phase 2)"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project owned by the caller. A client chosen id is accepted once.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Failure		409	{object}	serializer.Response
//	@Router			/project [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	project := model.Project{
		Description: req.Description,
		Lifecycle:   model.Lifecycle{OwnerUserID: who.UserID},
	}
	if req.ID != nil {
		project.ID = *req.ID
	}
	if _, err := h.svc.Add(c.Request.Context(), &project); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	Admins see every live project, other callers their own.
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/project [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	items, err := h.svc.ListVisible(c.Request.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// ListProjectChanges godoc
//
//	@Summary		List changed projects
//	@Description	Projects of the caller updated at or after since, deleted ones included.
//	@Tags			project
//	@Produce		json
//	@Param			since	query	string	true	"RFC 3339 timestamp"	example("2024-01-01T00:00:00Z")
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/project/changes [get]
func (h *ProjectHandler) ListProjectChanges(c *gin.Context) {
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

// GetProject godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}
	project, err := h.svc.FindVisible(c.Request.Context(), id, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Replace the description. Owner and creation time are kept.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string						true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}

	saved, err := h.svc.UpdateAs(c.Request.Context(), &model.Project{ID: id, Description: req.Description}, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: saved})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Soft delete. The project stays visible to the change feed.
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
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

// ListProjectTimeEntries godoc
//
//	@Summary		List time entries of a project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TimeEntry}
//	@Router			/project/{project_id}/time_entry [get]
func (h *ProjectHandler) ListProjectTimeEntries(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	who, ok := caller(c)
	if !ok {
		return
	}
	items, err := h.entries.ListVisibleOfProject(c.Request.Context(), id, who)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
