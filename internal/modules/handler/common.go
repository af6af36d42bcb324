package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/timeasy-io/timeasy/internal/middleware"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/serializer"
)

type ChangesReq struct {
	Since string `form:"since" json:"since" binding:"required" example:"2024-01-01T00:00:00Z"`
}

func (r ChangesReq) parse() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.Since)
}

// caller returns the authenticated identity or answers 401.
func caller(c *gin.Context) (model.Identity, bool) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok || who.UserID == "" {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return model.Identity{}, false
	}
	return who, true
}

// pathID parses the uuid path parameter name or answers 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

// changesSince parses the since query parameter or answers 400.
func changesSince(c *gin.Context) (time.Time, bool) {
	req := ChangesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return time.Time{}, false
	}
	since, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("since must be an RFC 3339 timestamp", err))
		return time.Time{}, false
	}
	return since, true
}

func fail(c *gin.Context, err error) {
	status, resp := serializer.FromError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

var errEndBeforeStart = errors.New("end_time must not be before start_time")
