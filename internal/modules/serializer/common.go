package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

func NotFoundErr(msg string, err error) Response {
	if msg == "" {
		msg = "not found"
	}
	return Err(http.StatusNotFound, msg, err)
}

func ConflictErr(msg string, err error) Response {
	if msg == "" {
		msg = "already exists"
	}
	return Err(http.StatusConflict, msg, err)
}

func ReferenceErr(msg string, err error) Response {
	if msg == "" {
		msg = "invalid reference"
	}
	return Err(http.StatusUnprocessableEntity, msg, err)
}

func RateLimitErr() Response {
	return Err(http.StatusTooManyRequests, "too many requests", nil)
}

// FromError maps a lifecycle error to its HTTP status and response body.
func FromError(err error) (int, Response) {
	var (
		exists  *model.AlreadyExistsError
		missing *model.NotFoundError
		ref     *model.InvalidReferenceError
		ident   *model.IdentityError
	)
	switch {
	case errors.As(err, &exists):
		return http.StatusConflict, ConflictErr(err.Error(), err)
	case errors.As(err, &missing):
		return http.StatusNotFound, NotFoundErr(err.Error(), err)
	case errors.As(err, &ref):
		return http.StatusUnprocessableEntity, ReferenceErr(err.Error(), err)
	case errors.As(err, &ident):
		return http.StatusUnauthorized, AuthErr(err.Error())
	default:
		return http.StatusInternalServerError, DBErr("", err)
	}
}
