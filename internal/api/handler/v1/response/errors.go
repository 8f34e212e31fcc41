package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
	}
}

// RenderErr logs the error with the request ID and writes the JSON
// body. Internal errors are logged at error level with the wrapped
// cause; the client only sees a generic message.
func RenderErr(ctx *gin.Context, err *Err) {
	zap.L().Error(err.Msg,
		zap.Int("status_code", err.StatusCode),
		zap.String("request_id", requestid.Get(ctx)),
		zap.String("path", ctx.Request.URL.Path),
	)

	ctx.JSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error())
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials")
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, "permission denied")
}

func ErrNotFound(resource, key string, value any) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v (%v=%v) is not found", resource, key, value))
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err.Error())
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return NewErr(http.StatusInternalServerError, "internal server error")
}
