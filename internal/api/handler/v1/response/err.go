package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int `json:"-"` // HTTP status code.

	StatusText string `json:"status"`          // user-facing status message.
	ErrorText  string `json:"error,omitempty"` // application-level error message.
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.ErrorText, zap.String("ip", ctx.ClientIP()))
		// Internal detail never leaves the server.
		e.ErrorText = ""
	} else {
		zap.L().Warn("request rejected",
			zap.Int("status", e.StatusCode),
			zap.String("error", e.ErrorText),
			zap.String("ip", ctx.ClientIP()),
		)
	}

	ctx.AbortWithStatusJSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		StatusText: "Bad request.",
		ErrorText:  err.Error(),
	}
}

// ErrUnauthenticated is deliberately uniform: expired tokens, unknown
// subjects and deactivated accounts all render identically so callers
// cannot enumerate accounts or probe deactivation.
func ErrUnauthenticated() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		StatusText: "Authentication failed.",
	}
}

func ErrWrongCredentials() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		StatusText: "Authentication failed.",
		ErrorText:  "wrong email or password",
	}
}

func ErrPermissionDenied() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		StatusText: "Permission denied.",
	}
}

func ErrNotFound(what, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		StatusText: "Resource not found.",
		ErrorText:  fmt.Sprintf("%v with %v (%v) not found", what, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		StatusText: "Conflict.",
		ErrorText:  err.Error(),
	}
}

func ErrInvalidOperation(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		StatusText: "Invalid operation.",
		ErrorText:  err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		StatusText: "Internal server error.",
		ErrorText:  err.Error(),
	}
}
