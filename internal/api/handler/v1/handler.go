package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/campusday/orientation-api/internal/api/handler/v1/response"
	"github.com/campusday/orientation-api/internal/api/middleware"
	"github.com/campusday/orientation-api/internal/domain"
)

// currentUser pulls the principal resolved by the authenticator. A
// missing principal on a protected route is a wiring bug, rendered as
// the uniform unauthenticated rejection.
func currentUser(ctx *gin.Context) (domain.User, *response.Err) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return domain.User{}, response.ErrUnauthenticated()
	}

	return user, nil
}
