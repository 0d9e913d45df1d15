package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campusday/orientation-api/internal/api/handler/v1/response"
	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/pkg/jwthelper"
	"github.com/campusday/orientation-api/internal/service"
)

const ctxKeyUser = "currentUser"

// UserFinder resolves a token subject to the current user record.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
	users      UserFinder
}

func NewAuthenticator(signingKey string, users UserFinder) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		users:      users,
	}
}

// VerifyJWT authenticates the bearer token and re-fetches the subject
// from the store on every request. The token is trusted only for the
// subject id: role, brigade and the active flag always come from the
// fresh record, so deactivating a user locks them out on their very
// next call rather than at token expiry.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			rejectAuth(ctx, "missing_token")
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, raw)
		if err != nil {
			rejectAuth(ctx, "invalid_token")
			return
		}

		user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				rejectAuth(ctx, "unknown_subject")
				return
			}

			zap.L().Error("failed to resolve token subject", zap.Error(err))
			response.RenderErr(ctx, response.ErrUnauthenticated())
			return
		}

		if !user.Active {
			rejectAuth(ctx, "deactivated_subject")
			return
		}

		ctx.Set(ctxKeyUser, user)
		ctx.Next()
	}
}

// RequireRoles rejects authenticated principals whose role is outside
// the allowed set. It must run after VerifyJWT.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			rejectAuth(ctx, "missing_principal")
			return
		}

		if !user.Role.In(allowed...) {
			zap.L().Warn("authorization rejected",
				zap.Uint("user_id", user.ID),
				zap.String("role", string(user.Role)),
				zap.String("ip", ctx.ClientIP()),
			)
			response.RenderErr(ctx, response.ErrPermissionDenied())
			return
		}

		ctx.Next()
	}
}

// CurrentUser returns the principal placed in the context by VerifyJWT.
func CurrentUser(ctx *gin.Context) (domain.User, bool) {
	v, exists := ctx.Get(ctxKeyUser)
	if !exists {
		return domain.User{}, false
	}

	user, ok := v.(domain.User)

	return user, ok
}

// rejectAuth logs the reason class and the caller IP, never the token,
// then renders the uniform unauthenticated response.
func rejectAuth(ctx *gin.Context, reason string) {
	zap.L().Warn("authentication rejected",
		zap.String("reason", reason),
		zap.String("ip", ctx.ClientIP()),
	)
	response.RenderErr(ctx, response.ErrUnauthenticated())
}
