package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusday/orientation-api/internal/api/middleware"
	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/pkg/jwthelper"
	"github.com/campusday/orientation-api/internal/service"
)

const testSigningKey = "test-signing-key"

type fakeUserFinder struct {
	users map[uint]domain.User
}

func (f *fakeUserFinder) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}

	return user, nil
}

func newTestRouter(users *fakeUserFinder, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := middleware.NewAuthenticator(testSigningKey, users)
	handlers := []gin.HandlerFunc{auth.VerifyJWT()}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RequireRoles(roles...))
	}
	handlers = append(handlers, func(ctx *gin.Context) {
		user, ok := middleware.CurrentUser(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})

	router.GET("/protected", handlers...)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestVerifyJWT(t *testing.T) {
	brigade := uint(1)
	finder := &fakeUserFinder{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleStudent, BrigadeID: &brigade, Active: true},
	}}
	router := newTestRouter(finder)

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, "test")
	require.NoError(t, err)

	t.Run("valid token for active user passes", func(t *testing.T) {
		w := doRequest(t, router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		w := doRequest(t, router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := doRequest(t, router, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		forged, err := jwthelper.GenerateToken([]byte("other-key"), 1, "test")
		require.NoError(t, err)

		w := doRequest(t, router, forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown subject is rejected", func(t *testing.T) {
		orphan, err := jwthelper.GenerateToken([]byte(testSigningKey), 999, "test")
		require.NoError(t, err)

		w := doRequest(t, router, orphan)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivation takes effect on the next call", func(t *testing.T) {
		w := doRequest(t, router, token)
		require.Equal(t, http.StatusOK, w.Code)

		user := finder.users[1]
		user.Active = false
		finder.users[1] = user

		w = doRequest(t, router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		user.Active = true
		finder.users[1] = user
	})
}

func TestRequireRoles(t *testing.T) {
	brigade := uint(1)
	finder := &fakeUserFinder{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleStudent, BrigadeID: &brigade, Active: true},
		2: {ID: 2, Role: domain.RoleAdmin, Active: true},
	}}
	router := newTestRouter(finder, domain.RoleAdmin)

	studentToken, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, "test")
	require.NoError(t, err)
	adminToken, err := jwthelper.GenerateToken([]byte(testSigningKey), 2, "test")
	require.NoError(t, err)

	t.Run("admin passes the admin gate", func(t *testing.T) {
		w := doRequest(t, router, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student is forbidden on the admin gate", func(t *testing.T) {
		w := doRequest(t, router, studentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
