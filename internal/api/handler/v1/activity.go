package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusday/orientation-api/internal/api/handler/v1/request"
	"github.com/campusday/orientation-api/internal/api/handler/v1/response"
	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/service"
)

type ActivityService interface {
	GetActivity(ctx context.Context, id uint) (domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
}

type SubmissionChecker interface {
	HasSubmitted(ctx context.Context, studentID, activityID uint) (bool, error)
	ListStudentSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error)
}

type ActivityHandler struct {
	svc  ActivityService
	subs SubmissionChecker
	now  func() time.Time
}

func NewActivityHandler(svc ActivityService, subs SubmissionChecker) *ActivityHandler {
	return &ActivityHandler{
		svc:  svc,
		subs: subs,
		now:  time.Now,
	}
}

// HandleListActivities godoc
// @Summary      List the day's activities with phase info
// @Tags         activities
// @Produce      json
// @Success      200  {array}   response.ActivityResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleListActivities(ctx *gin.Context) {
	user, respErr := currentUser(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	activities, err := h.svc.ListActivities(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListActivities -> h.svc.ListActivities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	submitted := map[uint]bool{}
	if user.Role == domain.RoleStudent {
		subs, err := h.subs.ListStudentSubmissions(ctx.Request.Context(), user.ID)
		if err != nil {
			err = fmt.Errorf("v1.HandleListActivities -> h.subs.ListStudentSubmissions -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		for _, s := range subs {
			submitted[s.ActivityID] = true
		}
	}

	now := h.now()
	result := make([]response.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		result = append(result, response.ActivityResponse{
			Activity: a,
			Phase:    domain.ResolvePhase(now, a, submitted[a.ID]),
		})
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleGetActivity godoc
// @Summary      Get one activity with phase info
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "Activity ID"
// @Success      200  {object}  response.ActivityResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID} [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetActivity(ctx *gin.Context) {
	user, respErr := currentUser(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %w", err)))
		return
	}

	activity, err := h.svc.GetActivity(ctx.Request.Context(), uint(activityID))
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}

		err = fmt.Errorf("v1.HandleGetActivity -> h.svc.GetActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	hasSubmission := false
	if user.Role == domain.RoleStudent {
		hasSubmission, err = h.subs.HasSubmitted(ctx.Request.Context(), user.ID, activity.ID)
		if err != nil {
			err = fmt.Errorf("v1.HandleGetActivity -> h.subs.HasSubmitted -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	ctx.JSON(http.StatusOK, response.ActivityResponse{
		Activity: activity,
		Phase:    domain.ResolvePhase(h.now(), activity, hasSubmission),
	})
}

// HandleCreateActivity godoc
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request  body      request.ActivityRequest  true  "activity"
// @Success      201  {object}  domain.Activity
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleCreateActivity(ctx *gin.Context) {
	var req request.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	activity, err := req.ToDomain()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateActivity(ctx.Request.Context(), activity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContract) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateActivity -> h.svc.CreateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateActivity godoc
// @Summary      Edit an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activityID  path      int  true  "Activity ID"
// @Param        request  body      request.ActivityRequest  true  "activity"
// @Success      200  {object}  domain.Activity
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID} [put]
// @Security     BearerAuth
func (h *ActivityHandler) HandleUpdateActivity(ctx *gin.Context) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %w", err)))
		return
	}

	var req request.ActivityRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	activity, err := req.ToDomain()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	activity.ID = uint(activityID)

	updated, err := h.svc.UpdateActivity(ctx.Request.Context(), activity)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}
		if errors.Is(err, service.ErrInvalidContract) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateActivity -> h.svc.UpdateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
