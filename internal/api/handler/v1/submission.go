package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusday/orientation-api/internal/api/handler/v1/request"
	"github.com/campusday/orientation-api/internal/api/handler/v1/response"
	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/service"
)

type SubmissionService interface {
	Submit(ctx context.Context, studentID, activityID uint, payload domain.Payload) (domain.Submission, error)
	SetStatus(ctx context.Context, adminID, submissionID uint, status domain.SubmissionStatus) (domain.Submission, error)
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
	ListStudentSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error)
}

type SubmissionHandler struct {
	svc SubmissionService
}

func NewSubmissionHandler(svc SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		svc: svc,
	}
}

// HandleCreateSubmission godoc
// @Summary      Submit proof-of-completion for an activity
// @Description  At most one submission per student per activity, ever. The payload must match the activity's declared submission contract.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        activityID  path      int  true  "Activity ID"
// @Param        request  body      request.CreateSubmissionRequest  true  "submission payload"
// @Success      201  {object}  domain.Submission
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleCreateSubmission(ctx *gin.Context) {
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

	var req request.CreateSubmissionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), user.ID, uint(activityID), req.ToPayload())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
		case errors.Is(err, service.ErrSubmissionNotAccepted):
			response.RenderErr(ctx, response.ErrInvalidOperation(err))
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrWrongSubmissionKind),
			errors.Is(err, service.ErrEmptyContent),
			errors.Is(err, service.ErrFileDescriptorMissing),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrMalformedURL):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateSubmission -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleSetSubmissionStatus godoc
// @Summary      Override a submission's status
// @Description  Admin-only. Any of submitted, pending or late may be set at any time.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        submissionID  path      int  true  "Submission ID"
// @Param        request  body      request.SetSubmissionStatusRequest  true  "new status"
// @Success      200  {object}  domain.Submission
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions/{submissionID}/status [patch]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleSetSubmissionStatus(ctx *gin.Context) {
	user, respErr := currentUser(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissionID, err := strconv.ParseUint(ctx.Param("submissionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid submission ID: %w", err)))
		return
	}

	var req request.SetSubmissionStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.SetStatus(ctx.Request.Context(), user.ID, uint(submissionID), domain.SubmissionStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("submission", "ID", submissionID))
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSetSubmissionStatus -> h.svc.SetStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListSubmissions godoc
// @Summary      List all submissions
// @Description  Admin-only snapshot feed for analytics.
// @Tags         submissions
// @Produce      json
// @Success      200  {array}   domain.Submission
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListSubmissions(ctx *gin.Context) {
	submissions, err := h.svc.ListSubmissions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSubmissions -> h.svc.ListSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleListMySubmissions godoc
// @Summary      List the authenticated student's submissions
// @Tags         submissions
// @Produce      json
// @Success      200  {array}   domain.Submission
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions/mine [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListMySubmissions(ctx *gin.Context) {
	user, respErr := currentUser(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissions, err := h.svc.ListStudentSubmissions(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMySubmissions -> h.svc.ListStudentSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}
