package request_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusday/orientation-api/internal/api/handler/v1/request"
	"github.com/campusday/orientation-api/internal/domain"
)

func validActivityRequest() request.ActivityRequest {
	return request.ActivityRequest{
		Title:     "Capture the Flag",
		Date:      "15/09/2026",
		StartTime: "10:30",
		EndTime:   "12:00",
	}
}

func TestActivityRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *request.ActivityRequest)
		wantErr bool
	}{
		{
			name:   "schedule only",
			mutate: func(req *request.ActivityRequest) {},
		},
		{
			name: "text contract",
			mutate: func(req *request.ActivityRequest) {
				req.RequiresSubmission = true
				req.SubmissionKind = "text"
			},
		},
		{
			name: "file contract with size",
			mutate: func(req *request.ActivityRequest) {
				req.RequiresSubmission = true
				req.SubmissionKind = "file"
				req.MaxSizeMiB = 25
			},
		},
		{
			name:    "missing title",
			mutate:  func(req *request.ActivityRequest) { req.Title = "" },
			wantErr: true,
		},
		{
			name:    "american date layout",
			mutate:  func(req *request.ActivityRequest) { req.Date = "09/15/2026" },
			wantErr: true,
		},
		{
			name:    "malformed start time",
			mutate:  func(req *request.ActivityRequest) { req.StartTime = "25:99" },
			wantErr: true,
		},
		{
			name: "contract without submission flag",
			mutate: func(req *request.ActivityRequest) {
				req.SubmissionKind = "text"
			},
			wantErr: true,
		},
		{
			name: "file contract without size",
			mutate: func(req *request.ActivityRequest) {
				req.RequiresSubmission = true
				req.SubmissionKind = "file"
			},
			wantErr: true,
		},
		{
			name: "file contract over the global cap",
			mutate: func(req *request.ActivityRequest) {
				req.RequiresSubmission = true
				req.SubmissionKind = "file"
				req.MaxSizeMiB = domain.MaxFileSizeMiB + 1
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			mutate: func(req *request.ActivityRequest) {
				req.RequiresSubmission = true
				req.SubmissionKind = "video"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validActivityRequest()
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivityRequest_ToDomain(t *testing.T) {
	req := validActivityRequest()

	activity, err := req.ToDomain()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC), activity.Date)
	assert.Equal(t, time.Date(2026, time.September, 15, 10, 30, 0, 0, time.UTC), activity.StartsAt)
	require.NotNil(t, activity.EndsAt)
	assert.Equal(t, time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC), *activity.EndsAt)
}

func TestActivityRequest_ToDomain_NoEndTime(t *testing.T) {
	req := validActivityRequest()
	req.EndTime = ""

	activity, err := req.ToDomain()

	require.NoError(t, err)
	assert.Nil(t, activity.EndsAt)
}
