package request

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusday/orientation-api/internal/domain"
)

var errContractWithoutSubmission = errors.New("submission_kind and max_size_mib require requires_submission")

// ActivityRequest covers create and update; both carry the full record.
// Date is DD/MM/YYYY; start and end are HH:MM on that date.
type ActivityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date" format:"DD/MM/YYYY"`
	StartTime   string `json:"start_time" format:"HH:MM"`
	EndTime     string `json:"end_time,omitempty" format:"HH:MM"`

	RequiresSubmission bool   `json:"requires_submission"`
	SubmissionKind     string `json:"submission_kind,omitempty"`
	MaxSizeMiB         int64  `json:"max_size_mib,omitempty"`
}

func (req *ActivityRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Date, validation.Required, validation.Date("02/01/2006")),
		validation.Field(&req.StartTime, validation.Required, validation.Date("15:04")),
		validation.Field(&req.EndTime, validation.Date("15:04")),
	)
	if err != nil {
		return err
	}

	if req.RequiresSubmission {
		err = validation.ValidateStruct(
			req,
			validation.Field(&req.SubmissionKind, validation.Required,
				validation.In(string(domain.KindFile), string(domain.KindText), string(domain.KindLink))),
		)
		if err != nil {
			return err
		}

		if req.SubmissionKind == string(domain.KindFile) {
			return validation.ValidateStruct(
				req,
				validation.Field(&req.MaxSizeMiB, validation.Required,
					validation.Min(int64(1)), validation.Max(int64(domain.MaxFileSizeMiB))),
			)
		}

		return nil
	}

	if req.SubmissionKind != "" || req.MaxSizeMiB != 0 {
		return errContractWithoutSubmission
	}

	return nil
}

// ToDomain parses the date and time fields into a domain activity.
// Validate must have passed first.
func (req *ActivityRequest) ToDomain() (domain.Activity, error) {
	date, err := time.Parse("02/01/2006", req.Date)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("invalid date: %w", err)
	}

	startsAt, err := atTimeOfDay(date, req.StartTime)
	if err != nil {
		return domain.Activity{}, err
	}

	activity := domain.Activity{
		Title:              req.Title,
		Description:        req.Description,
		Date:               date,
		StartsAt:           startsAt,
		RequiresSubmission: req.RequiresSubmission,
		SubmissionKind:     domain.SubmissionKind(req.SubmissionKind),
		MaxSizeMiB:         req.MaxSizeMiB,
	}

	if req.EndTime != "" {
		endsAt, err := atTimeOfDay(date, req.EndTime)
		if err != nil {
			return domain.Activity{}, err
		}
		activity.EndsAt = &endsAt
	}

	return activity, nil
}

func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time: %w", err)
	}

	y, m, d := date.Date()

	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
