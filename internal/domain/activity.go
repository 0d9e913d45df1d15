package domain

import "time"

type SubmissionKind string

const (
	KindFile SubmissionKind = "file"
	KindText SubmissionKind = "text"
	KindLink SubmissionKind = "link"
)

func (k SubmissionKind) Valid() bool {
	switch k {
	case KindFile, KindText, KindLink:
		return true
	}

	return false
}

// MaxFileSizeMiB caps the per-activity file size limit an admin may declare.
const MaxFileSizeMiB = 100

// Activity is one scheduled unit of the orientation day's agenda.
// SubmissionKind and MaxSizeMiB are meaningful only when
// RequiresSubmission is set; they are ignored otherwise.
type Activity struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`

	RequiresSubmission bool           `json:"requires_submission"`
	SubmissionKind     SubmissionKind `json:"submission_kind,omitempty"`
	MaxSizeMiB         int64          `json:"max_size_mib,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndOfDay is the last instant of the activity's calendar day, the
// boundary after which the activity counts as completed.
func (a Activity) EndOfDay() time.Time {
	y, m, d := a.Date.Date()

	return time.Date(y, m, d, 23, 59, 59, 999999999, a.Date.Location())
}
