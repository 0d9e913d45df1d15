package domain

import "time"

type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusPending   SubmissionStatus = "pending"
	StatusLate      SubmissionStatus = "late"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPending, StatusLate:
		return true
	}

	return false
}

// Submission is a student's proof-of-completion for one activity.
// At most one row ever exists per (student, activity) pair. Everything
// except Status is immutable after creation.
type Submission struct {
	ID         uint             `json:"id"`
	StudentID  uint             `json:"student_id"`
	ActivityID uint             `json:"activity_id"`
	Kind       SubmissionKind   `json:"kind"`
	Content    string           `json:"content,omitempty"` // text and link kinds
	FileURL    string           `json:"file_url,omitempty"`
	FileName   string           `json:"file_name,omitempty"`
	FileSize   int64            `json:"file_size,omitempty"` // bytes
	Status     SubmissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Payload is the tagged union of the three submission shapes. Exactly
// one concrete type exists per SubmissionKind and validators switch on
// it exhaustively.
type Payload interface {
	Kind() SubmissionKind
}

type FilePayload struct {
	URL  string
	Name string
	Size int64 // bytes
}

func (FilePayload) Kind() SubmissionKind { return KindFile }

type TextPayload struct {
	Content string
}

func (TextPayload) Kind() SubmissionKind { return KindText }

type LinkPayload struct {
	Content string
}

func (LinkPayload) Kind() SubmissionKind { return KindLink }
