package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusday/orientation-api/internal/domain"
)

// CreateSubmissionRequest is the wire shape of the tagged payload
// union: exactly the fields matching the declared kind must be set.
type CreateSubmissionRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content,omitempty"`

	FileURL  string `json:"file_url,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Validate only gates the kind discriminator, which ToPayload needs to
// pick a union arm. Shape and content checks live in the service so a
// duplicate attempt reports the conflict before a malformed payload
// reports a bad request.
func (req *CreateSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.Required,
			validation.In(string(domain.KindFile), string(domain.KindText), string(domain.KindLink))),
	)
}

// ToPayload builds the domain payload matching Kind. Validate must
// have passed first.
func (req *CreateSubmissionRequest) ToPayload() domain.Payload {
	switch domain.SubmissionKind(req.Kind) {
	case domain.KindFile:
		return domain.FilePayload{
			URL:  req.FileURL,
			Name: req.FileName,
			Size: req.FileSize,
		}
	case domain.KindLink:
		return domain.LinkPayload{Content: req.Content}
	default:
		return domain.TextPayload{Content: req.Content}
	}
}

type SetSubmissionStatusRequest struct {
	Status string `json:"status"`
}

func (req *SetSubmissionStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In(string(domain.StatusSubmitted), string(domain.StatusPending), string(domain.StatusLate))),
	)
}
