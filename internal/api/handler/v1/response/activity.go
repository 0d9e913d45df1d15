package response

import "github.com/campusday/orientation-api/internal/domain"

// ActivityResponse pairs an activity with the phase information
// resolved for the requesting user at request time.
type ActivityResponse struct {
	domain.Activity
	Phase domain.PhaseInfo `json:"phase"`
}
