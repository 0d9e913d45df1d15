package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// In reports whether the role belongs to the allowed set. Role checks
// go through this instead of comparing raw strings at call sites.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}

	return false
}

func (r Role) Valid() bool {
	return r.In(RoleAdmin, RoleStudent)
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	BrigadeID *uint     `json:"brigade_id,omitempty"` // required for students, never for admins
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Brigade struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
