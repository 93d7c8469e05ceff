package model

import "time"

// Role names recognized by the platform.  The program builder only
// cares about the administrative and editorial roles; everything else
// is treated as a regular attendee.
const (
	RoleAdmin    = "ADMIN"
	RoleEditor   = "EDITOR"
	RoleReviewer = "REVIEWER"
	RoleAttendee = "ATTENDEE"
)

// User is a platform account as seen by the program builder.  The
// legacy schema carried three parallel role arrays; they are merged
// into the single Roles set here.  Accounts are managed by the auth
// service; this side only reads them to find moderator candidates.
//
// Fields:
//  ID                   – primary key identifier.
//  Name                 – display name.
//  Email                – unique email address.
//  Affiliation          – institution the user belongs to.
//  Roles                – normalized set of role names.
//  ExperiencedModerator – has moderated sessions before.
//  WillingModerator     – volunteered to moderate this year.
//  IsActive             – whether the account is active.
//  CreatedAt            – row creation timestamp.
type User struct {
	ID                   uint64    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Affiliation          string    `json:"affiliation,omitempty"`
	Roles                []string  `json:"roles"`
	ExperiencedModerator bool      `json:"experiencedModerator"`
	WillingModerator     bool      `json:"willingModerator"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ModeratorCandidate reports whether the user should be offered as a
// session moderator: holders of an administrative or editorial role
// qualify, as do users flagged as experienced or willing moderators.
// Inactive accounts never qualify.
func (u User) ModeratorCandidate() bool {
	if !u.IsActive {
		return false
	}
	return u.HasRole(RoleAdmin) || u.HasRole(RoleEditor) ||
		u.ExperiencedModerator || u.WillingModerator
}
