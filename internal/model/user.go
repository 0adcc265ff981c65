// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered user account.
//
// GitHub OAuth is the only identity provider, so the external identifier is
// the GitHub user ID (an integer). We still generate our own internal string
// ID (xid) so our primary keys aren't tied to a third party's numbering
// scheme. The UNIQUE constraint on github_id in the DB ensures one GitHub
// account maps to exactly one app account.
//
// Name is the GitHub display name and is overwritten on every login, so a
// user who renames themselves on GitHub sees the new name here after the
// next sign-in. GitHubID never changes after the row is created.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GitHubID  int64     `json:"githubId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
