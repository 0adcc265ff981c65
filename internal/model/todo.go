package model

import "time"

// Todo is a single to-do item owned by the user who created it.
//
// Text is set at creation and never edited afterwards; the only mutable
// field is Completed, which the owning user toggles. Todos are never
// deleted by this system.
//
// IDs are xids, which are time-sortable: ordering by id descending is the
// same as ordering by creation time, newest first.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
