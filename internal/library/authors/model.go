package authors

import "time"

// Author is a row of the authors table.
type Author struct {
	AuthorID  string    `json:"authorID"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
