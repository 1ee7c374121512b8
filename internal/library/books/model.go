package books

import "time"

// Book is a row of the books table. Quantity is the availability signal:
// it is written here only at creation time, every later change goes
// through the loan transactions.
type Book struct {
	ISBN          string    `json:"isbn"`
	Title         string    `json:"title"`
	AuthorID      string    `json:"authorID"`
	BookImage     *string   `json:"bookImage,omitempty"`
	PublishedDate time.Time `json:"publishedDate"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
