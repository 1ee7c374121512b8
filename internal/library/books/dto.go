package books

type CreateBookRequest struct {
	Title         string  `json:"title"`
	AuthorID      string  `json:"authorID"`
	ISBN          string  `json:"isbn"`
	PublishedDate string  `json:"publishedDate"` // YYYY-MM-DD
	Quantity      int     `json:"quantity"`
	BookImage     *string `json:"bookImage,omitempty"`
}

// UpdateBookRequest carries metadata only. Quantity is deliberately
// absent, stock moves only through the loan lifecycle.
type UpdateBookRequest struct {
	Title         string  `json:"title"`
	AuthorID      string  `json:"authorID"`
	PublishedDate string  `json:"publishedDate"`
	BookImage     *string `json:"bookImage,omitempty"`
}
