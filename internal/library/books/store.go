package books

import (
	"context"
	"database/sql"
	"time"
)

type BookStore interface {
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	AuthorExists(ctx context.Context, authorID string) (bool, error)
	List(ctx context.Context) ([]Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Book, error)
	Insert(ctx context.Context, b *Book) error
	UpdateMeta(ctx context.Context, isbn string, in UpdateBookRequest, published time.Time) (int64, error)
	Delete(ctx context.Context, isbn string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) BookStore { return &Store{db: db} }

const bookCols = `isbn, title, author_id, book_image, published_date, quantity, created_at, updated_at`

func (s *Store) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE isbn = ? LIMIT 1`
	var b Book
	err := s.db.QueryRowContext(ctx, q, isbn).Scan(
		&b.ISBN, &b.Title, &b.AuthorID, &b.BookImage, &b.PublishedDate, &b.Quantity, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) AuthorExists(ctx context.Context, authorID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM authors WHERE author_id = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, authorID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) list(ctx context.Context, q string, args ...any) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ISBN, &b.Title, &b.AuthorID, &b.BookImage, &b.PublishedDate, &b.Quantity, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Book, error) {
	return s.list(ctx, `SELECT `+bookCols+` FROM books ORDER BY created_at`)
}

func (s *Store) ListByAuthor(ctx context.Context, authorID string) ([]Book, error) {
	return s.list(ctx, `SELECT `+bookCols+` FROM books WHERE author_id = ? ORDER BY created_at`, authorID)
}

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books (isbn, title, author_id, book_image, published_date, quantity, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err := s.db.ExecContext(ctx, q, b.ISBN, b.Title, b.AuthorID, b.BookImage, b.PublishedDate, b.Quantity)
	return err
}

// UpdateMeta never touches the quantity column.
func (s *Store) UpdateMeta(ctx context.Context, isbn string, in UpdateBookRequest, published time.Time) (int64, error) {
	const q = `
	UPDATE books SET title = ?, author_id = ?, published_date = ?, book_image = COALESCE(?, book_image),
	updated_at = CURRENT_TIMESTAMP
	WHERE isbn = ?`
	res, err := s.db.ExecContext(ctx, q, in.Title, in.AuthorID, published, in.BookImage, isbn)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, isbn string) (int64, error) {
	const q = `DELETE FROM books WHERE isbn = ?`
	res, err := s.db.ExecContext(ctx, q, isbn)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
