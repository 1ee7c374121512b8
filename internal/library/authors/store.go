package authors

import (
	"context"
	"database/sql"
)

type AuthorStore interface {
	GetByID(ctx context.Context, authorID string) (*Author, error)
	GetByName(ctx context.Context, firstName, lastName string) (*Author, error)
	Exists(ctx context.Context, authorID string) (bool, error)
	List(ctx context.Context) ([]Author, error)
	Insert(ctx context.Context, a *Author) error
	Update(ctx context.Context, authorID, firstName, lastName string) (int64, error)
	Delete(ctx context.Context, authorID string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AuthorStore { return &Store{db: db} }

const authorCols = `author_id, first_name, last_name, created_at, updated_at`

func scanAuthor(row *sql.Row) (*Author, error) {
	var a Author
	err := row.Scan(&a.AuthorID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetByID(ctx context.Context, authorID string) (*Author, error) {
	const q = `SELECT ` + authorCols + ` FROM authors WHERE author_id = ? LIMIT 1`
	return scanAuthor(s.db.QueryRowContext(ctx, q, authorID))
}

func (s *Store) GetByName(ctx context.Context, firstName, lastName string) (*Author, error) {
	const q = `SELECT ` + authorCols + ` FROM authors WHERE first_name = ? AND last_name = ? LIMIT 1`
	return scanAuthor(s.db.QueryRowContext(ctx, q, firstName, lastName))
}

func (s *Store) Exists(ctx context.Context, authorID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM authors WHERE author_id = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, authorID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context) ([]Author, error) {
	const q = `SELECT ` + authorCols + ` FROM authors ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.AuthorID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, a *Author) error {
	const q = `
	INSERT INTO authors (author_id, first_name, last_name, created_at, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err := s.db.ExecContext(ctx, q, a.AuthorID, a.FirstName, a.LastName)
	return err
}

func (s *Store) Update(ctx context.Context, authorID, firstName, lastName string) (int64, error) {
	const q = `
	UPDATE authors SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP
	WHERE author_id = ?`
	res, err := s.db.ExecContext(ctx, q, firstName, lastName, authorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, authorID string) (int64, error) {
	const q = `DELETE FROM authors WHERE author_id = ?`
	res, err := s.db.ExecContext(ctx, q, authorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
