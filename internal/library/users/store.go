package users

import (
	"context"
	"database/sql"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, u *User) error
	Update(ctx context.Context, username string, u *User) (int64, error)
	Delete(ctx context.Context, username string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) UserStore { return &Store{db: db} }

const userCols = `username, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE username = ? LIMIT 1`
	var u User
	err := s.db.QueryRowContext(ctx, q, username).Scan(
		&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	const q = `SELECT ` + userCols + ` FROM users ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, u *User) error {
	const q = `
	INSERT INTO users (username, first_name, last_name, email, password_hash, is_admin, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err := s.db.ExecContext(ctx, q, u.Username, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin)
	return err
}

func (s *Store) Update(ctx context.Context, username string, u *User) (int64, error) {
	const q = `
	UPDATE users SET first_name = ?, last_name = ?, email = ?, username = ?, password_hash = ?, updated_at = CURRENT_TIMESTAMP
	WHERE username = ?`
	res, err := s.db.ExecContext(ctx, q, u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, username string) (int64, error) {
	const q = `DELETE FROM users WHERE username = ?`
	res, err := s.db.ExecContext(ctx, q, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
