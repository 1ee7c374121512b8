package members

import (
	"context"
	"database/sql"
)

type MemberStore interface {
	GetByID(ctx context.Context, memberID string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	Exists(ctx context.Context, memberID string) (bool, error)
	List(ctx context.Context) ([]Member, error)
	Insert(ctx context.Context, m *Member) error
	Update(ctx context.Context, memberID string, in UpdateMemberRequest) (int64, error)
	Delete(ctx context.Context, memberID string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) MemberStore { return &Store{db: db} }

const memberCols = `member_id, first_name, last_name, email, phone_number, created_at, updated_at`

func scanMember(row *sql.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetByID(ctx context.Context, memberID string) (*Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE member_id = ? LIMIT 1`
	return scanMember(s.db.QueryRowContext(ctx, q, memberID))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE email = ? LIMIT 1`
	return scanMember(s.db.QueryRowContext(ctx, q, email))
}

func (s *Store) Exists(ctx context.Context, memberID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM members WHERE member_id = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, memberID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context) ([]Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, m *Member) error {
	const q = `
	INSERT INTO members (member_id, first_name, last_name, email, phone_number, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err := s.db.ExecContext(ctx, q, m.MemberID, m.FirstName, m.LastName, m.Email, m.PhoneNumber)
	return err
}

func (s *Store) Update(ctx context.Context, memberID string, in UpdateMemberRequest) (int64, error) {
	const q = `
	UPDATE members SET first_name = ?, last_name = ?, email = ?, phone_number = ?, updated_at = CURRENT_TIMESTAMP
	WHERE member_id = ?`
	res, err := s.db.ExecContext(ctx, q, in.FirstName, in.LastName, in.Email, in.PhoneNumber, memberID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, memberID string) (int64, error) {
	const q = `DELETE FROM members WHERE member_id = ?`
	res, err := s.db.ExecContext(ctx, q, memberID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
