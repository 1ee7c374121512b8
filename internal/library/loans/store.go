package loans

import (
	"context"
	"database/sql"
	"time"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/db"
)

// LoanStore is the persistence boundary of the loan lifecycle. CreateLoan
// and ReturnLoan are the only two paths that touch books.quantity, and
// each runs its check-then-write sequence inside one transaction.
type LoanStore interface {
	MemberExists(ctx context.Context, memberID string) (bool, error)
	BookExists(ctx context.Context, isbn string) (bool, error)
	LoanIDExists(ctx context.Context, loanID string) (bool, error)
	CreateLoan(ctx context.Context, l *Loan) error
	ReturnLoan(ctx context.Context, memberID, isbn string, returnedAt time.Time) (*Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	ListByMember(ctx context.Context, memberID string) ([]Loan, error)
	ListByISBN(ctx context.Context, isbn string) ([]Loan, error)
	Delete(ctx context.Context, memberID, isbn string) (int64, error)
	Summary(ctx context.Context) (*Summary, error)
}

type Store struct{ db *sql.DB }

func NewStore(sqldb *sql.DB) LoanStore { return &Store{db: sqldb} }

const loanCols = `loan_id, loan_ulid, isbn, member_id, loan_date, due_date, returned, returned_date`

func (s *Store) MemberExists(ctx context.Context, memberID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM members WHERE member_id = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, memberID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) BookExists(ctx context.Context, isbn string) (bool, error) {
	const q = `SELECT COUNT(*) FROM books WHERE isbn = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, isbn).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) LoanIDExists(ctx context.Context, loanID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM loans WHERE loan_id = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, loanID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateLoan locks the book row, re-checks availability and the
// duplicate-loan rule under that lock, then inserts the loan and
// decrements stock. Either everything commits or nothing does, so two
// concurrent borrows of the last copy cannot both succeed.
func (s *Store) CreateLoan(ctx context.Context, l *Loan) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const lockQ = `SELECT quantity FROM books WHERE isbn = ? FOR UPDATE`
		var qty int
		if err := tx.QueryRowContext(ctx, lockQ, l.ISBN).Scan(&qty); err != nil {
			if err == sql.ErrNoRows {
				return api.ErrNotFound("Book does not exist")
			}
			return err
		}
		if qty == 0 {
			return api.ErrConflict("Book is out of stock")
		}

		const dupQ = `SELECT COUNT(*) FROM loans WHERE member_id = ? AND isbn = ? AND returned = 0`
		var n int
		if err := tx.QueryRowContext(ctx, dupQ, l.MemberID, l.ISBN).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return api.ErrConflict("Loan already exists")
		}

		const insQ = `
		INSERT INTO loans (loan_id, loan_ulid, isbn, member_id, loan_date, due_date, returned, returned_date)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL)`
		if _, err := tx.ExecContext(ctx, insQ, l.LoanID, l.LoanULID, l.ISBN, l.MemberID, l.LoanDate, l.DueDate); err != nil {
			return err
		}

		const decQ = `UPDATE books SET quantity = quantity - 1 WHERE isbn = ? AND quantity > 0`
		res, err := tx.ExecContext(ctx, decQ, l.ISBN)
		if err != nil {
			return err
		}
		aff, _ := res.RowsAffected()
		if aff != 1 {
			return api.ErrInternal("failed to decrement books.quantity")
		}
		return nil
	})
}

// ReturnLoan locks the loan row for (member, isbn), preferring the active
// one, flips it to returned and increments stock in the same transaction.
func (s *Store) ReturnLoan(ctx context.Context, memberID, isbn string, returnedAt time.Time) (*Loan, error) {
	var out Loan
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const lockQ = `
		SELECT ` + loanCols + ` FROM loans
		WHERE member_id = ? AND isbn = ?
		ORDER BY returned ASC, loan_date DESC
		LIMIT 1 FOR UPDATE`
		err := tx.QueryRowContext(ctx, lockQ, memberID, isbn).Scan(
			&out.LoanID, &out.LoanULID, &out.ISBN, &out.MemberID,
			&out.LoanDate, &out.DueDate, &out.Returned, &out.ReturnedDate,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				return api.ErrNotFound("Loan does not exist")
			}
			return err
		}
		if out.Returned {
			return api.ErrConflict("Book has already been returned")
		}

		const updQ = `UPDATE loans SET returned = 1, returned_date = ? WHERE loan_id = ?`
		if _, err := tx.ExecContext(ctx, updQ, returnedAt, out.LoanID); err != nil {
			return err
		}

		const incQ = `UPDATE books SET quantity = quantity + 1 WHERE isbn = ?`
		res, err := tx.ExecContext(ctx, incQ, isbn)
		if err != nil {
			return err
		}
		aff, _ := res.RowsAffected()
		if aff != 1 {
			return api.ErrInternal("failed to increment books.quantity")
		}

		out.Returned = true
		out.ReturnedDate = &returnedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) list(ctx context.Context, q string, args ...any) ([]Loan, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(
			&l.LoanID, &l.LoanULID, &l.ISBN, &l.MemberID,
			&l.LoanDate, &l.DueDate, &l.Returned, &l.ReturnedDate,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context) ([]Loan, error) {
	return s.list(ctx, `SELECT `+loanCols+` FROM loans ORDER BY loan_date DESC`)
}

func (s *Store) ListByMember(ctx context.Context, memberID string) ([]Loan, error) {
	return s.list(ctx, `SELECT `+loanCols+` FROM loans WHERE member_id = ? ORDER BY loan_date DESC`, memberID)
}

func (s *Store) ListByISBN(ctx context.Context, isbn string) ([]Loan, error) {
	return s.list(ctx, `SELECT `+loanCols+` FROM loans WHERE isbn = ? ORDER BY loan_date DESC`, isbn)
}

// Delete is an administrative removal. It does not touch books.quantity,
// deletion is a record correction, not a return.
func (s *Store) Delete(ctx context.Context, memberID, isbn string) (int64, error) {
	const q = `DELETE FROM loans WHERE member_id = ? AND isbn = ?`
	res, err := s.db.ExecContext(ctx, q, memberID, isbn)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		const q = `
		SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN returned = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN returned = 1 THEN 1 ELSE 0 END), 0)
		FROM loans`
		return tx.QueryRowContext(ctx, q).Scan(&sum.Total, &sum.Active, &sum.Returned)
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
