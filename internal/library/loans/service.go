package loans

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/idgen"
)

// Loans run for 14 days.
const loanPeriod = 14 * 24 * time.Hour

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	store LoanStore
	clock Clock
	id    *idgen.Generator
	ulid  IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store: NewStore(db),
		clock: realClock{},
		id:    idgen.New(),
		ulid:  ulidGen{},
	}
}

func (s *Service) CreateLoan(ctx context.Context, req CreateLoanRequest) (*Loan, error) {
	if req.MemberID == "" || req.BookISBN == "" {
		return nil, api.ErrInvalid("Member ID and Book ISBN are required")
	}

	ok, err := s.store.MemberExists(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound("Member does not exist")
	}

	ok, err = s.store.BookExists(ctx, req.BookISBN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound("Book does not exist")
	}

	loanID, err := s.id.Next(ctx, idgen.PrefixLoan, s.store.LoanIDExists)
	if err != nil {
		return nil, err
	}
	loanULID, err := s.ulid.New()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	l := &Loan{
		LoanID:   loanID,
		LoanULID: loanULID,
		ISBN:     req.BookISBN,
		MemberID: req.MemberID,
		LoanDate: now,
		DueDate:  now.Add(loanPeriod),
		Returned: false,
	}

	// Availability and duplicate checks happen inside the store
	// transaction, under the book row lock.
	if err := s.store.CreateLoan(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetAllLoans(ctx context.Context) ([]Loan, error) {
	out, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Loans found")
	}
	return out, nil
}

func (s *Service) GetLoansByMember(ctx context.Context, memberID string) ([]Loan, error) {
	if memberID == "" {
		return nil, api.ErrInvalid("Member ID is required")
	}
	ok, err := s.store.MemberExists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound("Member does not exist")
	}
	out, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Loans found")
	}
	return out, nil
}

func (s *Service) GetLoansByISBN(ctx context.Context, isbn string) ([]Loan, error) {
	if isbn == "" {
		return nil, api.ErrInvalid("Book ISBN is required")
	}
	ok, err := s.store.BookExists(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound("Book does not exist")
	}
	out, err := s.store.ListByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Loans found")
	}
	return out, nil
}

func (s *Service) ReturnBook(ctx context.Context, req ReturnBookRequest) (*Loan, error) {
	if req.MemberID == "" || req.BookISBN == "" {
		return nil, api.ErrInvalid("Member ID and Book ISBN are required")
	}
	return s.store.ReturnLoan(ctx, req.MemberID, req.BookISBN, s.clock.Now())
}

func (s *Service) DeleteLoan(ctx context.Context, req DeleteLoanRequest) error {
	if req.MemberID == "" || req.BookISBN == "" {
		return api.ErrInvalid("Member ID and Book ISBN are required")
	}
	n, err := s.store.Delete(ctx, req.MemberID, req.BookISBN)
	if err != nil {
		return err
	}
	if n == 0 {
		return api.ErrNotFound("Loan does not exist")
	}
	return nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	return s.store.Summary(ctx)
}
