package loans

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/idgen"
)

// mockStore mirrors the transactional store: each CreateLoan/ReturnLoan runs
// its whole check-then-write sequence under one lock, like the row-locked
// DB transaction does.
type mockStore struct {
	mu      sync.Mutex
	members map[string]bool
	books   map[string]int
	loans   []*Loan
}

func newMockStore() *mockStore {
	return &mockStore{
		members: make(map[string]bool),
		books:   make(map[string]int),
	}
}

func (m *mockStore) MemberExists(_ context.Context, memberID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[memberID], nil
}

func (m *mockStore) BookExists(_ context.Context, isbn string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.books[isbn]
	return ok, nil
}

func (m *mockStore) LoanIDExists(_ context.Context, loanID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.loans {
		if l.LoanID == loanID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) CreateLoan(_ context.Context, l *Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	qty, ok := m.books[l.ISBN]
	if !ok {
		return api.ErrNotFound("Book does not exist")
	}
	if qty == 0 {
		return api.ErrConflict("Book is out of stock")
	}
	for _, existing := range m.loans {
		if existing.MemberID == l.MemberID && existing.ISBN == l.ISBN && !existing.Returned {
			return api.ErrConflict("Loan already exists")
		}
	}

	cp := *l
	m.loans = append(m.loans, &cp)
	m.books[l.ISBN] = qty - 1
	return nil
}

func (m *mockStore) ReturnLoan(_ context.Context, memberID, isbn string, returnedAt time.Time) (*Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var match *Loan
	for _, l := range m.loans {
		if l.MemberID != memberID || l.ISBN != isbn {
			continue
		}
		if !l.Returned {
			match = l
			break
		}
		if match == nil {
			match = l
		}
	}
	if match == nil {
		return nil, api.ErrNotFound("Loan does not exist")
	}
	if match.Returned {
		return nil, api.ErrConflict("Book has already been returned")
	}

	match.Returned = true
	match.ReturnedDate = &returnedAt
	m.books[isbn]++

	out := *match
	return &out, nil
}

func (m *mockStore) ListAll(_ context.Context) ([]Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Loan
	for _, l := range m.loans {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockStore) ListByMember(_ context.Context, memberID string) ([]Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Loan
	for _, l := range m.loans {
		if l.MemberID == memberID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockStore) ListByISBN(_ context.Context, isbn string) ([]Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Loan
	for _, l := range m.loans {
		if l.ISBN == isbn {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockStore) Delete(_ context.Context, memberID, isbn string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*Loan
	var n int64
	for _, l := range m.loans {
		if l.MemberID == memberID && l.ISBN == isbn {
			n++
			continue
		}
		kept = append(kept, l)
	}
	m.loans = kept
	return n, nil
}

func (m *mockStore) Summary(_ context.Context) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum Summary
	for _, l := range m.loans {
		sum.Total++
		if l.Returned {
			sum.Returned++
		} else {
			sum.Active++
		}
	}
	return &sum, nil
}

func (m *mockStore) quantity(isbn string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[isbn]
}

func (m *mockStore) loanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loans)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(store LoanStore, now time.Time) *Service {
	return &Service{
		store: store,
		clock: fixedClock{t: now},
		id:    idgen.New(),
		ulid:  ulidGen{},
	}
}

func errCode(t *testing.T, err error) api.Code {
	t.Helper()
	var ae *api.APIError
	require.True(t, errors.As(err, &ae), "expected *api.APIError, got %v", err)
	return ae.Code
}

func TestCreateLoan_Success(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	l, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	assert.Regexp(t, `^LN\d+$`, l.LoanID)
	assert.NotEmpty(t, l.LoanULID)
	assert.Equal(t, now, l.LoanDate)
	assert.Equal(t, now.Add(14*24*time.Hour), l.DueDate)
	assert.False(t, l.Returned)
	assert.Nil(t, l.ReturnedDate)
	assert.Equal(t, 9, store.quantity("9780062315007"))
}

func TestCreateLoan_MissingFields(t *testing.T) {
	svc := newTestService(newMockStore(), time.Now())

	for _, req := range []CreateLoanRequest{
		{},
		{MemberID: "MB1"},
		{BookISBN: "9780062315007"},
	} {
		_, err := svc.CreateLoan(context.Background(), req)
		assert.Equal(t, api.CodeInvalidArgument, errCode(t, err))
	}
}

func TestCreateLoan_MemberNotFound(t *testing.T) {
	store := newMockStore()
	store.books["9780062315007"] = 1
	svc := newTestService(store, time.Now())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB999", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestCreateLoan_BookNotFound(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	svc := newTestService(store, time.Now())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "0000000000"})
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestCreateLoan_OutOfStock(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 0
	svc := newTestService(store, time.Now())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeConflict, errCode(t, err))
	assert.EqualError(t, err, "CONFLICT: Book is out of stock")

	// Nothing was mutated.
	assert.Equal(t, 0, store.quantity("9780062315007"))
	assert.Equal(t, 0, store.loanCount())
}

func TestCreateLoan_DuplicateActiveLoan(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now().UTC())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	_, err = svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeConflict, errCode(t, err))
	assert.EqualError(t, err, "CONFLICT: Loan already exists")
	assert.Equal(t, 9, store.quantity("9780062315007"))
	assert.Equal(t, 1, store.loanCount())
}

func TestReturnBook_RoundTripRestoresQuantity(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	require.Equal(t, 9, store.quantity("9780062315007"))

	l, err := svc.ReturnBook(context.Background(), ReturnBookRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	assert.True(t, l.Returned)
	require.NotNil(t, l.ReturnedDate)
	assert.Equal(t, now, *l.ReturnedDate)
	assert.Equal(t, 10, store.quantity("9780062315007"))
}

func TestReturnBook_AlreadyReturned(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now().UTC())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	_, err = svc.ReturnBook(context.Background(), ReturnBookRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	_, err = svc.ReturnBook(context.Background(), ReturnBookRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeConflict, errCode(t, err))
	assert.EqualError(t, err, "CONFLICT: Book has already been returned")

	// No double increment.
	assert.Equal(t, 10, store.quantity("9780062315007"))
}

func TestReturnBook_LoanNotFound(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now())

	_, err := svc.ReturnBook(context.Background(), ReturnBookRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestDeleteLoan_DoesNotRestoreQuantity(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now().UTC())

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	err = svc.DeleteLoan(context.Background(), DeleteLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	// Administrative delete is not a return: stock stays decremented.
	assert.Equal(t, 9, store.quantity("9780062315007"))
	assert.Equal(t, 0, store.loanCount())
}

func TestDeleteLoan_NotFound(t *testing.T) {
	svc := newTestService(newMockStore(), time.Now())

	err := svc.DeleteLoan(context.Background(), DeleteLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestGetAllLoans_EmptyIsNotFound(t *testing.T) {
	svc := newTestService(newMockStore(), time.Now())

	_, err := svc.GetAllLoans(context.Background())
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
	assert.EqualError(t, err, "NOT_FOUND: No Loans found")
}

func TestGetLoansByMember(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now().UTC())

	_, err := svc.GetLoansByMember(context.Background(), "")
	assert.Equal(t, api.CodeInvalidArgument, errCode(t, err))

	_, err = svc.GetLoansByMember(context.Background(), "MB999")
	assert.Equal(t, api.CodeNotFound, errCode(t, err))

	_, err = svc.GetLoansByMember(context.Background(), "MB1")
	assert.Equal(t, api.CodeNotFound, errCode(t, err))

	_, err = svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)

	out, err := svc.GetLoansByMember(context.Background(), "MB1")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestConcurrentCreate_LastCopyGoesToExactlyOneCaller(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.members["MB2"] = true
	store.books["9780062315007"] = 1
	svc := newTestService(store, time.Now().UTC())

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, member := range []string{"MB1", "MB2"} {
		wg.Add(1)
		go func(memberID string) {
			defer wg.Done()
			_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{MemberID: memberID, BookISBN: "9780062315007"})
			results <- err
		}(member)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if errCode(t, err) == api.CodeConflict {
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 0, store.quantity("9780062315007"))
	assert.Equal(t, 1, store.loanCount())
}

func TestLoanLifecycle_EndToEnd(t *testing.T) {
	store := newMockStore()
	store.members["MB1"] = true
	store.books["9780062315007"] = 10
	svc := newTestService(store, time.Now().UTC())
	ctx := context.Background()

	_, err := svc.CreateLoan(ctx, CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	assert.Equal(t, 9, store.quantity("9780062315007"))

	_, err = svc.CreateLoan(ctx, CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	assert.EqualError(t, err, "CONFLICT: Loan already exists")

	_, err = svc.ReturnBook(ctx, ReturnBookRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	assert.Equal(t, 10, store.quantity("9780062315007"))

	// Only an ACTIVE loan blocks a new one, borrowing again after the
	// return must work.
	_, err = svc.CreateLoan(ctx, CreateLoanRequest{MemberID: "MB1", BookISBN: "9780062315007"})
	require.NoError(t, err)
	assert.Equal(t, 9, store.quantity("9780062315007"))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Total)
	assert.Equal(t, int64(1), sum.Active)
	assert.Equal(t, int64(1), sum.Returned)
}
