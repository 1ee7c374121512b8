package authors

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/idgen"
)

type mockStore struct {
	authors map[string]*Author
}

func newMockStore() *mockStore { return &mockStore{authors: map[string]*Author{}} }

func (m *mockStore) GetByID(_ context.Context, authorID string) (*Author, error) {
	return m.authors[authorID], nil
}
func (m *mockStore) GetByName(_ context.Context, firstName, lastName string) (*Author, error) {
	for _, a := range m.authors {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	return nil, nil
}
func (m *mockStore) Exists(_ context.Context, authorID string) (bool, error) {
	_, ok := m.authors[authorID]
	return ok, nil
}
func (m *mockStore) List(_ context.Context) ([]Author, error) {
	var out []Author
	for _, a := range m.authors {
		out = append(out, *a)
	}
	return out, nil
}
func (m *mockStore) Insert(_ context.Context, a *Author) error {
	cp := *a
	m.authors[a.AuthorID] = &cp
	return nil
}
func (m *mockStore) Update(_ context.Context, authorID, firstName, lastName string) (int64, error) {
	a, ok := m.authors[authorID]
	if !ok {
		return 0, nil
	}
	a.FirstName, a.LastName = firstName, lastName
	return 1, nil
}
func (m *mockStore) Delete(_ context.Context, authorID string) (int64, error) {
	if _, ok := m.authors[authorID]; !ok {
		return 0, nil
	}
	delete(m.authors, authorID)
	return 1, nil
}

func newTestService(store AuthorStore) *Service {
	return &Service{store: store, id: idgen.New()}
}

func errCode(t *testing.T, err error) api.Code {
	t.Helper()
	var ae *api.APIError
	require.True(t, errors.As(err, &ae), "expected *api.APIError, got %v", err)
	return ae.Code
}

func TestCreateAuthor_Success(t *testing.T) {
	svc := newTestService(newMockStore())

	a, err := svc.Create(context.Background(), CreateAuthorRequest{FirstName: "Chinua", LastName: "Achebe"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^AU\d{1,6}$`), a.AuthorID)
	assert.Equal(t, "Chinua", a.FirstName)
}

func TestCreateAuthor_MissingFields(t *testing.T) {
	svc := newTestService(newMockStore())

	_, err := svc.Create(context.Background(), CreateAuthorRequest{FirstName: "Chinua"})
	assert.Equal(t, api.CodeInvalidArgument, errCode(t, err))
}

func TestCreateAuthor_Duplicate(t *testing.T) {
	svc := newTestService(newMockStore())

	_, err := svc.Create(context.Background(), CreateAuthorRequest{FirstName: "Chinua", LastName: "Achebe"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateAuthorRequest{FirstName: "Chinua", LastName: "Achebe"})
	assert.Equal(t, api.CodeConflict, errCode(t, err))
}

// Listing an empty catalogue returns an empty slice, not an error. Every
// other collection in the API treats empty as missing; authors are the
// exception.
func TestListAuthors_EmptyIsNotAnError(t *testing.T) {
	svc := newTestService(newMockStore())

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGetAuthor_NotFound(t *testing.T) {
	svc := newTestService(newMockStore())

	_, err := svc.Get(context.Background(), "AU999999")
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestUpdateAuthor_NotFound(t *testing.T) {
	svc := newTestService(newMockStore())

	_, err := svc.Update(context.Background(), "AU999999", UpdateAuthorRequest{FirstName: "A", LastName: "B"})
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	svc := newTestService(newMockStore())

	err := svc.Delete(context.Background(), "AU999999")
	assert.Equal(t, api.CodeNotFound, errCode(t, err))
}
