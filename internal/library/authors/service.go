package authors

import (
	"context"
	"database/sql"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/idgen"
)

type Service struct {
	store AuthorStore
	id    *idgen.Generator
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db), id: idgen.New()}
}

func (s *Service) Create(ctx context.Context, req CreateAuthorRequest) (*Author, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, api.ErrInvalid("First name and last name are required")
	}

	existing, err := s.store.GetByName(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, api.ErrConflict("Author already exists")
	}

	authorID, err := s.id.Next(ctx, idgen.PrefixAuthor, s.store.Exists)
	if err != nil {
		return nil, err
	}

	a := &Author{AuthorID: authorID, FirstName: req.FirstName, LastName: req.LastName}
	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, authorID)
}

func (s *Service) List(ctx context.Context) ([]Author, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Author{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, authorID string) (*Author, error) {
	a, err := s.store.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, api.ErrNotFound("Author with the specified ID does not exist")
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, authorID string, req UpdateAuthorRequest) (*Author, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, api.ErrInvalid("First name and last name are required")
	}
	n, err := s.store.Update(ctx, authorID, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, api.ErrNotFound("Author with the specified ID does not exist")
	}
	return s.store.GetByID(ctx, authorID)
}

func (s *Service) Delete(ctx context.Context, authorID string) error {
	n, err := s.store.Delete(ctx, authorID)
	if err != nil {
		return err
	}
	if n == 0 {
		return api.ErrNotFound("Author with the specified ID does not exist")
	}
	return nil
}
