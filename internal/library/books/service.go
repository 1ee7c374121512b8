package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
)

const dateLayout = "2006-01-02"

type Service struct {
	store BookStore
}

func NewService(db *sql.DB) *Service { return &Service{store: NewStore(db)} }

func (s *Service) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	if req.Title == "" || req.AuthorID == "" || req.ISBN == "" || req.PublishedDate == "" {
		return nil, api.ErrInvalid("All fields are required")
	}
	if req.Quantity < 0 {
		return nil, api.ErrInvalid("Quantity must not be negative")
	}
	published, err := time.Parse(dateLayout, req.PublishedDate)
	if err != nil {
		return nil, api.ErrInvalid("invalid publishedDate format, expected YYYY-MM-DD")
	}

	ok, err := s.store.AuthorExists(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound(fmt.Sprintf("Author with the authorID: %s does not exist", req.AuthorID))
	}

	existing, err := s.store.GetByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, api.ErrConflict("Book already exists")
	}

	b := &Book{
		ISBN:          req.ISBN,
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		BookImage:     req.BookImage,
		PublishedDate: published,
		Quantity:      req.Quantity,
	}
	if err := s.store.Insert(ctx, b); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, api.ErrConflict("Book already exists")
		}
		return nil, err
	}
	return s.store.GetByISBN(ctx, req.ISBN)
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Books found")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, isbn string) (*Book, error) {
	b, err := s.store.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, api.ErrNotFound("Book with the specified ISBN does not exist")
	}
	return b, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]Book, error) {
	ok, err := s.store.AuthorExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotFound(fmt.Sprintf("Author with the authorID: %s does not exist", authorID))
	}
	out, err := s.store.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Books found")
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, isbn string, req UpdateBookRequest) (*Book, error) {
	if req.Title == "" || req.AuthorID == "" || req.PublishedDate == "" {
		return nil, api.ErrInvalid("All fields are required")
	}
	published, err := time.Parse(dateLayout, req.PublishedDate)
	if err != nil {
		return nil, api.ErrInvalid("invalid publishedDate format, expected YYYY-MM-DD")
	}
	n, err := s.store.UpdateMeta(ctx, isbn, req, published)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1452 {
			return nil, api.ErrNotFound(fmt.Sprintf("Author with the authorID: %s does not exist", req.AuthorID))
		}
		return nil, err
	}
	if n == 0 {
		return nil, api.ErrNotFound("Book with the specified ISBN does not exist")
	}
	return s.store.GetByISBN(ctx, isbn)
}

func (s *Service) Delete(ctx context.Context, isbn string) error {
	n, err := s.store.Delete(ctx, isbn)
	if err != nil {
		return err
	}
	if n == 0 {
		return api.ErrNotFound("Book with the specified ISBN does not exist")
	}
	return nil
}
