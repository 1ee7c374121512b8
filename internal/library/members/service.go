package members

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	mysql "github.com/go-sql-driver/mysql"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/idgen"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type Service struct {
	store MemberStore
	id    *idgen.Generator
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db), id: idgen.New()}
}

func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.PhoneNumber == "" {
		return nil, api.ErrInvalid("All fields are required")
	}
	if !nameRegex.MatchString(req.FirstName) || !nameRegex.MatchString(req.LastName) {
		return nil, api.ErrInvalid("Invalid name")
	}

	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, api.ErrConflict("Member already exists")
	}

	memberID, err := s.id.Next(ctx, idgen.PrefixMember, s.store.Exists)
	if err != nil {
		return nil, err
	}

	m := &Member{
		MemberID:    memberID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.store.Insert(ctx, m); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, api.ErrConflict("Member already exists")
		}
		return nil, err
	}
	return s.store.GetByID(ctx, memberID)
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Members found")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, memberID string) (*Member, error) {
	m, err := s.store.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, api.ErrNotFound("Member with the specified ID does not exist")
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, memberID string, req UpdateMemberRequest) (*Member, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.PhoneNumber == "" {
		return nil, api.ErrInvalid("All fields are required")
	}
	n, err := s.store.Update(ctx, memberID, req)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, api.ErrConflict("Member already exists")
		}
		return nil, err
	}
	if n == 0 {
		return nil, api.ErrNotFound("Member with the specified ID does not exist")
	}
	return s.store.GetByID(ctx, memberID)
}

func (s *Service) Delete(ctx context.Context, memberID string) error {
	n, err := s.store.Delete(ctx, memberID)
	if err != nil {
		return err
	}
	if n == 0 {
		return api.ErrNotFound("Member with the specified ID does not exist")
	}
	return nil
}
