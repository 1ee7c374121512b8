package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/auth"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	nameRegex     = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
)

const sessionTTL = time.Hour

type Service struct {
	store  UserStore
	secret []byte
}

func NewService(db *sql.DB, secret []byte) *Service {
	return &Service{store: NewStore(db), secret: secret}
}

func (s *Service) validate(firstName, lastName, email, username, password string) error {
	if firstName == "" || lastName == "" || email == "" || username == "" || password == "" {
		return api.ErrInvalid("All fields are required")
	}
	if !nameRegex.MatchString(firstName) || !nameRegex.MatchString(lastName) {
		return api.ErrInvalid("Invalid name")
	}
	if !usernameRegex.MatchString(username) {
		return api.ErrInvalid("Invalid username")
	}
	if !emailRegex.MatchString(email) {
		return api.ErrInvalid("Invalid email")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := s.validate(req.FirstName, req.LastName, req.Email, req.Username, req.Password); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, api.ErrConflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, api.ErrConflict("User already exists")
		}
		return nil, err
	}
	return s.store.GetByUsername(ctx, req.Username)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound("No Users found")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, username string) (*User, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, api.ErrNotFound("User with the specified ID does not exist")
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, username string, req UpdateUserRequest) error {
	if err := s.validate(req.FirstName, req.LastName, req.Email, req.Username, req.Password); err != nil {
		return err
	}
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return api.ErrNotFound("User with the specified ID does not exist")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email
	u.Username = req.Username
	u.PasswordHash = string(hash)

	if _, err := s.store.Update(ctx, username, u); err != nil {
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, username string) error {
	n, err := s.store.Delete(ctx, username)
	if err != nil {
		return err
	}
	if n == 0 {
		return api.ErrNotFound("User with the specified ID does not exist")
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, api.ErrInvalid("All fields are required")
	}
	u, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, api.ErrNotFound("User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, api.ErrUnauthorized("Invalid password")
	}

	token, err := auth.GenerateToken(s.secret, u.Username, u.IsAdmin, sessionTTL)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Username: u.Username, IsAdmin: u.IsAdmin, Token: token}, nil
}

// Logout hands back an already-expired token. Stateless JWTs cannot be
// revoked server-side, so this only helps clients that swap their stored
// token for the dead one.
func (s *Service) Logout(ctx context.Context, req LogoutRequest) (*SessionResponse, error) {
	if req.Username == "" {
		return nil, api.ErrInvalid("Username is required")
	}
	u, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, api.ErrNotFound("User not found")
	}

	token, err := auth.GenerateToken(s.secret, u.Username, u.IsAdmin, time.Second)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Username: u.Username, IsAdmin: u.IsAdmin, Token: token}, nil
}
