package user

import (
	"context"
	"time"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

type Service struct {
	repo       Repository
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewService(repo Repository, tokens *auth.TokenManager, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// CreateInput holds the fields required to create an account, via
// self-registration or by an admin.
type CreateInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (in CreateInput) validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return apperror.Validation("name, email, password, and role are required", missing...)
	}
	if _, err := auth.ParseRole(in.Role); err != nil {
		return apperror.Validation("role must be one of provider, scribe, biller, admin", "role")
	}
	return nil
}

// Create validates the input, hashes the password, and persists the user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	role, _ := auth.ParseRole(in.Role)

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates the account and issues an access token in one step.
func (s *Service) Register(ctx context.Context, in CreateInput) (*User, string, time.Time, error) {
	u, err := s.Create(ctx, in)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.Issue(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, expiresAt, nil
}

// Login checks the credentials and issues an access token. Unknown email and
// wrong password produce the same error so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperror.Validation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, "", time.Time{}, apperror.Unauthenticated("invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, "", time.Time{}, apperror.Unauthenticated("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, expiresAt, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies a partial update. Role handling is the caller's concern:
// the handler must have already authorized any role change.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.ChangesRole() {
		role, err := auth.ParseRole(string(*patch.Role))
		if err != nil {
			return nil, apperror.Validation("role must be one of provider, scribe, biller, admin", "role")
		}
		u.Role = role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
