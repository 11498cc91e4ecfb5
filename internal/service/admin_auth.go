package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lettertrail/platform/internal/auth"
	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService handles operator login for the admin console.
type AdminAuthService struct {
	db     repository.DBTX
	admins repository.AdminUserRepository
	jwtMgr *auth.JWTManager
}

// NewAdminAuthService creates an AdminAuthService.
func NewAdminAuthService(db repository.DBTX, admins repository.AdminUserRepository, jwtMgr *auth.JWTManager) *AdminAuthService {
	return &AdminAuthService{db: db, admins: admins, jwtMgr: jwtMgr}
}

// AdminLoginInput holds the admin login request fields.
type AdminLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminAuthResult is returned on successful admin login.
type AdminAuthResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login authenticates an operator and returns an admin-realm JWT.
func (s *AdminAuthService) Login(ctx context.Context, input AdminLoginInput) (*AdminAuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrValidation("email and password are required")
	}

	user, err := s.admins.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, domain.ErrInternal("find admin", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmAdmin, user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AdminAuthResult{Token: token, Email: user.Email}, nil
}

// EnsureBootstrapAdmin creates the configured operator account if it does
// not exist yet. No-op when the bootstrap credentials are unset.
func (s *AdminAuthService) EnsureBootstrapAdmin(ctx context.Context, email, password string, logger *slog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.admins.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.ErrInternal("find admin", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.ErrInternal("hash password", err)
	}

	user := &domain.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, s.db, user); err != nil {
		return domain.ErrInternal("create admin", err)
	}

	logger.Info("bootstrap admin created", "email", email)
	return nil
}
