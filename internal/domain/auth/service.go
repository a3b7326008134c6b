package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"larder/internal/core/apperror"
	"larder/internal/core/tx"
	"larder/pkg/logger"
)

const (
	maxFailedAttempts = 5
	lockDuration      = 15 * time.Minute
	minPasswordLen    = 8
)

// Service provides authentication operations.
type Service struct {
	repo      Repository
	jwt       *JWTService
	txManager tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		jwt:       jwtService,
		txManager: txManager,
	}
}

// Login verifies credentials and issues an access token.
// Failed attempts are counted; the account locks after too many.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same error as a wrong password, never reveal which
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		user.RecordFailedLogin(maxFailedAttempts, lockDuration)
		if uerr := s.saveLoginState(ctx, user); uerr != nil {
			logger.Error(ctx, "save failed login state", "user_id", user.ID.String(), "error", uerr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if uerr := s.saveLoginState(ctx, user); uerr != nil {
		logger.Error(ctx, "save login state", "user_id", user.ID.String(), "error", uerr)
	}

	tokenString, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID.String(), "email", user.Email)
	return &Token{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, email, password, name, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < minPasswordLen {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	if role == "" {
		role = RoleStaff
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(email, string(hash), strings.TrimSpace(name), role)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByEmail(ctx, email)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewDuplicate("user", "email", email)
		}
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID.String(), "email", user.Email, "role", user.Role)
	return user, nil
}

// ValidateToken parses and verifies an access token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	uc, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	return &Claims{
		UserID: uc.UserID,
		Email:  uc.Email,
		Name:   uc.Name,
		Role:   uc.Role,
	}, nil
}

func (s *Service) saveLoginState(ctx context.Context, u *User) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, u)
	})
}
