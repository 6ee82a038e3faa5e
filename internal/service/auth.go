package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"

	"github.com/arkhipovd/storefront/internal/logging"
	"github.com/arkhipovd/storefront/internal/models"
	"github.com/arkhipovd/storefront/internal/store"
	"github.com/arkhipovd/storefront/internal/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("access denied for this role")
	ErrEmailTaken         = errors.New("user already exists with this email")
)

// AuthService is the session facade: credential checks against the store
// and the current-user marker. Passwords are compared as plain text, a
// deliberately insecure demo contract.
type AuthService struct {
	Store    store.Storage
	Sessions store.SessionState
	Secret   []byte
}

type LoginResult struct {
	User  *models.User
	Token string
}

// Login checks email and password, and the expected role when one is
// given. A role mismatch is reported separately so the HTTP layer can
// answer 403 instead of 401.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if err := validateCredentials(email, password, role); err != nil {
		return nil, err
	}

	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	if role != "" && user.Role != role {
		return nil, ErrRoleMismatch
	}

	token, err := tokens.NewSessionToken(strconv.FormatUint(uint64(user.ID), 10), user.Role, s.Secret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	if err := s.Sessions.SaveSession(ctx, user.ID, token); err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot save session", "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

// Signup creates the account and logs it in, in one step.
func (s *AuthService) Signup(ctx context.Context, data models.InsertUser) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if data.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if data.Role == "" {
		data.Role = models.RoleUser
	}
	if err := validateCredentials(data.Email, data.Password, data.Role); err != nil {
		return nil, err
	}

	if _, err := s.Store.UserByEmail(ctx, data.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		l.Error("signup_failed", "status", 500, "error", err)
		return nil, err
	}

	user, err := s.Store.CreateUser(ctx, data)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	token, err := tokens.NewSessionToken(strconv.FormatUint(uint64(user.ID), 10), user.Role, s.Secret)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	if err := s.Sessions.SaveSession(ctx, user.ID, token); err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot save session", "error", err)
		return nil, err
	}

	l.Info("signup_successful", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.Sessions.ClearSession(ctx)
}

// CurrentUser reads the marker back. An anonymous session is (nil, nil),
// not an error.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, _, err := s.Sessions.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := s.Store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UserFromToken resolves a bearer token to its user, for /api/auth/me.
func (s *AuthService) UserFromToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := tokens.SessionClaimsFromToken(tokenStr, s.Secret)
	if err != nil {
		return nil, tokens.ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, tokens.ErrInvalidToken
	}

	user, err := s.Store.User(ctx, uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, tokens.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func validateCredentials(email, password, role string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if role != "" && role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleUser, models.RoleAdmin)
	}
	return nil
}
