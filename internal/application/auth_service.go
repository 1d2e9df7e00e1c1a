package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// CredentialStore exposes the credential lookup the auth service needs.
type CredentialStore interface {
	GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService coordinates login, signup, and token refresh.
//
// Accounts are seeded, not registered: login succeeds only for the credential
// pairs in the store, and the requested role is stamped onto the returned
// identity rather than checked against it. Signup fabricates an identity
// without persisting anything.
type AuthService struct {
	credentials    CredentialStore
	verifyPassword PasswordVerifier
	tokens         *TokenIssuer
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(credentials CredentialStore, verify PasswordVerifier, tokens *TokenIssuer, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(credentials, verify, tokens, now, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(credentials CredentialStore, verify PasswordVerifier, tokens *TokenIssuer, now func() time.Time, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		credentials:    credentials,
		verifyPassword: verify,
		tokens:         tokens,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login validates a credential pair and issues a fresh token. The role from
// the request is stamped onto the identity.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}
	if s.tokens == nil {
		err = fmt.Errorf("token issuer not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "Login",
		"email", email,
		"role", string(params.Role),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.Identity.ID).InfoContext(ctx, "login succeeded")
	}()

	validation := &ValidationError{}
	if email == "" {
		validation.add("email", "email is required")
	}
	if params.Password == "" {
		validation.add("password", "password is required")
	}
	if !params.Role.Valid() {
		validation.add("role", "role must be seeker or counsellor")
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	var creds Credentials
	creds, err = s.credentials.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
			return
		}
		return
	}

	if err = s.verifyPassword(creds.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	identity := creds.Identity
	identity.Role = params.Role

	var token string
	token, err = s.tokens.Issue(identity)
	if err != nil {
		return
	}

	result = AuthResult{Identity: identity, Token: token}
	return
}

// Signup fabricates a new identity and issues a token for it. Nothing is
// persisted, so any well-formed request succeeds and duplicate emails are
// not detected.
func (s *AuthService) Signup(ctx context.Context, params SignupParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.tokens == nil {
		err = fmt.Errorf("token issuer not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	name := strings.TrimSpace(params.Name)

	logger := s.loggerWith(ctx, "Signup",
		"email", email,
		"role", string(params.Role),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "signup failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.Identity.ID).InfoContext(ctx, "signup succeeded")
	}()

	validation := &ValidationError{}
	if email == "" {
		validation.add("email", "email is required")
	}
	if params.Password == "" {
		validation.add("password", "password is required")
	}
	if name == "" {
		validation.add("name", "name is required")
	}
	if !params.Role.Valid() {
		validation.add("role", "role must be seeker or counsellor")
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	id := strconv.FormatInt(s.now().UnixMilli(), 10)
	identity := Identity{
		ID:     id,
		Email:  email,
		Name:   name,
		Role:   params.Role,
		Avatar: fmt.Sprintf("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face&random=%s", id),
	}

	var token string
	token, err = s.tokens.Issue(identity)
	if err != nil {
		return
	}

	result = AuthResult{Identity: identity, Token: token}
	return
}

// Refresh issues a fresh token for an already-known identity. Callers pass
// the identity restored from the session cache; an empty identity means
// there is no session to refresh.
func (s *AuthService) Refresh(ctx context.Context, identity Identity) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.tokens == nil {
		err = fmt.Errorf("token issuer not configured")
		return
	}

	logger := s.loggerWith(ctx, "Refresh", "user_id", identity.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "token refresh failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "token refreshed")
	}()

	if identity.ID == "" {
		err = ErrNoActiveSession
		return
	}

	var token string
	token, err = s.tokens.Issue(identity)
	if err != nil {
		return
	}

	result = AuthResult{Identity: identity, Token: token}
	return
}
