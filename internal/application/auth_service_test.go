package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type credentialStoreStub struct {
	credentials map[string]Credentials
	err         error
}

func (s *credentialStoreStub) GetCredentialsByEmail(_ context.Context, email string) (Credentials, error) {
	if s.err != nil {
		return Credentials{}, s.err
	}
	creds, ok := s.credentials[email]
	if !ok {
		return Credentials{}, ErrNotFound
	}
	return creds, nil
}

func plainTextVerifier(hashedPassword, password string) error {
	if hashedPassword == password {
		return nil
	}
	return ErrInvalidCredentials
}

func seededCredentials() *credentialStoreStub {
	return &credentialStoreStub{credentials: map[string]Credentials{
		"user@test.com": {
			Identity:     Identity{ID: "1", Email: "user@test.com", Name: "John Doe"},
			PasswordHash: "password",
		},
		"counsellor@test.com": {
			Identity:     Identity{ID: "2", Email: "counsellor@test.com", Name: "Dr. Sarah Johnson"},
			PasswordHash: "password",
		},
	}}
}

func newTestIssuer(now func() time.Time) *TokenIssuer {
	jti := 0
	return NewTokenIssuer("test-secret", time.Hour, now, func() string {
		jti++
		return "jti-" + strconv.Itoa(jti)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }

	t.Run("issues a token and stamps the requested role", func(t *testing.T) {
		t.Parallel()

		issuer := newTestIssuer(now)
		svc := NewAuthService(seededCredentials(), plainTextVerifier, issuer, now)

		result, err := svc.Login(context.Background(), LoginParams{
			Email:    " User@Test.com ",
			Password: "password",
			Role:     RoleCounsellor,
		})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.Identity.ID != "1" || result.Identity.Name != "John Doe" {
			t.Fatalf("unexpected identity: %#v", result.Identity)
		}
		if result.Identity.Role != RoleCounsellor {
			t.Fatalf("expected requested role to be stamped, got %s", result.Identity.Role)
		}
		if result.Token == "" {
			t.Fatal("expected a token to be issued")
		}

		principal, err := issuer.Verify(result.Token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if principal.UserID != "1" || principal.Role != RoleCounsellor {
			t.Fatalf("unexpected principal: %#v", principal)
		}
	})

	t.Run("issues distinct tokens for successive logins", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		first, err := svc.Login(context.Background(), LoginParams{Email: "user@test.com", Password: "password", Role: RoleSeeker})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		second, err := svc.Login(context.Background(), LoginParams{Email: "user@test.com", Password: "password", Role: RoleSeeker})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if first.Token == second.Token {
			t.Fatal("expected distinct tokens for logins at the same instant")
		}
	})

	t.Run("rejects unknown emails with the credentials sentinel", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Login(context.Background(), LoginParams{Email: "stranger@test.com", Password: "password", Role: RoleSeeker})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects wrong passwords with the credentials sentinel", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Login(context.Background(), LoginParams{Email: "user@test.com", Password: "wrong", Role: RoleSeeker})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("reports field errors for incomplete requests", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Login(context.Background(), LoginParams{Role: Role("admin")})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"email", "password", "role"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %#v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("boom")
		svc := NewAuthService(&credentialStoreStub{err: expected}, plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Login(context.Background(), LoginParams{Email: "user@test.com", Password: "password", Role: RoleSeeker})
		if !errors.Is(err, expected) {
			t.Fatalf("expected error %v, got %v", expected, err)
		}
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }

	t.Run("fabricates an identity keyed by the clock", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		result, err := svc.Signup(context.Background(), SignupParams{
			Email:    "New@Example.com",
			Password: "secret",
			Name:     " Alex Smith ",
			Role:     RoleSeeker,
		})
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}

		wantID := strconv.FormatInt(now().UnixMilli(), 10)
		if result.Identity.ID != wantID {
			t.Fatalf("expected id %s, got %s", wantID, result.Identity.ID)
		}
		if result.Identity.Email != "new@example.com" || result.Identity.Name != "Alex Smith" {
			t.Fatalf("unexpected identity: %#v", result.Identity)
		}
		if result.Identity.Avatar == "" {
			t.Fatal("expected a generated avatar URL")
		}
		if result.Token == "" {
			t.Fatal("expected a token to be issued")
		}
	})

	t.Run("accepts an email that already exists", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		if _, err := svc.Signup(context.Background(), SignupParams{
			Email:    "user@test.com",
			Password: "another",
			Name:     "Second John",
			Role:     RoleSeeker,
		}); err != nil {
			t.Fatalf("expected duplicate email to be accepted, got %v", err)
		}
	})

	t.Run("reports field errors for incomplete requests", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Signup(context.Background(), SignupParams{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"email", "password", "name", "role"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %#v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }

	t.Run("issues a fresh token for a cached identity", func(t *testing.T) {
		t.Parallel()

		issuer := newTestIssuer(now)
		svc := NewAuthService(seededCredentials(), plainTextVerifier, issuer, now)

		identity := Identity{ID: "1", Email: "user@test.com", Name: "John Doe", Role: RoleSeeker}
		result, err := svc.Refresh(context.Background(), identity)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if result.Identity != identity {
			t.Fatalf("expected the same identity back, got %#v", result.Identity)
		}

		principal, err := issuer.Verify(result.Token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if principal.UserID != "1" {
			t.Fatalf("unexpected principal: %#v", principal)
		}
	})

	t.Run("fails without a cached identity", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededCredentials(), plainTextVerifier, newTestIssuer(now), now)

		_, err := svc.Refresh(context.Background(), Identity{})
		if !errors.Is(err, ErrNoActiveSession) {
			t.Fatalf("expected ErrNoActiveSession, got %v", err)
		}
	})
}
