package application

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	identity := Identity{ID: "1", Email: "user@test.com", Name: "John Doe", Role: RoleSeeker}

	t.Run("round-trips the identity claims", func(t *testing.T) {
		t.Parallel()

		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return base }, func() string { return "jti-1" })

		token, err := issuer.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		principal, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		want := Principal{UserID: "1", Name: "John Doe", Email: "user@test.com", Role: RoleSeeker}
		if principal != want {
			t.Fatalf("expected %#v, got %#v", want, principal)
		}
	})

	t.Run("rejects expired tokens with the expiry sentinel", func(t *testing.T) {
		t.Parallel()

		clock := base
		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return clock }, func() string { return "jti-1" })

		token, err := issuer.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		clock = base.Add(2 * time.Hour)
		if _, err := issuer.Verify(token); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects tampered tokens", func(t *testing.T) {
		t.Parallel()

		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return base }, func() string { return "jti-1" })

		token, err := issuer.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		tampered := token[:len(token)-2] + "xx"
		if _, err := issuer.Verify(tampered); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		t.Parallel()

		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return base }, func() string { return "jti-1" })
		other := NewTokenIssuer("different", time.Hour, func() time.Time { return base }, func() string { return "jti-1" })

		token, err := other.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := issuer.Verify(token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("tokens issued at the same instant still differ", func(t *testing.T) {
		t.Parallel()

		jti := 0
		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return base }, func() string {
			jti++
			return strings.Repeat("x", jti)
		})

		first, err := issuer.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		second, err := issuer.Issue(identity)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if first == second {
			t.Fatal("expected distinct tokens")
		}
	})

	t.Run("rejects tokens carrying an unknown role", func(t *testing.T) {
		t.Parallel()

		issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return base }, func() string { return "jti-1" })

		token, err := issuer.Issue(Identity{ID: "1", Role: Role("admin")})
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := issuer.Verify(token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
