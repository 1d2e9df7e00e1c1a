package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/mindease/internal/application"
)

type authServiceStub struct {
	result application.AuthResult
	err    error
}

func (s *authServiceStub) Login(_ context.Context, _ application.LoginParams) (application.AuthResult, error) {
	return s.result, s.err
}

func (s *authServiceStub) Signup(_ context.Context, _ application.SignupParams) (application.AuthResult, error) {
	return s.result, s.err
}

func (s *authServiceStub) Refresh(_ context.Context, identity application.Identity) (application.AuthResult, error) {
	if s.err != nil {
		return application.AuthResult{}, s.err
	}
	if identity.ID == "" {
		return application.AuthResult{}, application.ErrNoActiveSession
	}
	return application.AuthResult{Identity: identity, Token: s.result.Token}, nil
}

type sessionCacheStub struct {
	identity application.Identity
	token    string
	active   bool

	logoutCalls int
}

func (s *sessionCacheStub) Set(_ context.Context, identity application.Identity, token string) error {
	s.identity = identity
	s.token = token
	s.active = true
	return nil
}

func (s *sessionCacheStub) Current() (application.Identity, bool) {
	return s.identity, s.active
}

func (s *sessionCacheStub) Logout(_ context.Context) error {
	s.logoutCalls++
	s.identity = application.Identity{}
	s.token = ""
	s.active = false
	return nil
}

type directoryServiceStub struct {
	counsellors []application.Counsellor
	filter      application.CounsellorFilter
	err         error
}

func (s *directoryServiceStub) ListCounsellors(_ context.Context, filter application.CounsellorFilter) ([]application.Counsellor, error) {
	s.filter = filter
	return s.counsellors, s.err
}

func (s *directoryServiceStub) GetCounsellor(_ context.Context, id string) (application.Counsellor, error) {
	if s.err != nil {
		return application.Counsellor{}, s.err
	}
	for _, c := range s.counsellors {
		if c.ID == id {
			return c, nil
		}
	}
	return application.Counsellor{}, application.ErrNotFound
}

type bookingServiceStub struct {
	bookings []application.Booking
	created  application.Booking
	summary  application.EarningsSummary
	err      error
}

func (s *bookingServiceStub) ListForPrincipal(_ context.Context, _ application.Principal) ([]application.Booking, error) {
	return s.bookings, s.err
}

func (s *bookingServiceStub) Create(_ context.Context, _ application.CreateBookingParams) (application.Booking, error) {
	return s.created, s.err
}

func (s *bookingServiceStub) Earnings(_ context.Context, _ application.Principal) (application.EarningsSummary, error) {
	return s.summary, s.err
}

type contentServiceStub struct {
	resources []application.Resource
	err       error
}

func (s *contentServiceStub) ListResources(_ context.Context, _ application.ResourceFilter) ([]application.Resource, error) {
	return s.resources, s.err
}

func (s *contentServiceStub) GetResource(_ context.Context, id string) (application.Resource, error) {
	if s.err != nil {
		return application.Resource{}, s.err
	}
	for _, res := range s.resources {
		if res.ID == id {
			return res, nil
		}
	}
	return application.Resource{}, application.ErrNotFound
}

type journalServiceStub struct {
	entries []application.JournalEntry
	saved   application.JournalEntry
	err     error

	lastUpdate application.UpdateJournalEntryParams
}

func (s *journalServiceStub) List(_ context.Context, _ application.Principal) ([]application.JournalEntry, error) {
	return s.entries, s.err
}

func (s *journalServiceStub) Create(_ context.Context, _ application.CreateJournalEntryParams) (application.JournalEntry, error) {
	return s.saved, s.err
}

func (s *journalServiceStub) Update(_ context.Context, params application.UpdateJournalEntryParams) (application.JournalEntry, error) {
	s.lastUpdate = params
	return s.saved, s.err
}

func (s *journalServiceStub) Delete(_ context.Context, _ application.Principal, _ string) error {
	return s.err
}

// withPrincipal injects a fixed principal, standing in for RequireSession.
func withPrincipal(principal application.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestAuthHandlers(t *testing.T) {
	t.Parallel()

	identity := application.Identity{ID: "1", Email: "user@test.com", Name: "John Doe", Role: application.RoleSeeker}

	t.Run("login returns the identity and caches the session", func(t *testing.T) {
		t.Parallel()

		cache := &sessionCacheStub{}
		svc := &authServiceStub{result: application.AuthResult{Identity: identity, Token: "token-1"}}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(svc, cache, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"user@test.com","password":"password","role":"seeker"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}

		var resp authResponse
		decodeBody(t, recorder, &resp)
		if resp.User.ID != "1" || resp.Token != "token-1" {
			t.Fatalf("unexpected response: %#v", resp)
		}
		if !cache.active || cache.token != "token-1" {
			t.Fatal("expected the session to be cached")
		}
	})

	t.Run("login maps invalid credentials to 401", func(t *testing.T) {
		t.Parallel()

		svc := &authServiceStub{err: application.ErrInvalidCredentials}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(svc, &sessionCacheStub{}, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"x@test.com","password":"nope","role":"seeker"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}

		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.ErrorCode != "AUTH_INVALID_CREDENTIALS" {
			t.Fatalf("unexpected error code: %q", resp.ErrorCode)
		}
	})

	t.Run("login rejects malformed bodies", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Auth: NewAuthHandler(&authServiceStub{}, &sessionCacheStub{}, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{not json`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("signup returns 201 with the fabricated identity", func(t *testing.T) {
		t.Parallel()

		cache := &sessionCacheStub{}
		svc := &authServiceStub{result: application.AuthResult{Identity: identity, Token: "token-2"}}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(svc, cache, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"new@test.com","password":"pw","name":"New","role":"seeker"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}
		if !cache.active {
			t.Fatal("expected the session to be cached")
		}
	})

	t.Run("refresh without a cached session maps to 401", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Auth: NewAuthHandler(&authServiceStub{}, &sessionCacheStub{}, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("refresh re-caches the rotated token", func(t *testing.T) {
		t.Parallel()

		cache := &sessionCacheStub{identity: identity, token: "old-token", active: true}
		svc := &authServiceStub{result: application.AuthResult{Token: "new-token"}}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(svc, cache, nil)})

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		if cache.token != "new-token" {
			t.Fatalf("expected the new token to be cached, got %q", cache.token)
		}
	})

	t.Run("logout clears the session and returns 204", func(t *testing.T) {
		t.Parallel()

		cache := &sessionCacheStub{identity: identity, token: "token-1", active: true}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(&authServiceStub{}, cache, nil)})

		req := httptest.NewRequest(http.MethodDelete, "/auth/session", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if cache.active || cache.logoutCalls != 1 {
			t.Fatalf("expected one logout call clearing the cache, got %#v", cache)
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Auth: NewAuthHandler(&authServiceStub{}, &sessionCacheStub{}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", recorder.Code)
		}
	})
}

func TestCounsellorHandlers(t *testing.T) {
	t.Parallel()

	counsellors := []application.Counsellor{
		{ID: "1", Name: "Dr. Sarah Johnson", PricePerSession: 80},
		{ID: "2", Name: "Michael Chen", PricePerSession: 90},
	}

	t.Run("list parses query filters", func(t *testing.T) {
		t.Parallel()

		stub := &directoryServiceStub{counsellors: counsellors}
		router := NewRouter(RouterConfig{Counsellors: NewCounsellorHandler(stub, nil)})

		req := httptest.NewRequest(http.MethodGet, "/counsellors?specialization=anxiety&ageGroup=adults&maxPrice=85", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if stub.filter.Specialization != "anxiety" || stub.filter.AgeGroup != "adults" {
			t.Fatalf("unexpected filter: %#v", stub.filter)
		}
		if stub.filter.MaxPrice == nil || *stub.filter.MaxPrice != 85 {
			t.Fatalf("expected maxPrice 85, got %#v", stub.filter.MaxPrice)
		}
	})

	t.Run("list rejects a non-numeric maxPrice", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Counsellors: NewCounsellorHandler(&directoryServiceStub{}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/counsellors?maxPrice=cheap", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
	})

	t.Run("get returns the profile from the path id", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Counsellors: NewCounsellorHandler(&directoryServiceStub{counsellors: counsellors}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/counsellors/2", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp counsellorDTO
		decodeBody(t, recorder, &resp)
		if resp.Name != "Michael Chen" {
			t.Fatalf("unexpected counsellor: %#v", resp)
		}
	})

	t.Run("get maps unknown ids to 404", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Counsellors: NewCounsellorHandler(&directoryServiceStub{counsellors: counsellors}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/counsellors/999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})
}

func TestBookingHandlers(t *testing.T) {
	t.Parallel()

	seeker := application.Principal{UserID: "1", Name: "John Doe", Role: application.RoleSeeker}
	counsellor := application.Principal{UserID: "2", Name: "Dr. Sarah Johnson", Role: application.RoleCounsellor}

	t.Run("list returns the caller's sessions", func(t *testing.T) {
		t.Parallel()

		stub := &bookingServiceStub{bookings: []application.Booking{{ID: "b1", SeekerID: "1", Status: application.BookingUpcoming}}}
		router := NewRouter(RouterConfig{
			Bookings:   NewBookingHandler(stub, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp []bookingDTO
		decodeBody(t, recorder, &resp)
		if len(resp) != 1 || resp[0].ID != "b1" || resp[0].UserID != "1" {
			t.Fatalf("unexpected bookings: %#v", resp)
		}
	})

	t.Run("create returns 201 with the booked session", func(t *testing.T) {
		t.Parallel()

		stub := &bookingServiceStub{created: application.Booking{ID: "b2", Status: application.BookingUpcoming, DurationMinutes: 60}}
		router := NewRouter(RouterConfig{
			Bookings:   NewBookingHandler(stub, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"counsellorId":"1","date":"2024-02-01","time":"10:00"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}

		var resp bookingDTO
		decodeBody(t, recorder, &resp)
		if resp.ID != "b2" || resp.Status != "upcoming" || resp.Duration != 60 {
			t.Fatalf("unexpected booking: %#v", resp)
		}
	})

	t.Run("create maps validation failures to 422", func(t *testing.T) {
		t.Parallel()

		vErr := &application.ValidationError{FieldErrors: map[string]string{"date": "date is required"}}
		router := NewRouter(RouterConfig{
			Bookings:   NewBookingHandler(&bookingServiceStub{err: vErr}, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"counsellorId":"1"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}

		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.Errors["date"] != "date is required" {
			t.Fatalf("unexpected errors: %#v", resp.Errors)
		}
	})

	t.Run("earnings requires the counsellor role", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{
			Bookings:   NewBookingHandler(&bookingServiceStub{}, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodGet, "/earnings", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", recorder.Code)
		}
	})

	t.Run("earnings returns the summary for counsellors", func(t *testing.T) {
		t.Parallel()

		stub := &bookingServiceStub{summary: application.EarningsSummary{TotalEarned: 160, CompletedSessions: 2, UpcomingSessions: 1}}
		router := NewRouter(RouterConfig{
			Bookings:   NewBookingHandler(stub, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(counsellor)},
		})

		req := httptest.NewRequest(http.MethodGet, "/earnings", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp earningsDTO
		decodeBody(t, recorder, &resp)
		if resp.TotalEarned != 160 || resp.CompletedSessions != 2 || resp.UpcomingSessions != 1 {
			t.Fatalf("unexpected summary: %#v", resp)
		}
	})
}

func TestResourceHandlers(t *testing.T) {
	t.Parallel()

	readTime := 8
	resources := []application.Resource{
		{ID: "1", Title: "Understanding Anxiety", Type: application.ResourceArticle, ReadTimeMinutes: &readTime},
	}

	t.Run("list returns library items", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Resources: NewResourceHandler(&contentServiceStub{resources: resources}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/resources?category=anxiety&type=article&difficulty=beginner", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp []resourceDTO
		decodeBody(t, recorder, &resp)
		if len(resp) != 1 || resp[0].ReadTime == nil || *resp[0].ReadTime != 8 {
			t.Fatalf("unexpected resources: %#v", resp)
		}
	})

	t.Run("get maps unknown ids to 404", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{Resources: NewResourceHandler(&contentServiceStub{resources: resources}, nil)})

		req := httptest.NewRequest(http.MethodGet, "/resources/999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})
}

func TestJournalHandlers(t *testing.T) {
	t.Parallel()

	seeker := application.Principal{UserID: "1", Name: "John Doe", Role: application.RoleSeeker}

	t.Run("create returns 201 with the stored entry", func(t *testing.T) {
		t.Parallel()

		stub := &journalServiceStub{saved: application.JournalEntry{ID: "e1", OwnerID: "1", Title: "A good day", Private: true}}
		router := NewRouter(RouterConfig{
			Journal:    NewJournalHandler(stub, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodPost, "/journal", strings.NewReader(`{"title":"A good day","content":"...","mood":"happy","isPrivate":true}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}

		var resp journalEntryDTO
		decodeBody(t, recorder, &resp)
		if resp.ID != "e1" || resp.UserID != "1" || !resp.IsPrivate {
			t.Fatalf("unexpected entry: %#v", resp)
		}
	})

	t.Run("update forwards only the provided fields as a patch", func(t *testing.T) {
		t.Parallel()

		stub := &journalServiceStub{saved: application.JournalEntry{ID: "e1", OwnerID: "1"}}
		router := NewRouter(RouterConfig{
			Journal:    NewJournalHandler(stub, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodPut, "/journal/e1", strings.NewReader(`{"mood":"sad"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if stub.lastUpdate.EntryID != "e1" {
			t.Fatalf("expected entry id from the path, got %q", stub.lastUpdate.EntryID)
		}
		if stub.lastUpdate.Patch.Mood == nil || *stub.lastUpdate.Patch.Mood != application.MoodSad {
			t.Fatalf("expected mood patch, got %#v", stub.lastUpdate.Patch)
		}
		if stub.lastUpdate.Patch.Title != nil || stub.lastUpdate.Patch.Content != nil || stub.lastUpdate.Patch.Private != nil {
			t.Fatalf("expected absent fields to stay nil, got %#v", stub.lastUpdate.Patch)
		}
	})

	t.Run("update by a non-owner maps to 403", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{
			Journal:    NewJournalHandler(&journalServiceStub{err: application.ErrUnauthorized}, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodPut, "/journal/e1", strings.NewReader(`{"title":"x"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", recorder.Code)
		}
	})

	t.Run("delete returns 204", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{
			Journal:    NewJournalHandler(&journalServiceStub{}, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodDelete, "/journal/e1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
	})

	t.Run("delete of an unknown entry maps to 404", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(RouterConfig{
			Journal:    NewJournalHandler(&journalServiceStub{err: application.ErrNotFound}, nil),
			Middleware: []func(http.Handler) http.Handler{withPrincipal(seeker)},
		})

		req := httptest.NewRequest(http.MethodDelete, "/journal/missing", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})
}
