package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/example/mindease/internal/application"
	"github.com/example/mindease/internal/config"
	httptransport "github.com/example/mindease/internal/http"
	"github.com/example/mindease/internal/persistence"
	"github.com/example/mindease/internal/persistence/memory"
	"github.com/example/mindease/internal/persistence/sqlite"
)

// seededPassword is the plaintext behind both demo accounts. It is hashed at
// startup so no argon2 digest ships in the source tree.
const seededPassword = "password"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	passwordHash, err := application.CreatePasswordHash(seededPassword, application.DefaultArgon2idParams)
	if err != nil {
		logger.Error("failed to hash seeded password", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	credentialRepo := memory.NewCredentialRepository(memory.SeedCredentials(passwordHash), cfg.MockLatency)
	counsellorRepo := memory.NewCounsellorRepository(memory.SeedCounsellors(), cfg.MockLatency)
	bookingRepo := memory.NewBookingRepository(memory.SeedBookings(), cfg.MockLatency)
	resourceRepo := memory.NewResourceRepository(memory.SeedResources(), cfg.MockLatency)
	journalRepo := memory.NewJournalRepository(memory.SeedJournalEntries(), cfg.MockLatency)

	credentials := newCredentialStoreAdapter(credentialRepo)
	directory := newCounsellorDirectoryAdapter(counsellorRepo)
	bookings := newBookingRepositoryAdapter(bookingRepo)
	library := newResourceLibraryAdapter(resourceRepo)
	journal := newJournalRepositoryAdapter(journalRepo)

	sessionStore := application.NewSessionStore(newSessionStateStoreAdapter(storage), logger)
	if identity, restored, err := sessionStore.Restore(ctx); err != nil {
		logger.Error("failed to restore session cache", "error", err)
		os.Exit(1)
	} else if restored {
		logger.Info("session cache restored", "user_id", identity.ID)
	}

	tokenIssuer := application.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL, now, idGenerator)

	authService := application.NewAuthServiceWithLogger(credentials, nil, tokenIssuer, now, logger)
	directoryService := application.NewDirectoryServiceWithLogger(directory, logger)
	bookingService := application.NewBookingServiceWithLogger(bookings, directory, idGenerator, now, logger)
	contentService := application.NewContentServiceWithLogger(library, logger)
	journalService := application.NewJournalServiceWithLogger(journal, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:        httptransport.NewAuthHandler(authService, sessionStore, logger),
		Counsellors: httptransport.NewCounsellorHandler(directoryService, logger),
		Bookings:    httptransport.NewBookingHandler(bookingService, logger),
		Resources:   httptransport.NewResourceHandler(contentService, logger),
		Journal:     httptransport.NewJournalHandler(journalService, logger),
		Logger:      logger,
	})

	// Everything under /auth/ operates on the session cache itself, so only
	// the remaining routes demand a verified bearer token.
	protected := httptransport.RequireSession(tokenIssuer, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/auth/") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("mindease API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server encountered error: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// mapNotFound rewrites the storage sentinel into the application one so
// services and handlers never import the persistence package for errors.
func mapNotFound(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrNotFound
	}
	return err
}

type credentialStoreAdapter struct {
	repo persistence.CredentialRepository
}

func newCredentialStoreAdapter(repo persistence.CredentialRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetCredentialsByEmail(ctx context.Context, email string) (application.Credentials, error) {
	stored, err := a.repo.GetCredentialByEmail(ctx, email)
	if err != nil {
		return application.Credentials{}, mapNotFound(err)
	}
	// The stored account carries no role; the auth service stamps the one
	// supplied by the login request.
	return application.Credentials{
		Identity: application.Identity{
			ID:     stored.ID,
			Email:  stored.Email,
			Name:   stored.Name,
			Avatar: stored.Avatar,
		},
		PasswordHash: stored.PasswordHash,
	}, nil
}

type counsellorDirectoryAdapter struct {
	repo persistence.CounsellorRepository
}

func newCounsellorDirectoryAdapter(repo persistence.CounsellorRepository) *counsellorDirectoryAdapter {
	return &counsellorDirectoryAdapter{repo: repo}
}

func (a *counsellorDirectoryAdapter) ListCounsellors(ctx context.Context, filter application.CounsellorFilter) ([]application.Counsellor, error) {
	models, err := a.repo.ListCounsellors(ctx, persistence.CounsellorFilter{
		Specialization: filter.Specialization,
		AgeGroup:       filter.AgeGroup,
		MaxPrice:       cloneFloat(filter.MaxPrice),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	counsellors := make([]application.Counsellor, 0, len(models))
	for _, model := range models {
		counsellors = append(counsellors, toApplicationCounsellor(model))
	}
	return counsellors, nil
}

func (a *counsellorDirectoryAdapter) GetCounsellor(ctx context.Context, id string) (application.Counsellor, error) {
	stored, err := a.repo.GetCounsellor(ctx, id)
	if err != nil {
		return application.Counsellor{}, mapNotFound(err)
	}
	return toApplicationCounsellor(stored), nil
}

type bookingRepositoryAdapter struct {
	repo persistence.BookingRepository
}

func newBookingRepositoryAdapter(repo persistence.BookingRepository) *bookingRepositoryAdapter {
	return &bookingRepositoryAdapter{repo: repo}
}

func (a *bookingRepositoryAdapter) ListBookingsBySeeker(ctx context.Context, seekerID string) ([]application.Booking, error) {
	models, err := a.repo.ListBookingsBySeeker(ctx, seekerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toApplicationBookings(models), nil
}

func (a *bookingRepositoryAdapter) ListBookingsByCounsellor(ctx context.Context, counsellorID string) ([]application.Booking, error) {
	models, err := a.repo.ListBookingsByCounsellor(ctx, counsellorID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toApplicationBookings(models), nil
}

func (a *bookingRepositoryAdapter) CreateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	stored, err := a.repo.CreateBooking(ctx, toPersistenceBooking(booking))
	if err != nil {
		return application.Booking{}, mapNotFound(err)
	}
	return toApplicationBooking(stored), nil
}

type resourceLibraryAdapter struct {
	repo persistence.ResourceRepository
}

func newResourceLibraryAdapter(repo persistence.ResourceRepository) *resourceLibraryAdapter {
	return &resourceLibraryAdapter{repo: repo}
}

func (a *resourceLibraryAdapter) ListResources(ctx context.Context, filter application.ResourceFilter) ([]application.Resource, error) {
	models, err := a.repo.ListResources(ctx, persistence.ResourceFilter{
		Category:   filter.Category,
		Type:       persistence.ResourceType(filter.Type),
		Difficulty: persistence.Difficulty(filter.Difficulty),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	resources := make([]application.Resource, 0, len(models))
	for _, model := range models {
		resources = append(resources, toApplicationResource(model))
	}
	return resources, nil
}

func (a *resourceLibraryAdapter) GetResource(ctx context.Context, id string) (application.Resource, error) {
	stored, err := a.repo.GetResource(ctx, id)
	if err != nil {
		return application.Resource{}, mapNotFound(err)
	}
	return toApplicationResource(stored), nil
}

type journalRepositoryAdapter struct {
	repo persistence.JournalRepository
}

func newJournalRepositoryAdapter(repo persistence.JournalRepository) *journalRepositoryAdapter {
	return &journalRepositoryAdapter{repo: repo}
}

func (a *journalRepositoryAdapter) ListEntriesByOwner(ctx context.Context, ownerID string) ([]application.JournalEntry, error) {
	models, err := a.repo.ListEntriesByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	entries := make([]application.JournalEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, toApplicationJournalEntry(model))
	}
	return entries, nil
}

func (a *journalRepositoryAdapter) GetEntry(ctx context.Context, id string) (application.JournalEntry, error) {
	stored, err := a.repo.GetEntry(ctx, id)
	if err != nil {
		return application.JournalEntry{}, mapNotFound(err)
	}
	return toApplicationJournalEntry(stored), nil
}

func (a *journalRepositoryAdapter) CreateEntry(ctx context.Context, entry application.JournalEntry) (application.JournalEntry, error) {
	stored, err := a.repo.CreateEntry(ctx, toPersistenceJournalEntry(entry))
	if err != nil {
		return application.JournalEntry{}, mapNotFound(err)
	}
	return toApplicationJournalEntry(stored), nil
}

func (a *journalRepositoryAdapter) UpdateEntry(ctx context.Context, entry application.JournalEntry) (application.JournalEntry, error) {
	stored, err := a.repo.UpdateEntry(ctx, toPersistenceJournalEntry(entry))
	if err != nil {
		return application.JournalEntry{}, mapNotFound(err)
	}
	return toApplicationJournalEntry(stored), nil
}

func (a *journalRepositoryAdapter) DeleteEntry(ctx context.Context, id string) error {
	return mapNotFound(a.repo.DeleteEntry(ctx, id))
}

type sessionStateStoreAdapter struct {
	store persistence.SessionStateStore
}

func newSessionStateStoreAdapter(store persistence.SessionStateStore) *sessionStateStoreAdapter {
	return &sessionStateStoreAdapter{store: store}
}

func (a *sessionStateStoreAdapter) SaveSessionState(ctx context.Context, token string, identity []byte) error {
	return a.store.SaveSessionState(ctx, persistence.SessionState{Token: token, Identity: identity})
}

func (a *sessionStateStoreAdapter) LoadSessionState(ctx context.Context) (string, []byte, error) {
	state, err := a.store.LoadSessionState(ctx)
	if err != nil {
		return "", nil, mapNotFound(err)
	}
	return state.Token, state.Identity, nil
}

func (a *sessionStateStoreAdapter) ClearSessionState(ctx context.Context) error {
	return a.store.ClearSessionState(ctx)
}

func toApplicationCounsellor(model persistence.Counsellor) application.Counsellor {
	return application.Counsellor{
		ID:              model.ID,
		Name:            model.Name,
		Avatar:          model.Avatar,
		Specializations: append([]string(nil), model.Specializations...),
		AgeGroups:       append([]string(nil), model.AgeGroups...),
		PricePerSession: model.PricePerSession,
		Rating:          model.Rating,
		TotalSessions:   model.TotalSessions,
		Bio:             model.Bio,
		Availability:    append([]string(nil), model.Availability...),
		Verified:        model.Verified,
	}
}

func toApplicationBookings(models []persistence.Booking) []application.Booking {
	if len(models) == 0 {
		return nil
	}
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:              model.ID,
		CounsellorID:    model.CounsellorID,
		CounsellorName:  model.CounsellorName,
		SeekerID:        model.SeekerID,
		SeekerName:      model.SeekerName,
		Date:            model.Date,
		Time:            model.Time,
		DurationMinutes: model.DurationMinutes,
		Status:          application.BookingStatus(model.Status),
		Notes:           cloneString(model.Notes),
		Rating:          cloneInt(model.Rating),
		Feedback:        cloneString(model.Feedback),
	}
}

func toPersistenceBooking(booking application.Booking) persistence.Booking {
	return persistence.Booking{
		ID:              booking.ID,
		CounsellorID:    booking.CounsellorID,
		CounsellorName:  booking.CounsellorName,
		SeekerID:        booking.SeekerID,
		SeekerName:      booking.SeekerName,
		Date:            booking.Date,
		Time:            booking.Time,
		DurationMinutes: booking.DurationMinutes,
		Status:          persistence.BookingStatus(booking.Status),
		Notes:           cloneString(booking.Notes),
		Rating:          cloneInt(booking.Rating),
		Feedback:        cloneString(booking.Feedback),
	}
}

func toApplicationResource(model persistence.Resource) application.Resource {
	return application.Resource{
		ID:              model.ID,
		Title:           model.Title,
		Description:     model.Description,
		Type:            application.ResourceType(model.Type),
		Category:        model.Category,
		DurationMinutes: cloneInt(model.DurationMinutes),
		ReadTimeMinutes: cloneInt(model.ReadTimeMinutes),
		Author:          model.Author,
		PublishedDate:   model.PublishedDate,
		Thumbnail:       model.Thumbnail,
		Content:         cloneString(model.Content),
		URL:             cloneString(model.URL),
		Tags:            append([]string(nil), model.Tags...),
		Difficulty:      application.Difficulty(model.Difficulty),
		Rating:          model.Rating,
	}
}

func toApplicationJournalEntry(model persistence.JournalEntry) application.JournalEntry {
	return application.JournalEntry{
		ID:      model.ID,
		OwnerID: model.OwnerID,
		Title:   model.Title,
		Content: model.Content,
		Mood:    application.Mood(model.Mood),
		Tags:    append([]string(nil), model.Tags...),
		Date:    model.Date,
		Private: model.Private,
	}
}

func toPersistenceJournalEntry(entry application.JournalEntry) persistence.JournalEntry {
	return persistence.JournalEntry{
		ID:      entry.ID,
		OwnerID: entry.OwnerID,
		Title:   entry.Title,
		Content: entry.Content,
		Mood:    persistence.Mood(entry.Mood),
		Tags:    append([]string(nil), entry.Tags...),
		Date:    entry.Date,
		Private: entry.Private,
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
