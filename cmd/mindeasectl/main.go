// Command mindeasectl is a small terminal client for the MindEase API. It
// keeps the signed-in session in a local database, mirroring the two values
// a browser client would keep in local storage, and attaches the cached
// bearer token to every request.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/mindease/internal/apiclient"
	"github.com/example/mindease/internal/application"
	"github.com/example/mindease/internal/config"
	"github.com/example/mindease/internal/persistence"
	"github.com/example/mindease/internal/persistence/sqlite"
)

const usage = `usage: mindeasectl <command> [arguments]

commands:
  login <email> <password> [role]  sign in and cache the session locally
  logout                           sign out and clear the cached session
  whoami                           print the cached identity
  counsellors                      list counsellor profiles
  bookings                         list the caller's sessions
  resources                        list wellness resources
`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	cfg := config.LoadClient()

	storage, err := sqlite.Open(cfg.SessionDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mindeasectl: failed to open session cache: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close session cache", "error", cerr)
		}
	}()
	if err := storage.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mindeasectl: failed to prepare session cache: %v\n", err)
		os.Exit(1)
	}

	session := application.NewSessionStore(&sessionCacheAdapter{store: storage}, logger)
	if _, _, err := session.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mindeasectl: failed to restore session: %v\n", err)
		os.Exit(1)
	}

	cli := &client{
		api:     apiclient.New(cfg.APIBaseURL, nil, session),
		session: session,
		out:     os.Stdout,
	}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mindeasectl: %v\n", err)
		os.Exit(1)
	}
}

type client struct {
	api     *apiclient.Client
	session *application.SessionStore
	out     io.Writer
}

func (c *client) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return nil
	}

	switch args[0] {
	case "login":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("usage: mindeasectl login <email> <password> [role]")
		}
		role := string(application.RoleSeeker)
		if len(args) == 4 {
			role = args[3]
		}
		return c.login(ctx, args[1], args[2], role)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami()
	case "counsellors":
		return c.counsellors(ctx)
	case "bookings":
		return c.bookings(ctx)
	case "resources":
		return c.resources(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *client) login(ctx context.Context, email, password, role string) error {
	var resp sessionPayload
	body := map[string]string{"email": email, "password": password, "role": role}
	if err := c.api.Post(ctx, "/auth/login", body, &resp); err != nil {
		return err
	}

	identity := application.Identity{
		ID:     resp.User.ID,
		Email:  resp.User.Email,
		Name:   resp.User.Name,
		Role:   application.Role(resp.User.Role),
		Avatar: resp.User.Avatar,
	}
	if err := c.session.Set(ctx, identity, resp.Token); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "signed in as %s <%s>\n", resp.User.Name, resp.User.Email)
	return nil
}

func (c *client) logout(ctx context.Context) error {
	// The server clears its cache even when no session is active, so the
	// local one is only dropped after the server confirms.
	if err := c.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		return err
	}
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func (c *client) whoami() error {
	identity, ok := c.session.Current()
	if !ok {
		fmt.Fprintln(c.out, "signed out")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	return nil
}

func (c *client) counsellors(ctx context.Context) error {
	var profiles []counsellorPayload
	if err := c.api.Get(ctx, "/counsellors", &profiles); err != nil {
		return err
	}
	for _, profile := range profiles {
		fmt.Fprintf(c.out, "%s\t%s\t$%.0f/session\t%.1f stars\n",
			profile.ID, profile.Name, profile.PricePerSession, profile.Rating)
	}
	return nil
}

func (c *client) bookings(ctx context.Context) error {
	var sessions []bookingPayload
	if err := c.api.Get(ctx, "/bookings", &sessions); err != nil {
		return err
	}
	for _, booking := range sessions {
		fmt.Fprintf(c.out, "%s\t%s %s\t%s\t%s\n",
			booking.ID, booking.Date, booking.Time, booking.CounsellorName, booking.Status)
	}
	return nil
}

func (c *client) resources(ctx context.Context) error {
	var items []resourcePayload
	if err := c.api.Get(ctx, "/resources", &items); err != nil {
		return err
	}
	for _, resource := range items {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%s\n",
			resource.ID, resource.Type, resource.Category, resource.Title)
	}
	return nil
}

type userPayload struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type sessionPayload struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

type counsellorPayload struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PricePerSession float64 `json:"pricePerSession"`
	Rating          float64 `json:"rating"`
}

type bookingPayload struct {
	ID             string `json:"id"`
	CounsellorName string `json:"counsellorName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
}

type resourcePayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

type sessionCacheAdapter struct {
	store persistence.SessionStateStore
}

func (a *sessionCacheAdapter) SaveSessionState(ctx context.Context, token string, identity []byte) error {
	return a.store.SaveSessionState(ctx, persistence.SessionState{Token: token, Identity: identity})
}

func (a *sessionCacheAdapter) LoadSessionState(ctx context.Context) (string, []byte, error) {
	state, err := a.store.LoadSessionState(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return "", nil, application.ErrNotFound
		}
		return "", nil, err
	}
	return state.Token, state.Identity, nil
}

func (a *sessionCacheAdapter) ClearSessionState(ctx context.Context) error {
	return a.store.ClearSessionState(ctx)
}
