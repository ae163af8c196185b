package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/shopnet/internal/client/client"
	"github.com/dmitrijs2005/shopnet/internal/client/config"
	"github.com/dmitrijs2005/shopnet/internal/client/guard"
	"github.com/dmitrijs2005/shopnet/internal/client/session"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/filex"
	"github.com/dmitrijs2005/shopnet/internal/logging"
)

// DashboardPath is where a user lands after logging in.
const DashboardPath = "/dashboard"

type App struct {
	config *config.Config
	api    client.Client
	store  *session.Store
	db     *sql.DB
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	path   string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel)

	dsn, err := filex.EnsureParentDir(c.SessionDBPath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	repos := client.NewRepositories(db)
	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	store := session.NewStore(apiClient, repos.Metadata, logger)

	return newApp(c, apiClient, store, db, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, apiClient client.Client, store *session.Store, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    apiClient,
		store:  store,
		db:     db,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
		path:   DashboardPath,
	}
}

// Run restores the previous session, applies the guard to the start page
// and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	a.println("Welcome to ShopNet CLI (type 'help' for commands)")

	if err := a.store.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
		a.println("Could not reach the server, starting logged out")
	}
	if err := a.Navigate(ctx, a.path); err != nil {
		return err
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Authenticated()
}

func (a *App) getStatus() string {
	st := a.store.Snapshot()
	who := "guest"
	if st.User != nil {
		who = fmt.Sprintf("%s/%s", st.User.Email, st.User.AccountType)
	}
	return fmt.Sprintf("(%s %s)", who, a.path)
}

// enter runs the guard for path and moves there when allowed. A redirect
// moves to the target instead and reports false.
func (a *App) enter(path string) bool {
	d := guard.Decide(a.store.Snapshot(), path)
	if d.Kind == guard.Allow {
		a.path = path
		return true
	}

	a.path = d.Target
	switch d.Target {
	case common.LoginPath:
		a.println("Please log in first (login or register)")
	case common.AccountSetupPath:
		a.println("Please finish account setup first (setup)")
	}
	return false
}

// Navigate moves to path, subject to the guard.
func (a *App) Navigate(ctx context.Context, path string) error {
	if a.enter(path) {
		a.logger.Debug(ctx, "navigated", "path", path)
		a.println("Now at", a.path)
	}
	return nil
}

// call runs fn and lets the session react to an expired or revoked token.
func (a *App) call(ctx context.Context, fn func() error) error {
	err := a.store.ObserveError(ctx, fn())
	if err != nil && !a.isLoggedIn() && a.path != common.LoginPath {
		a.path = common.LoginPath
		a.println("Your session has ended, please log in again")
	}
	return err
}
