package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/config"
	"github.com/dmitrijs2005/tabz/internal/client/poller"
	"github.com/dmitrijs2005/tabz/internal/client/realtime"
	"github.com/dmitrijs2005/tabz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tabz/internal/client/services"
	"github.com/dmitrijs2005/tabz/internal/client/session"
	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// orderEvent is the realtime event that nudges an active watch to refetch.
const orderEvent = "order:update"

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Session
	auth     services.AuthService
	orders   services.OrderService
	wallet   services.WalletService
	identity services.IdentityService
	profile  services.ProfileService
	feed     *realtime.Client
	closers  []func() error

	modeMu sync.Mutex
	Mode   Mode
	reader *bufio.Reader
	out    io.Writer

	watchMu   sync.Mutex
	watcher   *poller.Poller[string]
	watchCtx  context.Context
	stopWatch context.CancelFunc
}

// NewApp validates c, opens the platform's session store and wires the
// session, API client, services and realtime feed.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(os.Stderr, c.LogLevel)

	store, closeStore, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing session store", logging.Err(err))
		return nil, err
	}

	a := newApp(c, store, os.Stdin, os.Stdout, log)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

// openStore returns the key/value store for the configured platform and a
// function releasing it.
func openStore(ctx context.Context, c *config.Config) (metadata.Repository, func() error, error) {
	if c.Platform == common.PlatformWeb {
		return metadata.NewMemoryRepository(), func() error { return nil }, nil
	}

	db, err := client.InitDatabase(ctx, c.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	var repo metadata.Repository = metadata.NewSQLiteRepository(db)
	if c.StoreSecret != "" {
		repo = metadata.NewSealedRepository(repo, []byte(c.StoreSecret))
	}
	return repo, db.Close, nil
}

func newApp(c *config.Config, store metadata.Repository, in io.Reader, out io.Writer, log logging.Logger) *App {
	sess := session.New(store, session.Options{
		DefaultBaseURL:  c.DefaultBaseURL,
		EnvBaseURL:      c.BaseURLOverride,
		FailOpenTimeout: c.FailOpenTimeout(),
		AllowFallback:   c.FallbackAllowed(),
		FallbackToken:   c.DevFallbackToken,
		Logger:          log,
	})

	exec := client.NewExecutor(sess, client.ExecutorOptions{
		Timeout:   c.RequestTimeout,
		DevUserID: c.DevUserID,
		Logger:    log,
	})
	api := client.NewHTTPClient(exec)

	a := &App{
		config:   c,
		log:      log,
		session:  sess,
		auth:     services.NewAuthService(api, sess, log),
		orders:   services.NewOrderService(api, sess),
		wallet:   services.NewWalletService(api, log),
		identity: services.NewIdentityService(api),
		profile:  services.NewProfileService(api),
		feed:     realtime.NewClient(sess, realtime.Options{Platform: c.Platform, Logger: log}),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.feed.On(orderEvent, func(json.RawMessage) { a.triggerWatch() })
	return a
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

// Run hydrates the session in the background, starts the connectivity
// watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	go func() {
		_ = a.session.Hydrate(ctx)
	}()

	if err := a.session.WaitHydrated(ctx); err != nil {
		return
	}
	a.warnIfExpired(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.PollInterval)

	fmt.Fprintln(a.out, "Welcome to TABZ CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops any watch, drops the realtime connection and releases the
// session store.
func (a *App) Close() error {
	a.stopWatching()
	errs := []error{a.feed.Close()}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.AuthToken()
	return ok
}

func (a *App) getStatus() string {
	var parts []string
	if c := a.session.Claims(); c != nil {
		if c.Email != "" {
			parts = append(parts, c.Email)
		}
		if c.Role != "" {
			parts = append(parts, c.Role)
		}
	}
	a.modeMu.Lock()
	if a.Mode != "" {
		parts = append(parts, string(a.Mode))
	}
	a.modeMu.Unlock()

	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) warnIfExpired(ctx context.Context) {
	if c := a.session.Claims(); c.Expired(time.Now()) {
		a.log.Warn(ctx, "stored session token has expired; log in again")
	}
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// App between online and offline mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.auth.Ping(pctx)
		cancel()

		if err != nil {
			a.setMode(ctx, ModeOffline)
		} else {
			a.setMode(ctx, ModeOnline)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
