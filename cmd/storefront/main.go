// Command storefront is a terminal client for the bookstore API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/logger"
	"storefront/internal/platform/bookstore"
	"storefront/internal/shutdown"
	"storefront/internal/store"
	"storefront/internal/usecase"
	"storefront/internal/view"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usageText = `usage: storefront [-format text|html] [-profile NAME] <command> [flags] [args]

commands:
  login -email E -password P        sign in and store the session
  register -name N -email E -password P
  books                             list the catalog
  cart                              list your cart
  add BOOK_ID                       add a book to your cart
  remove BOOK_ID                    remove a book from your cart
  logout                            clear the stored session
  whoami                            show the stored session
  browse                            list the catalog and your cart
`

var errUsage = errors.New("usage error")

func main() {
	config.LoadEnvFiles()

	ctx, cancel := shutdown.WithSignals(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// app carries everything a command needs.
type app struct {
	sf     *usecase.Storefront
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }
	format := fs.String("format", "text", "output format: text or html")
	profile := fs.String("profile", "", "session profile (pg store only)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	if *format != "text" && *format != "html" {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if *profile != "" {
		cfg.SessionProfile = *profile
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})

	sessions, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		log.Error("open session store", slog.String("store", cfg.SessionStore), slog.Any("err", err))
		return exitFail
	}
	defer closeStore()

	client, err := bookstore.NewClient(cfg.APIURL,
		bookstore.WithTimeout(cfg.HTTPTimeout),
		bookstore.WithRateLimit(cfg.RateLimitRPS),
		bookstore.WithUserAgent(cfg.UserAgent),
		bookstore.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	text := view.NewTextPresenter(stdout)
	var presenter usecase.Presenter = text
	notices := text
	if *format == "html" {
		presenter = view.NewHTMLPresenter(stdout)
		// keep stdout pure markup
		notices = view.NewTextPresenter(stderr)
	}

	a := &app{
		sf:     usecase.NewStorefront(client, sessions, notices, presenter, notices, log),
		stdout: stdout,
		stderr: stderr,
		log:    log,
	}

	err = a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		return exitFail
	}
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "books":
		return a.sf.ListCatalog(ctx)
	case "cart":
		return a.withSession(ctx, func(sess entity.Session) error {
			return a.sf.ListCart(ctx, sess)
		})
	case "add":
		id, err := a.bookID(command, args)
		if err != nil {
			return err
		}
		return a.withSession(ctx, func(sess entity.Session) error {
			return a.sf.AddToCart(ctx, sess, id)
		})
	case "remove":
		id, err := a.bookID(command, args)
		if err != nil {
			return err
		}
		return a.withSession(ctx, func(sess entity.Session) error {
			return a.sf.RemoveFromCart(ctx, sess, id)
		})
	case "logout":
		return a.sf.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "browse":
		return a.browse(ctx)
	case "help":
		fmt.Fprint(a.stdout, usageText)
		return nil
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", command, usageText)
		return errUsage
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (or STOREFRONT_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return a.sf.Authenticate(ctx, *email, passwordOrEnv(*password))
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (or STOREFRONT_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return a.sf.Register(ctx, *name, *email, passwordOrEnv(*password))
}

func (a *app) bookID(command string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintf(a.stderr, "usage: storefront %s BOOK_ID\n", command)
		return "", errUsage
	}
	return strings.TrimSpace(args[0]), nil
}

func (a *app) withSession(ctx context.Context, fn func(entity.Session) error) error {
	sess, err := a.sf.CurrentSession(ctx)
	if err != nil {
		a.log.Error("load session", slog.Any("err", err))
		return err
	}
	return fn(sess)
}

func passwordOrEnv(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("STOREFRONT_PASSWORD")
}

func openSessionStore(ctx context.Context, cfg config.Config) (usecase.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case config.StoreMemory:
		return store.NewMemorySessionStore(), func() {}, nil
	case config.StorePG:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		return store.NewSessionPG(pool, cfg.SessionProfile), pool.Close, nil
	default:
		path := cfg.SessionFile
		if path == "" {
			path = store.DefaultSessionFile()
		}
		return store.NewFileSessionStore(path), func() {}, nil
	}
}
