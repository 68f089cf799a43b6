// Command forumcli is the reference UT Discussions client: it wires the
// session manager, authorized API client and route guard the way an
// application embedding forumkit would, and exposes the core flows as
// subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/utdiscussions/forumkit/modules/forum"
	"github.com/utdiscussions/forumkit/pkg/apiclient"
	"github.com/utdiscussions/forumkit/pkg/config"
	"github.com/utdiscussions/forumkit/pkg/demo"
	"github.com/utdiscussions/forumkit/pkg/guard"
	"github.com/utdiscussions/forumkit/pkg/identity"
	"github.com/utdiscussions/forumkit/pkg/logger"
	"github.com/utdiscussions/forumkit/pkg/session"
	"github.com/utdiscussions/forumkit/pkg/sessionstore"
)

// Config is the CLI's environment configuration.
type Config struct {
	APIBaseURL     string        `env:"FORUM_API_URL" envDefault:"http://localhost:8080/api"`
	RequestTimeout time.Duration `env:"FORUM_REQUEST_TIMEOUT" envDefault:"10s"`
	SessionFile    string        `env:"FORUM_SESSION_FILE"`
	DemoMode       bool          `env:"FORUM_DEMO_MODE" envDefault:"false"`
	SignInPath     string        `env:"FORUM_SIGNIN_PATH" envDefault:"/login"`
	ListenAddr     string        `env:"FORUM_LISTEN_ADDR" envDefault:"127.0.0.1:3000"`
	LogFormat      logger.Format `env:"FORUM_LOG_FORMAT" envDefault:"text"`
	Debug          bool          `env:"FORUM_DEBUG" envDefault:"false"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "forumcli:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithDevelopment("forumcli"),
		logger.WithFormat(cfg.LogFormat),
		logger.WithOutput(os.Stderr),
	}
	if !cfg.Debug {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelWarn))
	}
	log := logger.New(logOpts...)

	app, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Resolve the persisted session before anything else runs.
	if _, err := app.sessions.Resolve(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return usage()
	}
	return app.dispatch(ctx, args[0], args[1:])
}

type app struct {
	cfg      Config
	log      *slog.Logger
	sessions *session.Manager
	forum    *forum.Service
	client   *apiclient.Client
}

func newApp(cfg Config, log *slog.Logger) (*app, error) {
	clientOpts := []apiclient.Option{
		apiclient.WithLogger(log),
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithAuthExpiredHandler(func(returnTo string) {
			fmt.Fprintln(os.Stderr, "session expired, please sign in again")
		}),
	}

	if cfg.DemoMode {
		base, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return nil, err
		}
		log.Warn("demo mode enabled, serving canned data in-process")
		backend := demo.NewBackend(demo.WithLogger(log))
		clientOpts = append(clientOpts, apiclient.WithHTTPTransport(demo.NewTransport(backend, base.Path)))
	}

	client, err := apiclient.New(cfg.APIBaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.New(
		session.WithService(client.Auth()),
		session.WithStore(store),
		session.WithLogger(log),
	)
	client.Bind(sessions)

	return &app{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		forum:    forum.NewService(client),
		client:   client,
	}, nil
}

func newStore(cfg Config) (sessionstore.Store, error) {
	path := cfg.SessionFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "utdiscussions", "session.json")
	}
	return sessionstore.NewFileStore(path), nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx, args)
	case "questions":
		return a.questions(ctx, args)
	case "question":
		return a.question(ctx, args)
	case "submit":
		return a.submit(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "serve":
		return a.serve(ctx)
	default:
		return usage()
	}
}

func usage() error {
	fmt.Fprintln(os.Stderr, `usage: forumcli <command> [args]

commands:
  login <email> <password>
  register <handle> <email> <password> <display name>
  logout
  whoami
  profile <display name>
  questions [category]
  question <id>
  submit <title> <body>
  search <query>
  serve`)
	return errors.New("unknown command")
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	id, err := a.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s), reputation %d\n", id.Handle, id.DisplayName, id.Reputation)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: register <handle> <email> <password> <display name>")
	}
	id, err := a.sessions.Register(ctx, session.RegisterInput{
		Handle:      args[0],
		Email:       args[1],
		Password:    args[2],
		DisplayName: args[3],
	})
	if err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", id.Handle)
	return nil
}

func (a *app) whoami() error {
	id, ok := a.sessions.Current()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s> %s, reputation %d, joined %s\n",
		id.Handle, id.Email, id.DisplayName, id.Reputation, id.JoinedAt.Format("Jan 2006"))
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: profile <display name>")
	}
	name := args[0]
	id, err := a.sessions.UpdateProfile(ctx, identity.Update{DisplayName: &name})
	if err != nil {
		return err
	}
	if id == nil {
		fmt.Println("not signed in, nothing updated")
		return nil
	}
	fmt.Printf("profile updated: %s\n", id.DisplayName)
	return nil
}

func (a *app) questions(ctx context.Context, args []string) error {
	params := forum.ListParams{}
	if len(args) > 0 {
		params.Category = args[0]
	}
	list, err := a.forum.ListQuestions(ctx, params)
	if err != nil {
		return err
	}
	for _, q := range list.Questions {
		marker := " "
		if q.IsAnswered {
			marker = "✓"
		}
		fmt.Printf("%s #%d %s (%d replies, %d likes)\n", marker, q.ID, q.Title, len(q.Replies), q.Likes)
	}
	fmt.Printf("%d questions total\n", list.Total)
	return nil
}

func (a *app) question(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: question <id>")
	}
	var id int
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid question id %q", args[0])
	}
	q, err := a.forum.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\n\n%s\n", q.ID, q.Title, q.Body)
	for _, r := range q.Replies {
		best := ""
		if r.IsBestAnswer {
			best = " [best answer]"
		}
		author := "anonymous"
		if r.Author != nil {
			author = r.Author.Handle
		}
		fmt.Printf("\n%s%s:\n%s\n", author, best, r.Body)
	}
	return nil
}

func (a *app) submit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: submit <title> <body>")
	}
	q, err := a.forum.CreateQuestion(ctx, forum.CreateQuestionInput{Title: args[0], Body: args[1]})
	if err != nil {
		return err
	}
	fmt.Printf("posted question #%d\n", q.ID)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: search <query>")
	}
	results, err := a.forum.Search(ctx, args[0])
	if err != nil {
		return err
	}
	for _, q := range results.Questions {
		fmt.Printf("#%d %s\n", q.ID, q.Title)
	}
	return nil
}

// serve mounts the local UI shell for browser use, guard included.
func (a *app) serve(ctx context.Context) error {
	r := chi.NewRouter()
	r.Mount("/", forum.Router(forum.RouterDeps{
		Forum:    a.forum,
		Sessions: a.sessions,
		Guard: guard.New(a.sessions,
			guard.WithSignInPath(a.cfg.SignInPath),
			guard.WithLogger(a.log),
		),
		Log:      a.log,
	}))

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	a.log.Info("local shell listening", slog.String("addr", a.cfg.ListenAddr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
