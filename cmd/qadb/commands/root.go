package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sakif/questions-db/cmd/qadb/output"
	"github.com/sakif/questions-db/internal/config"
	"github.com/sakif/questions-db/internal/repository/sqlstore"
	"github.com/sakif/questions-db/internal/service"
)

const version = "0.3.0"

// app holds the global flags. A fresh app is built for every root command so
// flag values never leak from one execution to the next.
type app struct {
	driver     string
	dsn        string
	verbose    bool
	jsonOutput bool
}

// session is what a command works with once the database is open.
type session struct {
	db    *sqlstore.DB
	forum *service.ForumService
	out   *output.Printer
	json  bool
}

func (s *session) Close() error { return s.db.Close() }

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		asJSON, _ := root.PersistentFlags().GetBool("json")
		code := reportError(os.Stderr, err, asJSON)
		stop()
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "qadb",
		Short: "qadb - a questions and answers database",
		Long: `qadb stores users, questions, threaded replies, follows and likes in a
relational database and answers the usual questions about them.

Features:
  - SQLite (default) or PostgreSQL storage
  - Threaded replies rendered as a tree
  - Leaderboards by likes or follows
  - Average karma per user

Settings come from QADB_DRIVER, QADB_DSN, QADB_MAX_OPEN_CONNS and
QADB_LOG_LEVEL; --driver and --dsn override them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.driver, "driver", "", "Database driver: sqlite or pgx (default $QADB_DRIVER or sqlite)")
	pf.StringVar(&a.dsn, "dsn", "", "Database file or connection URL (default $QADB_DSN or "+config.DefaultDSN+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (logs every query)")
	pf.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		a.schemaCmd(),
		a.seedCmd(),
		a.userCmd(),
		a.questionCmd(),
		a.threadCmd(),
	)
	return root
}

// open loads the configuration, applies the flags over it and connects.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if a.driver != "" {
		cfg.Driver = a.driver
	}
	if a.dsn != "" {
		cfg.DSN = a.dsn
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// SQLite creates the database file but not its directory.
	if cfg.Driver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.DSN); dir != "." && !isURI(cfg.DSN) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	db, err := sqlstore.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}

	forum := service.NewForumService(service.Repositories{
		Users:     db.Users(),
		Questions: db.Questions(),
		Replies:   db.Replies(),
		Follows:   db.Follows(),
		Likes:     db.Likes(),
	}, logger)

	return &session{
		db:    db,
		forum: forum,
		out:   output.New(cmd.OutOrStdout()),
		json:  a.jsonOutput,
	}, nil
}

// run opens a session, hands it to fn and closes it afterwards.
func (a *app) run(fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, s, args)
	}
}

func isURI(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || dsn == ":memory:"
}
