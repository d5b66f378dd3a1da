// Package ctl implements talentctl, the operator CLI: database migrations,
// demo seeding, user creation and a remote talent listing over the API.
package ctl

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/server"
	"github.com/dmitrijs2005/talentdesk/internal/server/config"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
)

const (
	envAPIURL = "TALENTDESK_API_URL"
	envToken  = "TALENTDESK_TOKEN"
)

type storeOpener func(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error)

type options struct {
	in         *bufio.Reader
	out        io.Writer
	errOut     io.Writer
	stdinFd    int
	openStore  storeOpener
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*options)

// WithIO replaces stdin, stdout and stderr. Input that is not a terminal
// is read line by line, passwords included.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(o *options) {
		o.in = bufio.NewReader(in)
		o.out = out
		o.errOut = errOut
		o.stdinFd = -1
	}
}

// WithStore replaces the DSN based store opener.
func WithStore(open func(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error)) Option {
	return func(o *options) { o.openStore = open }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// NewRootCommand builds the talentctl command tree. cfg supplies defaults
// for the persistent flags; nil loads them from the environment.
func NewRootCommand(cfg *config.Config, opts ...Option) *cobra.Command {
	if cfg == nil {
		cfg = config.LoadEnvConfig()
	}
	o := &options{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		errOut:     os.Stderr,
		stdinFd:    int(os.Stdin.Fd()),
		openStore:  server.OpenStore,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	var logger logging.Logger = logging.Nop()

	root := &cobra.Command{
		Use:           "talentctl",
		Short:         "TalentDesk operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(cfg.LogFormat, cfg.LogLevel, o.errOut)
			if err != nil {
				return err
			}
			logger = l.With("module", "talentctl", "command", cmd.Name())
			return nil
		},
	}
	root.SetIn(o.in)
	root.SetOut(o.out)
	root.SetErr(o.errOut)

	root.PersistentFlags().StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN, or \"memory\"")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	getLogger := func() logging.Logger { return logger }

	root.AddCommand(
		newMigrateCommand(cfg, o, getLogger),
		newSeedCommand(cfg, o, getLogger),
		newCreateUserCommand(cfg, o, getLogger),
		newTalentsCommand(o),
	)
	return root
}

// Execute runs talentctl against the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand(nil).ExecuteContext(ctx)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
