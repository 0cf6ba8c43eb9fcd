package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/resuexpress/internal/config"
	"github.com/jonathan/resuexpress/internal/export"
	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/jonathan/resuexpress/internal/store"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

// cli carries the persistent flags and the configuration resolved from them.
type cli struct {
	configPath string
	flags      config.Config

	cfg     config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "resuexpress",
		Short: "Resuexpress résumé wizard",
		Long: "Resuexpress walks a résumé through five steps, keeps it saved as you type, " +
			"previews it in five templates and exports a standalone HTML or PDF document.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "Path to a JSON or YAML config file (env RESUEXPRESS_CONFIG)")
	pf.StringVar(&c.flags.Store, "store", "", "Storage backend: memory, file, sqlite, postgres or redis")
	pf.StringVar(&c.flags.Path, "path", "", "Document file (file store) or database file (sqlite store)")
	pf.StringVar(&c.flags.Key, "key", "", "Storage key of the document")
	pf.StringVar(&c.flags.DatabaseURL, "db-url", "", "PostgreSQL connection URL")
	pf.StringVar(&c.flags.RedisURL, "redis-url", "", "Redis connection URL")
	pf.StringVar(&c.flags.Stylesheet, "stylesheet", "", "CSS file embedded into exports instead of the built-in one")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&c.flags.LogFormat, "log-format", "", "Log format: text or json")
	pf.IntVar(&c.flags.DebounceMS, "debounce", 0, "Autosave quiet period in milliseconds")

	root.AddCommand(
		newServeCmd(c),
		newSetCmd(c),
		newRecordCmd(c),
		newStepCmd(c),
		newTemplateCmd(c),
		newRenderCmd(c),
		newExportCmd(c),
		newStatusCmd(c),
		newValidateCmd(c),
	)
	return root
}

// resolve layers flags over environment over config file over built-in defaults,
// validates the result and installs the logger.
func (c *cli) resolve(cmd *cobra.Command) error {
	cfg := config.Defaults()

	path := c.configPath
	if path == "" {
		path = os.Getenv("RESUEXPRESS_CONFIG")
	}
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return err
	}
	cfg = envCfg.MergeWithDefaults(cfg)

	flagCfg := c.changedFlags(cmd)
	cfg = flagCfg.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.logger = logger
	slog.SetDefault(logger)
	c.metrics = observability.NewMetrics()
	return nil
}

// changedFlags returns only the flag values the user actually set.
func (c *cli) changedFlags(cmd *cobra.Command) config.Config {
	var out config.Config
	flags := cmd.Flags()
	pick := func(name string, dst *string, src string) {
		if flags.Changed(name) {
			*dst = src
		}
	}
	pick("store", &out.Store, c.flags.Store)
	pick("path", &out.Path, c.flags.Path)
	pick("key", &out.Key, c.flags.Key)
	pick("db-url", &out.DatabaseURL, c.flags.DatabaseURL)
	pick("redis-url", &out.RedisURL, c.flags.RedisURL)
	pick("stylesheet", &out.Stylesheet, c.flags.Stylesheet)
	pick("log-level", &out.LogLevel, c.flags.LogLevel)
	pick("log-format", &out.LogFormat, c.flags.LogFormat)
	if flags.Changed("debounce") {
		out.DebounceMS = c.flags.DebounceMS
	}
	return out
}

// workspace is an open session over the configured store.
type workspace struct {
	session *wizard.Session
	store   store.Store
	sheet   *export.Stylesheet
}

// Close flushes the session's pending autosave, then closes the store.
func (w *workspace) Close() error {
	if err := w.session.Close(); err != nil {
		return err
	}
	return w.store.Close()
}

// open connects the configured store and opens a session on it.
func (c *cli) open(ctx context.Context, observer wizard.Observer) (*workspace, error) {
	st, err := store.Open(ctx, store.Options{
		Backend:     store.Backend(c.cfg.Store),
		Key:         c.cfg.Key,
		Path:        c.cfg.Path,
		DatabaseURL: c.cfg.DatabaseURL,
		RedisURL:    c.cfg.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sheet := export.EmbeddedStylesheet()
	if c.cfg.Stylesheet != "" {
		if sheet, err = export.LoadStylesheet(c.cfg.Stylesheet, c.logger); err != nil {
			st.Close()
			return nil, err
		}
	}

	session, err := wizard.Open(ctx, wizard.Options{
		Store:     st,
		Delay:     c.cfg.Debounce(),
		Observer:  observer,
		Logger:    c.logger,
		Metrics:   c.metrics,
		Assembler: export.NewAssembler(sheet),
		Printer: &export.Printer{
			Timeout:  c.cfg.PDFTimeout(),
			ExecPath: c.cfg.ChromePath,
			Logger:   c.logger,
		},
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &workspace{session: session, store: st, sheet: sheet}, nil
}

// withSession opens a workspace, runs fn and always flushes and closes it.
func (c *cli) withSession(ctx context.Context, fn func(s *wizard.Session) error) (err error) {
	ws, err := c.open(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ws.session)
}
