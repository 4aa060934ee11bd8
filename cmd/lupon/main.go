// Command lupon is a command-line client for the lupon backend API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lupon/admin-client/internal/app"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/lupon/admin-client/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the state shared by every command of one invocation
type cli struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
	app *app.App
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cleanup := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := cleanup(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The returned cleanup releases whatever
// the executed command opened and must run after Execute.
func newRootCmd() (*cobra.Command, func() error) {
	c := &cli{}

	root := &cobra.Command{
		Use:   "lupon",
		Short: "Command-line client for the lupon backend",
		Long: `lupon talks to the lupon REST API.

Log in once with 'lupon login'; the session is kept in the configured storage
and refreshed automatically. Results are printed as indented JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "Config file (default: lupon.toml in ., $HOME/.lupon, /etc/lupon)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		withSession(c.contactosCmd()),
		withSession(c.clientesCmd()),
		withSession(c.proveedoresCmd()),
		withSession(c.productosCmd()),
		withSession(c.pedidosCmd()),
		withSession(c.ventasCmd()),
		withSession(c.comprasCmd()),
		withSession(c.cobrosCmd()),
		withSession(c.pagosCmd()),
		withSession(c.notasCreditoCmd()),
		withSession(c.dashboardCmd()),
		c.cacheCmd(),
		c.proxyCmd(),
	)
	return root, c.teardown
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	log = log.With(zap.String("app", cfg.App.Name))

	rt, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		_ = log.Sync()
		return err
	}

	c.cfg, c.log, c.app = cfg, log, rt

	if needsSession(cmd) {
		if err := rt.Client.RequireSession(); err != nil {
			return fmt.Errorf("%w: run 'lupon login' first", err)
		}
	}
	return nil
}

const sessionAnnotation = "session"

// withSession marks cmd and its subcommands as needing a stored session
func withSession(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[sessionAnnotation] = "required"
	return cmd
}

func needsSession(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Annotations[sessionAnnotation] != "" {
			return true
		}
	}
	return false
}

func (c *cli) teardown() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	_ = c.log.Sync()
	c.app = nil
	return err
}
