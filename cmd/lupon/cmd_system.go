package main

import (
	"fmt"

	"github.com/lupon/admin-client/internal/interfaces/proxy"
	"github.com/spf13/cobra"
)

func (c *cli) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Inspect and clear the response cache"}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear [prefix]",
		Short: "Drop cached listings whose key starts with prefix (all when omitted)",
		Long: `Drop cached listings from memory and from persisted storage.

Known prefixes: contactos:, clientes:, proveedores:, productos:`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			c.app.Cache.Clear(cmd.Context(), prefix)
			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (prefix %q)\n", prefix)
			return nil
		},
	})
	return cmd
}

func (c *cli) proxyCmd() *cobra.Command {
	var listen, target string
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Run the development reverse proxy in front of the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg.Proxy
			if listen != "" {
				cfg.Listen = listen
			}
			if target != "" {
				cfg.Target = target
			}
			srv, err := proxy.New(cfg, c.app.Registry, proxy.WithLogger(c.log.Named("proxy")))
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&target, "target", "", "Backend URL (default from config)")
	return cmd
}
