package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the map store over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			st, err := c.mapStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(st, server.Options{
				Logger:       loggerFromContext(ctx),
				MaxBodyBytes: maxBody,
			})
			printInfo(cmd.OutOrStdout(), "Serving %s on %s", st.Backend(), addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Int64Var(&maxBody, "max-body", 0, "largest accepted map upload in bytes (default 4 MiB)")
	return cmd
}
