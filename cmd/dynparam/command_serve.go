package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sourceplane/dynparam/internal/runner"
	"github.com/sourceplane/dynparam/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveExecute bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parameter fill and build endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		var r *runner.Runner
		if serveExecute {
			r = runner.NewRunner(buildWorkDir, os.Stdout, os.Stderr, false)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(env.descriptor, env.store, r, logger).ListenAndServe(ctx, serveAddr)
	},
}

func registerServeCommand(root *cobra.Command) {
	root.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVarP(&serveExecute, "execute", "x", false, "Run job steps on build requests (default only binds values)")
	serveCmd.Flags().StringVar(&buildWorkDir, "workdir", ".", "Working directory for job steps")
}
