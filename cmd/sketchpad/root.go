package main

import (
	"github.com/spf13/cobra"

	"sketchpad/internal/app"
	"sketchpad/internal/config"
)

func rootCmd() *cobra.Command {
	var (
		configPath string
		width      int
		height     int
	)
	cmd := &cobra.Command{
		Use:           "sketchpad",
		Short:         "Interactive vector sketching canvas",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				// The editor still starts on defaults; the watcher picks up a fixed file.
				warnOut.Fprintf(cmd.ErrOrStderr(), "sketchpad: %v (using defaults)\n", err)
			}
			if width > 0 {
				cfg.Window.Width = width
			}
			if height > 0 {
				cfg.Window.Height = height
			}
			return app.New(cfg, configPath).Run()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.toml (default "+config.DefaultPath()+")")
	cmd.Flags().IntVar(&width, "width", 0, "Initial window width")
	cmd.Flags().IntVar(&height, "height", 0, "Initial window height")
	cmd.AddCommand(configCmd())
	return cmd
}
