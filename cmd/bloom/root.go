package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/bloom/internal/app"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
}

func (g *globalOptions) appOptions() app.Options {
	return app.Options{ConfigPath: g.configPath}
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}
	var prefsPath, date string

	cmd := &cobra.Command{
		Use:   "bloom",
		Short: "Answer the daily question and keep a done list from the terminal.",
		Example: `
bloom
bloom --date 2024-03-01
bloom tasks --date yesterday
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.appOptions()
			opts.PrefsPath = prefsPath
			day, err := resolveDate(date, time.Now())
			if err != nil {
				return err
			}
			opts.Date = day
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/bloom/config.toml)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/bloom/prefs.toml)")
	cmd.Flags().StringVar(&date, "date", "", "open this day (YYYY-MM-DD, today or yesterday) instead of today")

	addTasks(cmd, g)
	addLogin(cmd, g)
	addLogout(cmd, g)
	addLogs(cmd, g)
	return cmd
}
