package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/bloom/internal/app"
	"github.com/five82/bloom/internal/logtail"
)

func addLogs(topLevel *cobra.Command, g *globalOptions) {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the bloom log file",
		Example: `
bloom logs
bloom logs -n 200
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(g.appOptions())
			if err != nil {
				return err
			}
			defer env.Close()

			path := env.Config.LogFile
			raw, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(raw) == 0 {
				_, _ = fmt.Fprintln(out, color.New(color.Faint).Sprintf("%s is empty", path))
				return nil
			}
			for _, line := range logtail.FormatLines(raw) {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")

	topLevel.AddCommand(cmd)
}
