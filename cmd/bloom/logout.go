package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/bloom/internal/app"
	"github.com/five82/bloom/internal/session"
)

func addLogout(topLevel *cobra.Command, g *globalOptions) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored tokens",
		Example: `
bloom logout
bloom logout --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(g.appOptions())
			if err != nil {
				return err
			}
			defer env.Close()
			return runLogout(cmd.InOrStdin(), cmd.OutOrStdout(), env.Sessions, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	topLevel.AddCommand(cmd)
}

func runLogout(in io.Reader, out io.Writer, store *session.Store, yes bool) error {
	if !yes {
		answer, err := prompt(bufio.NewReader(in), out, "Sign out of bloom? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			_, _ = fmt.Fprintln(out, color.New(color.Faint).Sprint("Still signed in."))
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	_, _ = fmt.Fprintln(out, color.YellowString("Signed out."))
	return nil
}
