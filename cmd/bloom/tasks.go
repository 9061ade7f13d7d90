package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/five82/bloom/internal/app"
	"github.com/five82/bloom/internal/diary"
)

func addTasks(topLevel *cobra.Command, g *globalOptions) {
	var date string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print the question, answer and done list for a day",
		Example: `
bloom tasks
bloom tasks --date 2024-03-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDate(date, time.Now())
			if err != nil {
				return err
			}
			return runTasks(cmd, g.appOptions(), day)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to print (YYYY-MM-DD, today or yesterday)")

	topLevel.AddCommand(cmd)
}

func runTasks(cmd *cobra.Command, opts app.Options, day string) error {
	env, err := app.Load(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	errOut := cmd.ErrOrStderr()
	screen, err := env.NewScreen(diary.NotifierFunc(func(n diary.Notice) {
		printNotice(errOut, n)
	}), day)
	if err != nil {
		return err
	}

	if err := screen.Refresh(cmd.Context()); err != nil {
		return err
	}

	printDay(cmd.OutOrStdout(), screen.Snapshot())
	return nil
}

func printNotice(w io.Writer, n diary.Notice) {
	title := color.New(color.FgRed, color.Bold)
	if n.Kind == diary.NoticeInfo {
		title = color.New(color.FgCyan)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", title.Sprint(n.Title), n.Detail)
}

func printDay(w io.Writer, snap diary.Snapshot) {
	bold := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	heading := snap.LocalDate
	if snap.Today {
		heading += " (today)"
	}
	_, _ = fmt.Fprintln(w, bold.Sprint(heading))

	if strings.TrimSpace(snap.Question) == "" {
		_, _ = fmt.Fprintln(w, faint.Sprint("No question for this day."))
	} else {
		_, _ = fmt.Fprintf(w, "Q: %s\n", snap.Question)
		answer := snap.Answer
		if strings.TrimSpace(answer) == "" {
			answer = faint.Sprint("(no answer)")
		}
		_, _ = fmt.Fprintf(w, "A: %s\n", answer)
	}
	_, _ = fmt.Fprintln(w, "")

	if len(snap.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("Nothing done yet."))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Content"))
	for _, task := range snap.Tasks {
		tbl.AddRow(task.ID, task.Title, task.Content)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
