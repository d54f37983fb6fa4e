package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/storage"
	"github.com/sandeepkv93/tasktxt/internal/update"
	"github.com/sandeepkv93/tasktxt/internal/views"
)

func (a *app) statsCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the todo file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			md := views.ComputeStats(tasks, a.opts.Now(), a.cfg.SoonDays).Markdown()
			if !plain {
				md = views.RenderMarkdown(md)
			}
			_, err = fmt.Fprintln(a.stdout, md)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print markdown without terminal styling")
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive task browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFileStore(a.cfg.TodoFile)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			changes, err := storage.Watch(ctx, store.Path)
			if err != nil {
				a.log.log(LogLevelWarn, "watch disabled path=%s err=%v", store.Path, err)
			}
			m := update.NewModel(update.Options{
				Config:  a.cfg,
				Store:   store,
				Changes: changes,
				Now:     a.opts.Now,
			})
			if a.opts.RunBrowser != nil {
				return a.opts.RunBrowser(m)
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression...>",
		Short: "Print the date a date expression resolves to",
		Long: `Print the date a date expression resolves to.

Examples:
  tasktxt eval today+3b
  tasktxt eval fri
  tasktxt eval 2024-01-31+1m`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dates.Eval(strings.Join(args, ""), a.opts.Now())
			if errors.Is(err, dates.ErrNoDate) {
				_, err = fmt.Fprintln(a.stdout, "none")
				return err
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, dates.Format(d))
			return err
		},
	}
}
