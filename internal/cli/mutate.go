package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasktxt/internal/commands"
	"github.com/sandeepkv93/tasktxt/internal/filter"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/storage"
	"github.com/sandeepkv93/tasktxt/internal/todo"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

// parseIDs expands range arguments ("3", "2-7", "1,4,9") into ids, in
// argument order and without duplicates.
func parseIDs(args []string, n int) ([]int, error) {
	seen := make(map[int]bool)
	var ids []int
	for _, arg := range args {
		r, err := filter.ParseRange(arg)
		if err != nil {
			return nil, err
		}
		var expanded []int
		if r.Kind == filter.RangeSpan {
			for id := r.IDs[0]; id <= r.IDs[1]; id++ {
				expanded = append(expanded, id)
			}
		} else {
			expanded = r.IDs
		}
		for _, id := range expanded {
			if id >= n {
				return nil, fmt.Errorf("task %d does not exist (%d tasks)", id, n)
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <task line...>",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			tasks, id, err := todo.Add(tasks, strings.Join(args, " "), a.cfg.AutoCreateDate, a.today())
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context(), store, tasks); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "added %d: %s\n", id, todotxt.Format(tasks[id]))
			return err
		},
	}
}

// targetCmd builds done, undone, start and stop, which share the id
// arguments and only differ in the mutator.
func (a *app) targetCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id|lo-hi|a,b,c>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := parseIDs(args, len(tasks))
			if err != nil {
				return err
			}
			now := a.opts.Now()
			before := len(tasks)
			var changed []bool
			switch name {
			case "done":
				cfg, err := a.completion()
				if err != nil {
					return err
				}
				tasks, changed = todo.Done(tasks, ids, cfg, now)
			case "undone":
				cfg, err := a.completion()
				if err != nil {
					return err
				}
				changed = todo.Undone(tasks, ids, cfg.Mode)
			case "start":
				changed = todo.Start(tasks, ids, now)
			case "stop":
				changed = todo.Stop(tasks, ids, now)
			}
			if err := a.report(name, tasks, ids, changed); err != nil {
				return err
			}
			for id := before; id < len(tasks); id++ {
				if _, err := fmt.Fprintf(a.stdout, "new %d: %s\n", id, todotxt.Format(tasks[id])); err != nil {
					return err
				}
			}
			if countChanged(changed) == 0 {
				return nil
			}
			return a.save(cmd.Context(), store, tasks)
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var due, thr, rec, pri string
	cmd := &cobra.Command{
		Use:   "edit <id|lo-hi|a,b,c>...",
		Short: "Change due date, threshold, recurrence or priority",
		Long: `Change due date, threshold, recurrence or priority.

Date flags take an expression ("2024-05-01", "fri", "today+3b"), an offset
that shifts the current date ("+1w", "-2d") or "none". --rec takes "1w",
"+3b" or "none"; --pri a letter, up, down or none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var conf todo.EditConf
			for _, fl := range []struct {
				name  string
				value string
			}{{"due", due}, {"thr", thr}, {"rec", rec}, {"pri", pri}} {
				if fl.value == "" {
					continue
				}
				parsed, err := commands.Parse(fl.name + " " + fl.value)
				if err != nil {
					return fmt.Errorf("--%s: %w", fl.name, err)
				}
				switch parsed.Type {
				case commands.TypeDue:
					conf.Due = parsed.Date.Edit
				case commands.TypeThreshold:
					conf.Threshold = parsed.Date.Edit
				case commands.TypeRecurrence:
					conf.Recurrence = parsed.Recurrence.Edit
				case commands.TypePriority:
					conf.Priority = parsed.Priority.Edit
				}
			}
			if conf == (todo.EditConf{}) {
				return fmt.Errorf("edit: nothing to change, pass --due, --thr, --rec or --pri")
			}

			store, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := parseIDs(args, len(tasks))
			if err != nil {
				return err
			}
			changed, err := todo.Edit(tasks, ids, conf, a.today())
			if err != nil {
				return err
			}
			if err := a.report("edit", tasks, ids, changed); err != nil {
				return err
			}
			if countChanged(changed) == 0 {
				return nil
			}
			return a.save(cmd.Context(), store, tasks)
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date expression, offset or none")
	cmd.Flags().StringVar(&thr, "thr", "", "threshold date expression, offset or none")
	cmd.Flags().StringVar(&rec, "rec", "", "recurrence or none")
	cmd.Flags().StringVar(&pri, "pri", "", "priority letter, up, down or none")
	return cmd
}

func (a *app) archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move completed tasks to the done file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			done, err := storage.NewFileStore(a.cfg.DoneFile)
			if err != nil {
				return err
			}
			_, moved, err := storage.Archive(cmd.Context(), store, done, tasks)
			if err != nil {
				return err
			}
			a.log.log(LogLevelInfo, "archive moved=%d done_file=%s", moved, done.Path)
			_, err = fmt.Fprintf(a.stdout, "archived %d task(s)\n", moved)
			return err
		},
	}
}

// report prints every changed task with its new line.
func (a *app) report(verb string, tasks []model.Task, ids []int, changed []bool) error {
	for i, id := range ids {
		if i >= len(changed) || !changed[i] {
			continue
		}
		if _, err := fmt.Fprintf(a.stdout, "%d: %s\n", id, todotxt.Format(tasks[id])); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(a.stdout, "%s: %d of %d task(s) changed\n", verb, countChanged(changed), len(ids))
	return err
}

func countChanged(changed []bool) int {
	n := 0
	for _, c := range changed {
		if c {
			n++
		}
	}
	return n
}
