// Package cli wires the tasktxt command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasktxt/internal/config"
	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/storage"
	"github.com/sandeepkv93/tasktxt/internal/update"
)

var Version = "dev"

type Options struct {
	Now func() time.Time
	// RunBrowser runs the interactive model; nil starts a bubbletea program.
	RunBrowser func(update.Model) error
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	opts   Options

	configPath string
	todoFile   string
	doneFile   string
	verbose    bool

	cfg config.Config
	log logger
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer, opts Options) int {
	root := NewRoot(stdout, stderr, opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func NewRoot(stdout, stderr io.Writer, opts Options) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &app{stdout: stdout, stderr: stderr, opts: opts}
	root := &cobra.Command{
		Use:           "tasktxt",
		Short:         "Filter, sort and complete tasks in a todo.txt file",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $TASKTXT_CONFIG or the user config dir)")
	flags.StringVarP(&a.todoFile, "file", "f", "", "todo.txt file, overrides the config")
	flags.StringVar(&a.doneFile, "done-file", "", "archive file, overrides the config")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug details to stderr")

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.targetCmd("done", "Complete tasks, spawning the next occurrence of recurring ones"),
		a.targetCmd("undone", "Reopen completed tasks"),
		a.targetCmd("start", "Start the timer of tasks"),
		a.targetCmd("stop", "Stop the timer of tasks"),
		a.editCmd(),
		a.archiveCmd(),
		a.statsCmd(),
		a.browseCmd(),
		a.evalCmd(),
	)
	return root
}

func (a *app) setup() error {
	level := LogLevelInfo
	if a.verbose {
		level = LogLevelDebug
	}
	a.log = logger{out: log.New(a.stderr, "", 0), level: level, now: a.opts.Now}

	path := a.configPath
	if path == "" {
		resolved, err := config.ResolvePath()
		if err != nil {
			return err
		}
		path = resolved
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)
	if a.todoFile != "" {
		cfg.TodoFile = a.todoFile
	}
	if a.doneFile != "" {
		cfg.DoneFile = a.doneFile
	}
	a.cfg = cfg
	a.log.log(LogLevelDebug, "config=%s todo_file=%s done_file=%s", path, cfg.TodoFile, cfg.DoneFile)
	return nil
}

func (a *app) today() time.Time {
	return dates.Truncate(a.opts.Now())
}

func (a *app) load(ctx context.Context) (*storage.FileStore, []model.Task, error) {
	store, err := storage.NewFileStore(a.cfg.TodoFile)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := store.Load(ctx, a.today())
	if err != nil {
		return nil, nil, err
	}
	a.log.log(LogLevelDebug, "load path=%s tasks=%d", store.Path, len(tasks))
	return store, tasks, nil
}

func (a *app) save(ctx context.Context, store storage.Repository, tasks []model.Task) error {
	if err := store.Save(ctx, tasks); err != nil {
		return err
	}
	a.log.log(LogLevelDebug, "save tasks=%d", len(tasks))
	return nil
}

func (a *app) completion() (model.CompletionConfig, error) {
	cfg, err := a.cfg.Completion()
	if err != nil {
		return model.CompletionConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
