package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasktxt/internal/filter"
	"github.com/sandeepkv93/tasktxt/internal/sorting"
	"github.com/sandeepkv93/tasktxt/internal/views"
)

type listFlags struct {
	all       bool
	done      bool
	idRange   string
	priority  string
	search    string
	regex     bool
	projects  []string
	contexts  []string
	tags      []string
	hashtags  []string
	xProjects []string
	xContexts []string
	xTags     []string
	xHashtags []string
	due       string
	threshold string
	created   string
	completed string
	recurring string
	active    bool
	soonDays  int
	sort      string
	reverse   bool
	format    string
}

func (a *app) listCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:     "list [query...]",
		Aliases: []string{"ls"},
		Short:   "List tasks matching a filter",
		Long: `List tasks matching a filter.

The optional query uses the browser syntax: +project, @context, #hashtag,
a leading "-" to exclude, and any other words as a text search.

Examples:
  tasktxt list +work --due ..today
  tasktxt list --pri B+ --sort pri,due
  tasktxt list --all --completed 2024-01-01..2024-01-31 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("soon") {
				f.soonDays = a.cfg.SoonDays
			}
			if !cmd.Flags().Changed("sort") {
				f.sort = a.cfg.DefaultSort
			}
			conf, err := buildConf(f, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fields, err := sorting.ParseFields(f.sort)
			if err != nil {
				return err
			}
			format, err := views.ParseFormat(f.format)
			if err != nil {
				return err
			}

			_, tasks, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := filter.Filter(tasks, conf, a.today())
			if err != nil {
				return err
			}
			sorting.Sort(ids, tasks, fields, f.reverse)
			a.log.log(LogLevelDebug, "list matched=%d total=%d", len(ids), len(tasks))
			return views.Export(a.stdout, views.ListData{
				Tasks:    tasks,
				IDs:      ids,
				Cursor:   -1,
				Now:      a.opts.Now(),
				SoonDays: conf.SoonDays,
			}, format)
		},
	}
	fl := cmd.Flags()
	fl.BoolVarP(&f.all, "all", "a", false, "include completed tasks")
	fl.BoolVar(&f.done, "done", false, "only completed tasks")
	fl.StringVar(&f.idRange, "range", "", `task ids: "3", "2-7" or "1,4,9"`)
	fl.StringVar(&f.priority, "pri", "", `priority: any, none, "B", "B+" (or higher), "B-" (or lower)`)
	fl.StringVarP(&f.search, "search", "s", "", "text to look for in subject, projects and contexts")
	fl.BoolVar(&f.regex, "regex", false, "treat --search as a regular expression")
	fl.StringSliceVarP(&f.projects, "project", "P", nil, "project patterns (none, any, *suffix, prefix*)")
	fl.StringSliceVarP(&f.contexts, "context", "C", nil, "context patterns")
	fl.StringSliceVar(&f.tags, "tag", nil, `tag patterns: "key" or "key:value"`)
	fl.StringSliceVar(&f.hashtags, "hashtag", nil, "hashtag patterns")
	fl.StringSliceVar(&f.xProjects, "exclude-project", nil, "project patterns to exclude")
	fl.StringSliceVar(&f.xContexts, "exclude-context", nil, "context patterns to exclude")
	fl.StringSliceVar(&f.xTags, "exclude-tag", nil, "tag patterns to exclude")
	fl.StringSliceVar(&f.xHashtags, "exclude-hashtag", nil, "hashtag patterns to exclude")
	fl.StringVar(&f.due, "due", "", `due date: any, none, soon, overdue, "lo..hi" or an expression`)
	fl.StringVar(&f.threshold, "thr", "", "threshold date range")
	fl.StringVar(&f.created, "created", "", "creation date range")
	fl.StringVar(&f.completed, "completed", "", "completion date range")
	fl.StringVar(&f.recurring, "rec", "", "only recurring (true) or non-recurring (false) tasks")
	fl.BoolVar(&f.active, "active", false, "only tasks with a running timer")
	fl.IntVar(&f.soonDays, "soon", 0, "days ahead that count as soon (default from config)")
	fl.StringVar(&f.sort, "sort", "", "sort fields, e.g. pri,due:subj (default from config)")
	fl.BoolVar(&f.reverse, "rev", false, "reverse the sorted list")
	fl.StringVar(&f.format, "format", string(views.FormatTable), "output format: table, txt, yaml or json")
	return cmd
}

// buildConf merges the query words and the flags into one filter.
func buildConf(f listFlags, query string) (filter.Conf, error) {
	conf := filter.ParseQuery(query)
	switch {
	case f.done:
		conf.Status = filter.StatusDone
	case f.all:
		conf.Status = filter.StatusAny
	default:
		conf.Status = filter.StatusActive
	}
	if f.idRange != "" {
		r, err := filter.ParseRange(f.idRange)
		if err != nil {
			return filter.Conf{}, err
		}
		conf.Range = &r
	}
	if f.priority != "" {
		rule, err := filter.ParsePriorityRule(f.priority)
		if err != nil {
			return filter.Conf{}, err
		}
		conf.Priority = &rule
	}
	if f.search != "" {
		conf.Text = &filter.TextRule{Pattern: f.search, Regex: f.regex}
	}
	conf.Projects.Include = append(conf.Projects.Include, f.projects...)
	conf.Projects.Exclude = append(conf.Projects.Exclude, f.xProjects...)
	conf.Contexts.Include = append(conf.Contexts.Include, f.contexts...)
	conf.Contexts.Exclude = append(conf.Contexts.Exclude, f.xContexts...)
	conf.Tags.Include = append(conf.Tags.Include, f.tags...)
	conf.Tags.Exclude = append(conf.Tags.Exclude, f.xTags...)
	conf.Hashtags.Include = append(conf.Hashtags.Include, f.hashtags...)
	conf.Hashtags.Exclude = append(conf.Hashtags.Exclude, f.xHashtags...)

	for _, d := range []struct {
		name  string
		value string
		dst   **filter.DateRule
	}{
		{"due", f.due, &conf.Due},
		{"thr", f.threshold, &conf.Threshold},
		{"created", f.created, &conf.Created},
		{"completed", f.completed, &conf.Completed},
	} {
		if d.value == "" {
			continue
		}
		rule, err := filter.ParseDateRange(d.value)
		if err != nil {
			return filter.Conf{}, fmt.Errorf("--%s: %w", d.name, err)
		}
		*d.dst = &rule
	}
	if f.recurring != "" {
		v, err := strconv.ParseBool(f.recurring)
		if err != nil {
			return filter.Conf{}, fmt.Errorf("--rec: %w", err)
		}
		conf.Recurring = &v
	}
	conf.TimerActive = f.active
	conf.SoonDays = f.soonDays
	return conf, nil
}
