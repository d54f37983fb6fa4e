package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/sandeepkv93/tasktxt/internal/config"
	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/filter"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/sorting"
	"github.com/sandeepkv93/tasktxt/internal/storage"
)

// Mode is what the keyboard currently drives.
type Mode string

const (
	ModeList    Mode = "list"
	ModeFilter  Mode = "filter"
	ModeCommand Mode = "command"
	ModeAdd     Mode = "add"
)

// fuzzyPrefix switches the filter line from query rules to fuzzy search.
const fuzzyPrefix = "~"

type StatusBar struct {
	Text    string
	IsError bool
}

type Options struct {
	Config config.Config
	// Store is optional; without it changes stay in memory.
	Store storage.Repository
	// Changes delivers external edits of the todo file, see storage.Watch.
	Changes <-chan struct{}
	Tasks   []model.Task
	Now     func() time.Time
}

type Model struct {
	Tasks       []model.Task
	Visible     []int
	Cursor      int
	Status      filter.Status
	Query       string
	SortFields  []sorting.Field
	Reverse     bool
	Mode        Mode
	Bar         StatusBar
	HelpVisible bool
	Preview     RecurrencePreview
	Dirty       bool
	Quitting    bool
	LastError   error
	Keys        config.Keymap

	completion model.CompletionConfig
	soonDays   int
	autoCreate bool
	store      storage.Repository
	changes    <-chan struct{}
	now        func() time.Time
	input      textinput.Model
	helpModel  help.Model
}

type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

type FileChangedMsg struct{}

type SavedMsg struct {
	Err error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	m := Model{
		Tasks:      opts.Tasks,
		Status:     filter.StatusActive,
		Mode:       ModeList,
		Keys:       cfg.Keys,
		soonDays:   cfg.SoonDays,
		autoCreate: cfg.AutoCreateDate,
		store:      opts.Store,
		changes:    opts.Changes,
		now:        opts.Now,
		input:      textinput.New(),
		helpModel:  help.New(),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.soonDays <= 0 {
		m.soonDays = filter.DefaultSoonDays
	}
	completion, err := cfg.Completion()
	if err != nil {
		completion = model.DefaultCompletionConfig()
		m.Bar = StatusBar{Text: err.Error(), IsError: true}
	}
	m.completion = completion
	if fields, err := sorting.ParseFields(cfg.DefaultSort); err == nil {
		m.SortFields = fields
	} else {
		m.Bar = StatusBar{Text: err.Error(), IsError: true}
	}
	m.input.Prompt = ""
	m.refresh()
	return m
}

func (m Model) today() time.Time {
	return dates.Truncate(m.now())
}

// Selected returns the task id under the cursor.
func (m Model) Selected() (int, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return -1, false
	}
	return m.Visible[m.Cursor], true
}

// refresh recomputes the visible ids from the status, query and sort
// settings and keeps the cursor inside the list.
func (m *Model) refresh() {
	conf := filter.Conf{}
	fuzzyQuery := ""
	if q := strings.TrimSpace(m.Query); strings.HasPrefix(q, fuzzyPrefix) {
		fuzzyQuery = strings.TrimSpace(strings.TrimPrefix(q, fuzzyPrefix))
	} else if q != "" {
		conf = filter.ParseQuery(q)
	}
	conf.Status = m.Status
	conf.SoonDays = m.soonDays

	ids, err := filter.Filter(m.Tasks, conf, m.today())
	if err != nil {
		m.Bar = StatusBar{Text: err.Error(), IsError: true}
		ids = []int{}
	}
	if fuzzyQuery != "" {
		// Fuzzy results stay in score order.
		ids = m.fuzzyMatch(ids, fuzzyQuery)
	} else {
		sorting.Sort(ids, m.Tasks, m.SortFields, m.Reverse)
	}
	m.Visible = ids
	m.Cursor = clamp(m.Cursor, 0, len(ids)-1)
	m.Preview.refresh(m.selectedTask(), m.today())
}

type subjects struct {
	tasks []model.Task
	ids   []int
}

func (s subjects) String(i int) string { return s.tasks[s.ids[i]].Subject }
func (s subjects) Len() int            { return len(s.ids) }

func (m Model) fuzzyMatch(ids []int, pattern string) []int {
	matches := fuzzy.FindFrom(pattern, subjects{tasks: m.Tasks, ids: ids})
	out := make([]int, 0, len(matches))
	for _, match := range matches {
		out = append(out, ids[match.Index])
	}
	return out
}

func (m Model) selectedTask() *model.Task {
	id, ok := m.Selected()
	if !ok {
		return nil
	}
	return &m.Tasks[id]
}
