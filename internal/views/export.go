package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

var ErrUnknownFormat = errors.New("views: unknown output format")

type Format string

const (
	FormatTable Format = "table"
	FormatTxt   Format = "txt"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatTxt, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Record is the structured form of a task used by the yaml and json
// exports.
type Record struct {
	ID           int               `yaml:"id" json:"id"`
	Done         bool              `yaml:"done" json:"done"`
	Priority     string            `yaml:"priority,omitempty" json:"priority,omitempty"`
	Created      string            `yaml:"created,omitempty" json:"created,omitempty"`
	Finished     string            `yaml:"finished,omitempty" json:"finished,omitempty"`
	Due          string            `yaml:"due,omitempty" json:"due,omitempty"`
	Threshold    string            `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Recurrence   string            `yaml:"recurrence,omitempty" json:"recurrence,omitempty"`
	Subject      string            `yaml:"subject" json:"subject"`
	Projects     []string          `yaml:"projects,omitempty" json:"projects,omitempty"`
	Contexts     []string          `yaml:"contexts,omitempty" json:"contexts,omitempty"`
	Hashtags     []string          `yaml:"hashtags,omitempty" json:"hashtags,omitempty"`
	Tags         map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	SpentSeconds int64             `yaml:"spent_seconds,omitempty" json:"spent_seconds,omitempty"`
	Line         string            `yaml:"line" json:"line"`
}

func NewRecord(id int, t model.Task, now time.Time) Record {
	r := Record{
		ID:           id,
		Done:         t.Finished,
		Priority:     t.Priority.String(),
		Created:      formatOptional(t.CreateDate),
		Finished:     formatOptional(t.FinishDate),
		Due:          formatOptional(t.DueDate),
		Threshold:    formatOptional(t.ThresholdDate),
		Subject:      t.Subject,
		Projects:     t.Projects,
		Contexts:     t.Contexts,
		Hashtags:     t.Hashtags,
		SpentSeconds: int64(t.SpentTime(now) / time.Second),
		Line:         todotxt.Format(t),
	}
	if t.Recurrence != nil {
		r.Recurrence = t.Recurrence.String()
	}
	if len(t.Tags) > 0 {
		r.Tags = make(map[string]string, len(t.Tags))
		for _, tag := range t.Tags {
			r.Tags[tag.Key] = tag.Value
		}
	}
	return r
}

func formatOptional(d *time.Time) string {
	if d == nil {
		return ""
	}
	return dates.Format(*d)
}

// Export writes the listed tasks in the given format. The cursor is never
// drawn.
func Export(w io.Writer, data ListData, f Format) error {
	switch f {
	case FormatTable:
		data.Cursor = -1
		_, err := fmt.Fprintln(w, RenderList(data))
		return err
	case FormatTxt:
		for _, id := range data.IDs {
			if id < 0 || id >= len(data.Tasks) {
				continue
			}
			if _, err := fmt.Fprintln(w, todotxt.Format(data.Tasks[id])); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML, FormatJSON:
		records := make([]Record, 0, len(data.IDs))
		for _, id := range data.IDs {
			if id < 0 || id >= len(data.Tasks) {
				continue
			}
			records = append(records, NewRecord(id, data.Tasks[id], data.Now))
		}
		if f == FormatYAML {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(records); err != nil {
				return fmt.Errorf("views: encode yaml: %w", err)
			}
			return enc.Close()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("views: encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
