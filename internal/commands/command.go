package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/sorting"
	"github.com/sandeepkv93/tasktxt/internal/todo"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeDone       Type = "done"
	TypeUndone     Type = "undone"
	TypeStart      Type = "start"
	TypeStop       Type = "stop"
	TypeDue        Type = "due"
	TypeThreshold  Type = "thr"
	TypeRecurrence Type = "rec"
	TypePriority   Type = "pri"
	TypeSort       Type = "sort"
	TypeFilter     Type = "filter"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// targetAll makes a command act on every listed task instead of the
// selected one.
const targetAll = "all"

type AddArgs struct {
	Subject string
}

type TargetArgs struct {
	All bool
}

type DateArgs struct {
	All  bool
	Edit todo.DateEdit
}

type RecurrenceArgs struct {
	All  bool
	Edit todo.RecurrenceEdit
}

type PriorityArgs struct {
	All  bool
	Edit todo.PriorityEdit
}

type SortArgs struct {
	Fields  []sorting.Field
	Reverse bool
}

// FilterArgs holds a query for filter.ParseQuery; empty clears the filter.
type FilterArgs struct {
	Query string
}

type Command struct {
	Type       Type
	Raw        string
	Add        *AddArgs
	Target     *TargetArgs
	Date       *DateArgs
	Recurrence *RecurrenceArgs
	Priority   *PriorityArgs
	Sort       *SortArgs
	Filter     *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndone, TypeStart, TypeStop:
		return parseTarget(input, Type(head), args)
	case TypeDue, TypeThreshold:
		return parseDate(input, Type(head), args)
	case TypeRecurrence:
		return parseRecurrence(input, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeFilter:
		return Command{Type: TypeFilter, Raw: input, Filter: &FilterArgs{Query: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func invalid(format string, a ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, a...)}
}

// splitTarget strips a leading "all" argument.
func splitTarget(args []string) (bool, []string) {
	if len(args) > 0 && strings.EqualFold(args[0], targetAll) {
		return true, args[1:]
	}
	return false, args
}

func parseAdd(raw string, args []string) (Command, error) {
	subject := strings.TrimSpace(strings.Join(args, " "))
	if subject == "" {
		return Command{}, invalid("add requires a subject")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Subject: subject}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	all, rest := splitTarget(args)
	if len(rest) > 0 {
		return Command{}, invalid("%s takes no arguments besides %q", typ, targetAll)
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{All: all}}, nil
}

func parseDate(raw string, typ Type, args []string) (Command, error) {
	all, rest := splitTarget(args)
	if len(rest) != 1 {
		return Command{}, invalid("%s requires one date expression, offset or none", typ)
	}
	edit := todo.ParseDateEdit(rest[0])
	var err error
	switch edit.Act {
	case todo.ActSet:
		_, err = dates.Eval(edit.Expr, time.Now())
	case todo.ActShift:
		_, err = dates.ParseOffsets(edit.Expr)
	}
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: typ, Raw: raw, Date: &DateArgs{All: all, Edit: edit}}, nil
}

func parseRecurrence(raw string, args []string) (Command, error) {
	all, rest := splitTarget(args)
	if len(rest) != 1 {
		return Command{}, invalid("rec requires a recurrence such as 1w or +3b, or none")
	}
	edit := todo.RecurrenceEdit{Act: todo.ActDelete}
	if !strings.EqualFold(rest[0], dates.KeywordNone) {
		if _, err := model.ParseRecurrence(rest[0]); err != nil {
			return Command{}, invalid("%v", err)
		}
		edit = todo.RecurrenceEdit{Act: todo.ActSet, Value: rest[0]}
	}
	return Command{Type: TypeRecurrence, Raw: raw, Recurrence: &RecurrenceArgs{All: all, Edit: edit}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	all, rest := splitTarget(args)
	if len(rest) != 1 {
		return Command{}, invalid("pri requires a letter, up, down or none")
	}
	var edit todo.PriorityEdit
	switch strings.ToLower(rest[0]) {
	case "up", "+":
		edit.Act = todo.ActIncrease
	case "down", "-":
		edit.Act = todo.ActDecrease
	case dates.KeywordNone:
		edit.Act = todo.ActDelete
	default:
		p, err := model.ParsePriority(strings.ToUpper(rest[0]))
		if err != nil {
			return Command{}, invalid("%v", err)
		}
		edit = todo.PriorityEdit{Act: todo.ActSet, Value: p}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{All: all, Edit: edit}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	reverse := false
	if n := len(args); n > 0 && (strings.EqualFold(args[n-1], "rev") || strings.EqualFold(args[n-1], "desc")) {
		reverse = true
		args = args[:n-1]
	}
	fields, err := sorting.ParseFields(strings.Join(args, ","))
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Fields: fields, Reverse: reverse}}, nil
}
