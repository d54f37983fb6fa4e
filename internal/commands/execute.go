package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add        func(AddArgs) (Result, error)
	Done       func(TargetArgs) (Result, error)
	Undone     func(TargetArgs) (Result, error)
	Start      func(TargetArgs) (Result, error)
	Stop       func(TargetArgs) (Result, error)
	Due        func(DateArgs) (Result, error)
	Threshold  func(DateArgs) (Result, error)
	Recurrence func(RecurrenceArgs) (Result, error)
	Priority   func(PriorityArgs) (Result, error)
	Sort       func(SortArgs) (Result, error)
	Filter     func(FilterArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone, TypeUndone, TypeStart, TypeStop:
		h := map[Type]func(TargetArgs) (Result, error){
			TypeDone:   handlers.Done,
			TypeUndone: handlers.Undone,
			TypeStart:  handlers.Start,
			TypeStop:   handlers.Stop,
		}[cmd.Type]
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Target)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Due(*cmd.Date)
	case TypeThreshold:
		if handlers.Threshold == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Threshold(*cmd.Date)
	case TypeRecurrence:
		if handlers.Recurrence == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Recurrence(*cmd.Recurrence)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Priority(*cmd.Priority)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sort(*cmd.Sort)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
