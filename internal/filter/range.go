package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRange = errors.New("filter: invalid id range")

type RangeKind int

const (
	RangeOne RangeKind = iota
	RangeSpan
	RangeList
)

// Range selects tasks by position. RangeOne uses IDs[0], RangeSpan is the
// inclusive IDs[0]..IDs[1] and RangeList holds explicit ids.
type Range struct {
	Kind RangeKind
	IDs  []int
}

func One(id int) Range { return Range{Kind: RangeOne, IDs: []int{id}} }
func Span(lo, hi int) Range { return Range{Kind: RangeSpan, IDs: []int{lo, hi}} }
func List(ids ...int) Range { return Range{Kind: RangeList, IDs: ids} }

// ParseRange reads "3", "2-7" or "1,4,9". Ids are zero based.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		ids := make([]int, 0, len(parts))
		for _, p := range parts {
			id, err := parseID(p)
			if err != nil {
				return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
			}
			ids = append(ids, id)
		}
		return List(ids...), nil
	case strings.Contains(s, "-"):
		lo, hi, _ := strings.Cut(s, "-")
		l, err := parseID(lo)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		h, err := parseID(hi)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		r := Span(l, h)
		if err := r.Validate(); err != nil {
			return Range{}, err
		}
		return r, nil
	default:
		id, err := parseID(s)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		return One(id), nil
	}
}

func (r Range) Validate() error {
	switch r.Kind {
	case RangeOne:
		if len(r.IDs) != 1 || r.IDs[0] < 0 {
			return fmt.Errorf("%w: single id expected", ErrInvalidRange)
		}
	case RangeSpan:
		if len(r.IDs) != 2 || r.IDs[0] < 0 || r.IDs[0] > r.IDs[1] {
			return fmt.Errorf("%w: span %v", ErrInvalidRange, r.IDs)
		}
	case RangeList:
		if len(r.IDs) == 0 {
			return fmt.Errorf("%w: empty id list", ErrInvalidRange)
		}
		for _, id := range r.IDs {
			if id < 0 {
				return fmt.Errorf("%w: negative id %d", ErrInvalidRange, id)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidRange, r.Kind)
	}
	return nil
}

func (r Range) Contains(id int) bool {
	switch r.Kind {
	case RangeOne:
		return id == r.IDs[0]
	case RangeSpan:
		return id >= r.IDs[0] && id <= r.IDs[1]
	default:
		for _, v := range r.IDs {
			if v == id {
				return true
			}
		}
		return false
	}
}

func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidRange
	}
	return id, nil
}
