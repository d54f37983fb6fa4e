package model

import (
	"strconv"
	"time"
)

// timerOff is the legacy tmr value written by older clients for a stopped timer.
const timerOff = "off"

// IsTimerOn reports whether the task has a running timer.
func (t Task) IsTimerOn() bool {
	v, ok := t.Tags.Get(TagTimer)
	return ok && v != timerOff
}

// SpentTime returns the stored spent duration plus the time elapsed since a
// running timer was started.
func (t Task) SpentTime(now time.Time) time.Duration {
	spent := time.Duration(t.spentSeconds()) * time.Second
	if start, ok := t.timerStart(); ok && now.After(start) {
		spent += now.Sub(start).Truncate(time.Second)
	}
	return spent
}

// StartTimer starts the timer of an unfinished task.
func (t *Task) StartTimer(now time.Time) bool {
	if t.Finished || t.IsTimerOn() {
		return false
	}
	return t.SetTag(TagTimer, strconv.FormatInt(now.Unix(), 10))
}

// StopTimer folds the running time into the spent tag and removes tmr.
func (t *Task) StopTimer(now time.Time) bool {
	if !t.IsTimerOn() {
		if t.Tags.Has(TagTimer) {
			return t.SetTag(TagTimer, "")
		}
		return false
	}
	spent := t.SpentTime(now)
	t.SetTag(TagTimer, "")
	if secs := int64(spent / time.Second); secs > 0 {
		t.SetTag(TagSpent, strconv.FormatInt(secs, 10))
	}
	return true
}

func (t Task) timerStart() (time.Time, bool) {
	v, ok := t.Tags.Get(TagTimer)
	if !ok || v == timerOff {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

func (t Task) spentSeconds() int64 {
	v, ok := t.Tags.Get(TagSpent)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
