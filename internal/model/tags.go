package model

// Tag is one key:value pair from a task subject.
type Tag struct {
	Key   string
	Value string
}

// Tags keeps tag pairs in first-appearance order with unique keys.
type Tags []Tag

func (ts Tags) Get(key string) (string, bool) {
	for _, t := range ts {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

func (ts Tags) Has(key string) bool {
	_, ok := ts.Get(key)
	return ok
}

// Set replaces the value of an existing key in place or appends a new pair.
// An empty value deletes the key.
func (ts *Tags) Set(key, value string) {
	if value == "" {
		ts.Delete(key)
		return
	}
	for i := range *ts {
		if (*ts)[i].Key == key {
			(*ts)[i].Value = value
			return
		}
	}
	*ts = append(*ts, Tag{Key: key, Value: value})
}

func (ts *Tags) Delete(key string) bool {
	for i, t := range *ts {
		if t.Key == key {
			*ts = append((*ts)[:i], (*ts)[i+1:]...)
			return true
		}
	}
	return false
}

func (ts Tags) Keys() []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Key)
	}
	return out
}

func (ts Tags) Clone() Tags {
	if ts == nil {
		return nil
	}
	out := make(Tags, len(ts))
	copy(out, ts)
	return out
}
