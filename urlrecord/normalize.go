package urlrecord

import (
	"errors"
	"fmt"
)

// ErrUnnormalizable indicates an input that does not describe exactly one URL
var ErrUnnormalizable = errors.New("could not normalize url input")

// InputError reports which element of a list could not be normalized
type InputError struct {
	Index int
	Input Input
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("url input at position %d: %s", e.Index, ErrUnnormalizable)
}

// Unwrap returns ErrUnnormalizable
func (e *InputError) Unwrap() error {
	return ErrUnnormalizable
}

// NormalizeOne turns a single input into a record. A *Record is returned as
// is. Collections of length one are unwrapped; any other collection, a Keyed
// without url or a nil input yields nil.
func NormalizeOne(in Input) *Record {
	switch v := in.(type) {
	case *Record:
		return v
	case RawAddress:
		return New(string(v))
	case Keyed:
		if v.URL == "" {
			return nil
		}
		r := New(v.URL)
		if v.Priority != nil {
			r.SetPriority(*v.Priority)
		}
		return r
	case Collection:
		if len(v) == 1 {
			return NormalizeOne(v[0])
		}
	}
	return nil
}

// NormalizeMany turns any input into an ordered list of records. Anything
// that is not a Collection is wrapped first. Elements that cannot be
// normalized stay in place as nil entries.
func NormalizeMany(in Input) []*Record {
	items, ok := in.(Collection)
	if !ok {
		items = Collection{in}
	}

	records := make([]*Record, 0, len(items))
	for _, item := range items {
		records = append(records, NormalizeOne(item))
	}
	return records
}

// Strict normalizes like NormalizeMany but fails on the first placeholder
func Strict(in Input) ([]*Record, error) {
	records := NormalizeMany(in)
	for i, r := range records {
		if r == nil {
			return nil, &InputError{Index: i, Input: elementAt(in, i)}
		}
	}
	return records, nil
}

// StrictOne normalizes a single input or returns an *InputError
func StrictOne(in Input) (*Record, error) {
	r := NormalizeOne(in)
	if r == nil {
		return nil, &InputError{Index: 0, Input: in}
	}
	return r, nil
}

func elementAt(in Input, i int) Input {
	if c, ok := in.(Collection); ok && i < len(c) {
		return c[i]
	}
	return in
}

// FormatURLs flattens strings and keyed entries into request maps, skipping
// anything without a url.
func FormatURLs(in Input) []map[string]any {
	items, ok := in.(Collection)
	if !ok {
		items = Collection{in}
	}

	formatted := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case RawAddress:
			formatted = append(formatted, map[string]any{"url": string(v)})
		case Keyed:
			if v.URL == "" {
				continue
			}
			m := map[string]any{"url": v.URL}
			if v.Priority != nil {
				m["priority"] = *v.Priority
			}
			formatted = append(formatted, m)
		case *Record:
			if v != nil && v.URL() != "" {
				formatted = append(formatted, v.APIData())
			}
		}
	}
	return formatted
}
