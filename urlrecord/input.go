package urlrecord

import (
	"fmt"
	"math"
)

// Input is anything that can be turned into one or more URL records.
//
// The variants are RawAddress, Keyed, *Record and Collection.
type Input interface {
	isInput()
}

// RawAddress is a bare URL string
type RawAddress string

// Keyed is the record form of a URL. An empty URL means the url key is missing.
type Keyed struct {
	URL      string
	Priority *int
}

// Collection is a list of inputs
type Collection []Input

func (RawAddress) isInput() {}
func (Keyed) isInput()      {}
func (*Record) isInput()    {}
func (Collection) isInput() {}

// Addresses builds a Collection of raw addresses
func Addresses(urls ...string) Collection {
	c := make(Collection, 0, len(urls))
	for _, u := range urls {
		c = append(c, RawAddress(u))
	}
	return c
}

// WithPriority builds a Keyed input carrying a priority
func WithPriority(url string, priority int) Keyed {
	p := priority
	return Keyed{URL: url, Priority: &p}
}

// ParseInput converts a JSON document into an Input. Strings become
// RawAddress, objects become Keyed and arrays become Collection.
func ParseInput(data []byte) (Input, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid url input: %w", err)
	}
	return fromValue(v)
}

func fromValue(v any) (Input, error) {
	switch t := v.(type) {
	case string:
		return RawAddress(t), nil
	case map[string]any:
		return keyedFromMap(t)
	case []any:
		c := make(Collection, 0, len(t))
		for i, elem := range t {
			in, err := fromValue(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			c = append(c, in)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported url input of type %T", v)
	}
}

func keyedFromMap(m map[string]any) (Keyed, error) {
	var k Keyed

	if raw, ok := m["url"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return k, fmt.Errorf("url must be a string, got %T", raw)
		}
		k.URL = s
	}

	if raw, ok := m["priority"]; ok && raw != nil {
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return k, fmt.Errorf("priority must be an integer, got %v", raw)
		}
		p := int(f)
		k.Priority = &p
	}

	return k, nil
}
