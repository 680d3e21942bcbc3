package urlrecord

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingURL indicates a URL object without its url
var ErrMissingURL = errors.New("url object without url")

// Record represents one URL registered (or about to be registered) under a URN.
//
// Server-assigned fields (created, lastModified, owner, self) are only ever
// populated when a Record is decoded from an API payload.
type Record struct {
	url          string
	created      string
	lastModified string
	urn          string
	owner        string
	priority     *int
	self         string
}

// wireRecord is the JSON shape used by the URN service for URL objects
type wireRecord struct {
	URL          string  `json:"url"`
	Created      *string `json:"created"`
	LastModified *string `json:"lastModified"`
	URN          *string `json:"urn"`
	Owner        *string `json:"owner"`
	Priority     *int    `json:"priority"`
	Self         *string `json:"self"`
}

// New creates a client-side record carrying only a URL
func New(url string) *Record {
	return &Record{url: url}
}

// NewWithPriority creates a client-side record carrying a URL and a priority
func NewWithPriority(url string, priority int) *Record {
	r := New(url)
	r.SetPriority(priority)
	return r
}

// FromPayload decodes a URL object returned by the API
func FromPayload(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	// a literal null never reaches UnmarshalJSON
	if r.url == "" {
		return nil, ErrMissingURL
	}
	return &r, nil
}

// URL returns the registered address
func (r *Record) URL() string { return r.url }

// SetURL replaces the address
func (r *Record) SetURL(url string) { r.url = url }

// Created returns the server creation timestamp, empty for client-side records
func (r *Record) Created() string { return r.created }

// LastModified returns the server modification timestamp
func (r *Record) LastModified() string { return r.lastModified }

// URN returns the identifier this URL belongs to
func (r *Record) URN() string { return r.urn }

// SetURN sets the owning identifier
func (r *Record) SetURN(urn string) { r.urn = urn }

// Owner returns the link to the owning institution
func (r *Record) Owner() string { return r.owner }

// Priority returns the resolution priority and whether one is set
func (r *Record) Priority() (int, bool) {
	if r.priority == nil {
		return 0, false
	}
	return *r.priority, true
}

// SetPriority sets the resolution priority
func (r *Record) SetPriority(priority int) {
	p := priority
	r.priority = &p
}

// Self returns the canonical API link of this URL object
func (r *Record) Self() string { return r.self }

// APIData returns the request body used when adding or exchanging URLs.
// An unset priority is sent as null.
func (r *Record) APIData() map[string]any {
	return map[string]any{
		"url":      r.url,
		"priority": r.priorityValue(),
	}
}

// PriorityData returns the request body used when only the priority changes
func (r *Record) PriorityData() map[string]any {
	return map[string]any{"priority": r.priorityValue()}
}

func (r *Record) priorityValue() any {
	if r.priority == nil {
		return nil
	}
	return *r.priority
}

// MarshalJSON emits every field, using null for absent values
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		URL:          r.url,
		Created:      optional(r.created),
		LastModified: optional(r.lastModified),
		URN:          optional(r.urn),
		Owner:        optional(r.owner),
		Priority:     r.priority,
		Self:         optional(r.self),
	})
}

// UnmarshalJSON populates the record from an API URL object. Objects
// without a url are rejected with ErrMissingURL.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.URL == "" {
		return ErrMissingURL
	}

	*r = Record{
		url:          w.URL,
		created:      deref(w.Created),
		lastModified: deref(w.LastModified),
		urn:          deref(w.URN),
		owner:        deref(w.Owner),
		priority:     w.Priority,
		self:         deref(w.Self),
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
