package dnb

import (
	"errors"

	"github.com/s0up4200/dnburn/urlrecord"
)

// Namespace represents a namespace object
type Namespace struct {
	Self          string `json:"self"`
	Name          string `json:"name"`
	Created       string `json:"created,omitempty"`
	LastModified  string `json:"lastModified,omitempty"`
	Owner         string `json:"owner,omitempty"`
	URNs          string `json:"urns,omitempty"`
	URNSuggestion string `json:"urnSuggestion,omitempty"`
	URNCount      int    `json:"urnCount,omitempty"`
}

func (n *Namespace) validate() error {
	if n.Name == "" {
		return errors.New("namespace object without name")
	}
	return nil
}

// URNSuggestion is the response of the urn-suggestion endpoint
type URNSuggestion struct {
	Namespace    string `json:"namespace"`
	Self         string `json:"self"`
	SuggestedURN string `json:"suggestedUrn"`
}

func (s *URNSuggestion) validate() error {
	if s.SuggestedURN == "" {
		return errors.New("urn suggestion without suggestedUrn")
	}
	return nil
}

// URN represents a registered identifier
type URN struct {
	Self         string `json:"self"`
	URN          string `json:"urn"`
	Created      string `json:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Namespace    string `json:"namespace,omitempty"`
	Successor    string `json:"successor,omitempty"`
	URLs         string `json:"urls,omitempty"`
	MyURLs       string `json:"myUrls,omitempty"`
}

// HasSuccessor checks if a successor has been designated
func (u *URN) HasSuccessor() bool {
	return u.Successor != ""
}

func (u *URN) validate() error {
	if u.URN == "" {
		return errors.New("urn object without urn")
	}
	return nil
}

// urlList is the paged list wrapper around URL objects
type urlList struct {
	Self       string              `json:"self,omitempty"`
	TotalItems int                 `json:"totalItems,omitempty"`
	Items      []*urlrecord.Record `json:"items"`
}

func (l *urlList) validate() error {
	if l.Items == nil {
		return errors.New("url list without items")
	}
	return nil
}

// ExchangeResult is the outcome of replacing the caller's own URLs
type ExchangeResult struct {
	StatusCode int
	// URLs holds the echoed URL list when the service returned one
	URLs []*urlrecord.Record
	// Body is the raw response when it was valid JSON
	Body []byte
}

// URNExistsResult is one entry of a batch URN existence check
type URNExistsResult struct {
	URN    string
	Exists bool
	Err    error
}

// URLExistsResult is one entry of a batch URL existence check
type URLExistsResult struct {
	URL    string
	Exists bool
	Err    error
}
