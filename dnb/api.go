package dnb

import (
	"context"

	"github.com/s0up4200/dnburn/urlrecord"
)

// API defines the URN service operations
type API interface {
	// Namespaces
	GetNamespaceDetails(ctx context.Context, namespace string) (*Namespace, error)
	GetURNSuggestion(ctx context.Context, namespace string) (*URNSuggestion, error)

	// URNs
	URNExists(ctx context.Context, urn string) (bool, error)
	GetURNDetails(ctx context.Context, urn string) (*URN, error)
	RegisterURN(ctx context.Context, urn string, urls urlrecord.Input) (*URN, error)
	SetURNSuccessor(ctx context.Context, oldURN, newURN string) (bool, error)
	DeleteURNSuccessor(ctx context.Context, urn string) (bool, error)

	// URLs
	GetURLs(ctx context.Context, urn string, onlyOwn bool) ([]*urlrecord.Record, error)
	GetOwnURLs(ctx context.Context, urn string) ([]*urlrecord.Record, error)
	GetURLDetails(ctx context.Context, urn string, address urlrecord.Input) (*urlrecord.Record, error)
	URLExists(ctx context.Context, urn string, address urlrecord.Input) (bool, error)
	AddURL(ctx context.Context, urn string, address urlrecord.Input) (*urlrecord.Record, error)
	DeleteURL(ctx context.Context, urn string, address urlrecord.Input) (bool, error)
	UpdatePriority(ctx context.Context, urn string, address urlrecord.Input, priority int) (bool, error)
	ExchangeOwnURLs(ctx context.Context, urn string, urls urlrecord.Input) (*ExchangeResult, error)
}

// BatchChecker runs existence checks for many items at once
type BatchChecker interface {
	URNExistsMany(ctx context.Context, urns []string) []URNExistsResult
	URLExistsMany(ctx context.Context, urn string, urls urlrecord.Input) ([]URLExistsResult, error)
}

var (
	_ API          = (*Client)(nil)
	_ BatchChecker = (*Client)(nil)
)
