package dnb

import (
	"context"
	"fmt"
	"net/http"
)

// GetNamespaceDetails retrieves a namespace by name, e.g. "urn:nbn:de:0030"
func (c *Client) GetNamespaceDetails(ctx context.Context, namespace string) (*Namespace, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "namespaces/name/" + namespace,
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var ns Namespace
	if err := decode(resp, &ns); err != nil {
		return nil, fmt.Errorf("failed to get namespace %s: %w", namespace, err)
	}
	return &ns, nil
}

// GetURNSuggestion asks the service for an unused URN within a namespace
func (c *Client) GetURNSuggestion(ctx context.Context, namespace string) (*URNSuggestion, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "namespaces/name/" + namespace + "/urn-suggestion",
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var suggestion URNSuggestion
	if err := decode(resp, &suggestion); err != nil {
		return nil, fmt.Errorf("failed to get URN suggestion for %s: %w", namespace, err)
	}
	return &suggestion, nil
}
