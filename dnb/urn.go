package dnb

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/s0up4200/dnburn/urlrecord"
)

func urnPath(urn string) string {
	return "urns/urn/" + urn
}

// URNExists checks if a URN is registered. It returns true on 200 and false
// on 404; any other status is reported as an *APIError.
func (c *Client) URNExists(ctx context.Context, urn string) (bool, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodHead,
		path:   urnPath(urn),
	})
	if err != nil {
		return false, err
	}

	switch resp.status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, newAPIError(resp.status, resp.body)
	}
}

// GetURNDetails retrieves the identifier object of a URN
func (c *Client) GetURNDetails(ctx context.Context, urn string) (*URN, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   urnPath(urn),
	})
	if err != nil {
		return nil, err
	}

	var details URN
	if err := decode(resp, &details); err != nil {
		return nil, fmt.Errorf("failed to get URN %s: %w", urn, err)
	}
	return &details, nil
}

// RegisterURN registers a new URN with one or more URLs. The service answers
// 409 when one of the URLs already belongs to another URN.
func (c *Client) RegisterURN(ctx context.Context, urn string, urls urlrecord.Input) (*URN, error) {
	records, err := urlrecord.Strict(urls)
	if err != nil {
		return nil, err
	}

	payload := make([]map[string]any, 0, len(records))
	for _, r := range records {
		payload = append(payload, r.APIData())
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "urns",
		auth:   true,
		body: map[string]any{
			"urn":  urn,
			"urls": payload,
		},
	})
	if err != nil {
		return nil, err
	}

	var created URN
	if err := decode(resp, &created); err != nil {
		return nil, fmt.Errorf("failed to register URN %s: %w", urn, err)
	}

	c.logger.Info().Str("urn", urn).Int("urls", len(records)).Msg("Registered URN")
	return &created, nil
}

// SetURNSuccessor designates newURN as the successor of oldURN. Unless newURN
// already is an http link, its canonical self link is looked up first.
func (c *Client) SetURNSuccessor(ctx context.Context, oldURN, newURN string) (bool, error) {
	successor := newURN
	if !strings.Contains(newURN, "http") {
		details, err := c.GetURNDetails(ctx, newURN)
		if err != nil {
			return false, &SuccessorLookupError{URN: newURN, Err: err}
		}
		if details.Self == "" {
			return false, &SuccessorLookupError{URN: newURN, Err: fmt.Errorf("no self link in response")}
		}
		successor = details.Self
	}

	return c.patchSuccessor(ctx, oldURN, successor)
}

// DeleteURNSuccessor removes the successor of a URN
func (c *Client) DeleteURNSuccessor(ctx context.Context, urn string) (bool, error) {
	return c.patchSuccessor(ctx, urn, nil)
}

func (c *Client) patchSuccessor(ctx context.Context, urn string, successor any) (bool, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodPatch,
		path:   urnPath(urn),
		auth:   true,
		body:   map[string]any{"successor": successor},
	})
	if err != nil {
		return false, err
	}

	if err := expectNoContent(resp); err != nil {
		return false, fmt.Errorf("failed to update successor of %s: %w", urn, err)
	}
	return true, nil
}
