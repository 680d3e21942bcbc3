package dnb

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/s0up4200/dnburn/urlrecord"
)

// urlPath embeds the base64 form of address as a single path segment. The
// encoding is used verbatim, "+" and "/" included.
func urlPath(urn, address string) string {
	return urnPath(urn) + "/urls/base64/" + base64.StdEncoding.EncodeToString([]byte(address))
}

// GetURLs lists the URLs of a URN. With onlyOwn set, only the URLs owned by
// the authenticated institution are returned.
func (c *Client) GetURLs(ctx context.Context, urn string, onlyOwn bool) ([]*urlrecord.Record, error) {
	path := urnPath(urn) + "/urls"
	if onlyOwn {
		path = urnPath(urn) + "/my-urls"
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   path,
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var list urlList
	if err := decode(resp, &list); err != nil {
		return nil, fmt.Errorf("failed to get URLs of %s: %w", urn, err)
	}

	urls := make([]*urlrecord.Record, 0, len(list.Items))
	for _, item := range list.Items {
		if item != nil {
			urls = append(urls, item)
		}
	}

	c.logger.Debug().Str("urn", urn).Bool("only_own", onlyOwn).Int("count", len(urls)).Msg("Retrieved URLs")
	return urls, nil
}

// GetOwnURLs lists the URLs of a URN owned by the authenticated institution
func (c *Client) GetOwnURLs(ctx context.Context, urn string) ([]*urlrecord.Record, error) {
	return c.GetURLs(ctx, urn, true)
}

// GetURLDetails retrieves a single URL object of a URN
func (c *Client) GetURLDetails(ctx context.Context, urn string, address urlrecord.Input) (*urlrecord.Record, error) {
	record, err := urlrecord.StrictOne(address)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   urlPath(urn, record.URL()),
	})
	if err != nil {
		return nil, err
	}

	var details urlrecord.Record
	if err := decode(resp, &details); err != nil {
		return nil, fmt.Errorf("failed to get URL %s of %s: %w", record.URL(), urn, err)
	}
	return &details, nil
}

// URLExists checks if address is registered under urn. Only failures that
// prevented an answer, such as transport faults or invalid input, are
// returned as errors.
func (c *Client) URLExists(ctx context.Context, urn string, address urlrecord.Input) (bool, error) {
	record, err := c.GetURLDetails(ctx, urn, address)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) || errors.Is(err, ErrDecode) {
			return false, nil
		}
		return false, err
	}
	return record != nil, nil
}

// AddURL attaches a URL to a URN and returns the object created by the
// service
func (c *Client) AddURL(ctx context.Context, urn string, address urlrecord.Input) (*urlrecord.Record, error) {
	record, err := urlrecord.StrictOne(address)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   urnPath(urn) + "/urls",
		auth:   true,
		body:   record.APIData(),
	})
	if err != nil {
		return nil, err
	}

	var created urlrecord.Record
	if err := decode(resp, &created); err != nil {
		return nil, fmt.Errorf("failed to add URL %s to %s: %w", record.URL(), urn, err)
	}

	c.logger.Info().Str("urn", urn).Str("url", record.URL()).Msg("Added URL")
	return &created, nil
}

// DeleteURL removes a URL from a URN. Only a 204 response counts as success.
func (c *Client) DeleteURL(ctx context.Context, urn string, address urlrecord.Input) (bool, error) {
	record, err := urlrecord.StrictOne(address)
	if err != nil {
		return false, err
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodDelete,
		path:   urlPath(urn, record.URL()),
		auth:   true,
	})
	if err != nil {
		return false, err
	}

	if err := expectNoContent(resp); err != nil {
		return false, fmt.Errorf("failed to delete URL %s from %s: %w", record.URL(), urn, err)
	}

	c.logger.Info().Str("urn", urn).Str("url", record.URL()).Msg("Deleted URL")
	return true, nil
}

// UpdatePriority changes the resolution priority of a URL. Only a 204
// response counts as success.
func (c *Client) UpdatePriority(ctx context.Context, urn string, address urlrecord.Input, priority int) (bool, error) {
	record, err := urlrecord.StrictOne(address)
	if err != nil {
		return false, err
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPatch,
		path:   urlPath(urn, record.URL()),
		auth:   true,
		body:   urlrecord.NewWithPriority(record.URL(), priority).PriorityData(),
	})
	if err != nil {
		return false, err
	}

	if err := expectNoContent(resp); err != nil {
		return false, fmt.Errorf("failed to update priority of %s: %w", record.URL(), err)
	}
	return true, nil
}

// ExchangeOwnURLs replaces all URLs the caller owns on a URN. Any 2xx
// response is a success; a JSON body, when present, is returned as well.
func (c *Client) ExchangeOwnURLs(ctx context.Context, urn string, urls urlrecord.Input) (*ExchangeResult, error) {
	records, err := urlrecord.Strict(urls)
	if err != nil {
		return nil, err
	}

	payload := make([]map[string]any, 0, len(records))
	for _, r := range records {
		payload = append(payload, r.APIData())
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPatch,
		path:   urnPath(urn) + "/my-urls",
		auth:   true,
		body:   payload,
	})
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, fmt.Errorf("failed to exchange URLs of %s: %w", urn, newAPIError(resp.status, resp.body))
	}

	result := &ExchangeResult{StatusCode: resp.status}
	if body := bytes.TrimSpace(resp.body); len(body) > 0 && json.Valid(body) {
		result.Body = body
		var list urlList
		if err := json.Unmarshal(body, &list); err == nil && list.Items != nil {
			result.URLs = list.Items
		}
	}

	c.logger.Info().Str("urn", urn).Int("urls", len(records)).Msg("Exchanged own URLs")
	return result, nil
}
