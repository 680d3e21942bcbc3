package dnb

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/dnburn/urlrecord"
)

// URNExistsMany checks several URNs concurrently. Results keep the input
// order and carry their own error; one failing URN does not stop the rest.
func (c *Client) URNExistsMany(ctx context.Context, urns []string) []URNExistsResult {
	results := make([]URNExistsResult, len(urns))
	if len(urns) == 0 {
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, urn := range urns {
		g.Go(func() error {
			exists, err := c.URNExists(ctx, urn)
			if err != nil {
				c.logger.Warn().Err(err).Str("urn", urn).Msg("Failed to check URN")
			}
			// Each goroutine owns its own index
			results[i] = URNExistsResult{URN: urn, Exists: exists, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// URLExistsMany checks concurrently which of the given URLs are registered
// under urn.
func (c *Client) URLExistsMany(ctx context.Context, urn string, urls urlrecord.Input) ([]URLExistsResult, error) {
	records, err := urlrecord.Strict(urls)
	if err != nil {
		return nil, err
	}

	results := make([]URLExistsResult, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, record := range records {
		g.Go(func() error {
			exists, err := c.URLExists(ctx, urn, record)
			results[i] = URLExistsResult{URL: record.URL(), Exists: exists, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}
