package fhir

import "context"

// PageFetcher fetches the bundle at an absolute page URL. The "next"
// link of a bundle is a complete reference, so no parameters are
// attached.
type PageFetcher func(ctx context.Context, pageURL string) (*Bundle, error)

// WalkPages accumulates resources across a page sequence, starting from
// first and following "next" links through fetch. Entries without a
// resource payload are skipped. A missing or empty "next" link ends the
// walk; a fetch error terminates it and propagates. Whenever the
// accumulated count exceeds maxResults the walk stops without fetching
// further pages and fails with a BoundExceededError.
func WalkPages(ctx context.Context, first *Bundle, fetch PageFetcher, maxResults int) ([]Resource, error) {
	resources := first.Resources()
	if len(resources) > maxResults {
		return nil, &BoundExceededError{Limit: maxResults, Accumulated: len(resources)}
	}

	// Pages are fetched strictly sequentially: the next link is only
	// known once the prior page has been parsed.
	for page := first; page.NextLink() != ""; {
		next, err := fetch(ctx, page.NextLink())
		if err != nil {
			return nil, err
		}

		resources = append(resources, next.Resources()...)
		if len(resources) > maxResults {
			return nil, &BoundExceededError{Limit: maxResults, Accumulated: len(resources)}
		}

		page = next
	}

	return resources, nil
}
