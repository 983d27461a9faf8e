package provider

import (
	"context"

	"golang.org/x/sync/errgroup"

	"caseforge/internal/types"
)

// GenerateBatch runs independent generation requests concurrently. Each
// request depends only on its own messages, so ordering between them is
// unspecified; results are returned positionally. The first error cancels
// the remaining requests.
func (r *Router) GenerateBatch(ctx context.Context, batches [][]types.ChatMessage, opts GenerateOptions) ([]string, error) {
	results := make([]string, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	for i, messages := range batches {
		i, messages := i, messages
		g.Go(func() error {
			text, err := r.Generate(gctx, messages, opts)
			if err != nil {
				return err
			}
			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
