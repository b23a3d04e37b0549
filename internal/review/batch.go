package review

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Input is one document submitted for batch analysis.
type Input struct {
	FileName string `json:"fileName"`
	Text     string `json:"text"`
}

// AnalyzeBatch analyzes documents in parallel. Results keep input order.
// Cancelling ctx stops documents that have not started yet.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []Input) ([]*Analysis, error) {
	results := make([]*Analysis, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.Analyze(in.FileName, in.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
