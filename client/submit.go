package client

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"otconsole/models"
)

const DefaultConcurrency = 4

type SubmitResult struct {
	Input EntryInput
	Entry *models.OvertimeEntry
	Err   error
}

// Submit creates every entry, at most concurrency at a time, and returns one
// result per input in input order. Entries without a client reference get a
// fresh one so that resubmitting the returned inputs does not duplicate rows.
// One failed entry does not stop the others.
func (c *Client) Submit(ctx context.Context, s *Session, entries []EntryInput, concurrency int) []SubmitResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]SubmitResult, len(entries))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, in := range entries {
		if in.ClientRef == "" {
			in.ClientRef = uuid.NewString()
		}
		results[i].Input = in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Entry, results[i].Err = c.CreateEntry(ctx, s, in)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed returns the results that carry an error.
func Failed(results []SubmitResult) []SubmitResult {
	var failed []SubmitResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
