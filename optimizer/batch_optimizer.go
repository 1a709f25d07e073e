// File: optimizer/batch_optimizer.go

package optimizer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/teilomillet/promptlift/types"
)

// BatchOptimize optimizes prompts in windows of bo.Concurrent prompts.
// Results keep the input order: Results[i] belongs to prompts[i] and is nil
// when that item failed.
//
// With StopOnError unset, failures are collected in Errors and the batch
// continues. With StopOnError set, the batch stops after the window holding
// the first failure and that failure is returned as a *types.BatchItemError.
// Cancelling ctx stops the batch between windows.
func (e *Engine) BatchOptimize(ctx context.Context, prompts []string, bo BatchOptions, opts ...OptimizeOption) (*BatchResult, error) {
	window := bo.Concurrent
	if window <= 0 {
		window = e.batchConcurrency
	}

	res := &BatchResult{
		Results: make([]*OptimizationResult, len(prompts)),
		Errors:  []*types.BatchItemError{},
		Summary: BatchSummary{Total: len(prompts)},
	}

	for start := 0; start < len(prompts); start += window {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return res, err
			}
		}

		end := min(start+window, len(prompts))
		failures := make([]*types.BatchItemError, end-start)

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				r, err := e.Optimize(ctx, prompts[i], opts...)
				if err != nil {
					failures[i-start] = &types.BatchItemError{Index: i, Prompt: prompts[i], Err: err}
					return nil
				}
				res.Results[i] = r
				return nil
			})
		}
		_ = g.Wait()
		if bo.Progress != nil {
			bo.Progress(end - start)
		}

		for _, f := range failures {
			if f == nil {
				continue
			}
			e.logger.Warn("Batch item failed", "index", f.Index, "error", f.Err)
			res.Errors = append(res.Errors, f)
		}
		if bo.StopOnError && len(res.Errors) > 0 {
			res.tally()
			return res, res.Errors[0]
		}
	}

	res.tally()
	return res, nil
}

func (r *BatchResult) tally() {
	r.Summary.Failed = len(r.Errors)
	r.Summary.Successful = 0
	for _, item := range r.Results {
		if item != nil {
			r.Summary.Successful++
		}
	}
}
