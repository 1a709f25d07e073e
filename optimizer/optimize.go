// File: optimizer/optimize.go
package optimizer

import (
	"context"
	"fmt"
)

// OptimizePrompt optimizes prompt with a throwaway in-memory engine. Callers
// that need caching, analytics or history should keep an Engine instead.
func OptimizePrompt(ctx context.Context, prompt string, opts ...OptimizeOption) (*OptimizationResult, error) {
	engine := NewEngine(ctx, WithCaching(false), WithHistoryLimit(0))
	defer engine.Close()

	result, err := engine.Optimize(ctx, prompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}
	return result, nil
}
