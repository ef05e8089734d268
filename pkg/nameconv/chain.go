package nameconv

import (
	"context"
	"errors"
	"fmt"
)

// ChainMode specifies how Chain evaluates its conventions.
type ChainMode int

const (
	// ChainAll evaluates every convention and returns all that accept the
	// name (default).
	ChainAll ChainMode = iota

	// ChainFirst stops at the first convention that accepts the name.
	ChainFirst
)

// Named pairs a Convention with a label, e.g. "save" or "publish".
type Named struct {
	Name       string
	Convention *Convention
}

// ChainResult is one accepting convention of a Chain evaluation.
type ChainResult struct {
	Convention string
	Match      Match
}

// Chain tries one name against several conventions in order.
type Chain struct {
	Mode        ChainMode
	Conventions []Named
}

// Evaluate evaluates name against the chained conventions.
//
// If no convention accepts the name, the rejection errors of every
// convention are joined and returned, each prefixed with the convention
// label. If the context is cancelled, Evaluate returns the results collected
// so far and the context error.
func (c *Chain) Evaluate(ctx context.Context, name string) ([]ChainResult, error) {
	var results []ChainResult
	var errs []error

	for _, nc := range c.Conventions {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		// Skip nil conventions
		if nc.Convention == nil {
			continue
		}

		m, err := nc.Convention.Evaluate(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", nc.Name, err))
			continue
		}
		results = append(results, ChainResult{Convention: nc.Name, Match: m})
		if c.Mode == ChainFirst {
			return results, nil
		}
	}

	if len(results) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}
