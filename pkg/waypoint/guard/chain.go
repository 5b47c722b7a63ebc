// Package guard runs "may I unload?" checks against displayed content before
// a transition is allowed to replace it.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Sentinel errors for guard outcomes.
var (
	// ErrDenied indicates a guard refused to let its content unload.
	ErrDenied = errors.New("guard denied unload")

	// ErrTimeout indicates the chain-wide timeout elapsed before every guard
	// resolved. It is handled exactly like ErrDenied.
	ErrTimeout = errors.New("guard timed out")
)

// Result is the outcome of a guard chain.
type Result int

const (
	Allow Result = iota
	Deny
	Timeout
)

func (r Result) String() string {
	switch r {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Err maps a result to its sentinel error; Allow maps to nil.
func (r Result) Err() error {
	switch r {
	case Deny:
		return ErrDenied
	case Timeout:
		return ErrTimeout
	default:
		return nil
	}
}

// Options configures a Chain.
type Options struct {
	Timeout time.Duration // Chain-wide timeout (default 120s)
	Logger  *slog.Logger
}

// Chain runs the unload checks of a set of content roots concurrently.
type Chain struct {
	mu      sync.RWMutex
	timeout time.Duration
	logger  *slog.Logger
}

// NewChain creates a Chain. A zero timeout uses constants.DefaultGuardTimeout.
func NewChain(opts Options) *Chain {
	c := &Chain{logger: internal.OrDefault(opts.Logger, "guard")}
	c.SetTimeout(opts.Timeout)
	return c
}

// Timeout returns the chain-wide timeout.
func (c *Chain) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// SetTimeout replaces the chain-wide timeout for subsequent runs.
func (c *Chain) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = constants.DefaultGuardTimeout
	}
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// Run invokes the unload check of every root that has one, without letting
// any check delay the start of another. It resolves Allow once all checks
// allow, Deny on the first denial (checks still pending are abandoned, not
// awaited) and Timeout when the chain-wide timeout elapses first.
//
// A root without view.UnloadChecker is an immediate allow. A check that
// fails with an error counts as a denial. If ctx is cancelled Run returns
// its error; the result is then meaningless.
func (c *Chain) Run(ctx context.Context, roots []view.Root) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Deny, err
	}

	checkers := make([]view.UnloadChecker, 0, len(roots))
	for _, root := range roots {
		if uc, ok := root.(view.UnloadChecker); ok {
			checkers = append(checkers, uc)
		}
	}
	if len(checkers) == 0 {
		return Allow, nil
	}

	timeout := c.Timeout()
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(tctx)
	for _, uc := range checkers {
		g.Go(func() error {
			return check(gctx, uc)
		})
	}

	err := g.Wait()
	switch {
	case err == nil:
		return Allow, nil
	case errors.Is(err, ErrDenied):
		c.logger.Info("Unload denied", "checks", len(checkers), "reason", err)
		return Deny, nil
	case ctx.Err() != nil:
		return Deny, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		c.logger.Warn("Unload check timed out", "checks", len(checkers), "timeout", timeout)
		return Timeout, nil
	default:
		return Deny, err
	}
}

type verdict struct {
	allow bool
	err   error
}

// check runs one unload check and returns as soon as it resolves or ctx is
// done. The check itself may not observe ctx; its late result is dropped.
func check(ctx context.Context, uc view.UnloadChecker) error {
	out := make(chan verdict, 1)
	go func() {
		allow, err := uc.CheckUnload(ctx)
		out <- verdict{allow: allow, err: err}
	}()

	select {
	case v := <-out:
		if v.err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrDenied, v.err)
		}
		if !v.allow {
			return ErrDenied
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
