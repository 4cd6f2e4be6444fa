// Package gitclone fetches repository content with a shallow system-git
// clone.
package gitclone

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Git clones repositories with `git clone --depth 1`. A per-clone timeout
// turns a hung clone into an ordinary fetch failure.
type Git struct {
	timeout time.Duration
	log     *zap.Logger
}

// New builds a Git fetcher. A non-positive timeout disables the bound.
func New(timeout time.Duration, log *zap.Logger) *Git {
	if log == nil {
		log = zap.NewNop()
	}
	return &Git{timeout: timeout, log: log}
}

// Fetch performs a depth-1 clone of cloneURL into dir. Any stale content
// at dir is removed first; on failure nothing is left behind.
func (g *Git) Fetch(ctx context.Context, cloneURL, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clear clone target: %w", err)
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", cloneURL, dir)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(dir)
		if ctx.Err() != nil {
			return fmt.Errorf("clone %s: %w", cloneURL, ctx.Err())
		}
		return fmt.Errorf("clone %s: %w", cloneURL, err)
	}

	g.log.Debug("cloned", zap.String("url", cloneURL), zap.Duration("took", time.Since(start)))
	return nil
}
