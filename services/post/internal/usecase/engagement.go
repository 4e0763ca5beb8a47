package usecase

import (
	"context"
	"sync"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/repo/persistent"
)

// ViewCounter records post views in the background. Each Increment is an
// atomic +1 at the store, so concurrent readers never lose updates.
type ViewCounter struct {
	repo    persistent.PostRepository
	logger  *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewViewCounter(repo persistent.PostRepository, timeout time.Duration, logger *logger.Logger) *ViewCounter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ViewCounter{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
	}
}

// Increment returns immediately. Failures are logged and never reach the reader.
func (c *ViewCounter) Increment(postID string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.repo.IncrementViews(ctx, postID, 1); err != nil {
			c.logger.Warn("Failed to increment views for post %s: %v", postID, err)
		}
	}()
}

// Wait blocks until every queued increment has finished.
func (c *ViewCounter) Wait() {
	c.wg.Wait()
}
