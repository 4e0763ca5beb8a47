package usecase

import (
	"errors"
	"testing"
	"time"

	"newsdesk/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestViewCounter_IncrementsInBackground(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("IncrementViews", mock.Anything, "post-1", int64(1)).Return(nil).Times(3)

	counter := NewViewCounter(repo, time.Second, logger.New())
	for i := 0; i < 3; i++ {
		counter.Increment("post-1")
	}
	counter.Wait()

	repo.AssertExpectations(t)
}

func TestViewCounter_SwallowsStoreErrors(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("IncrementViews", mock.Anything, "post-1", int64(1)).Return(errors.New("timeout")).Once()

	counter := NewViewCounter(repo, 0, logger.New())
	counter.Increment("post-1")
	counter.Wait()

	repo.AssertExpectations(t)
}
