package publish

import (
	"context"
	"sync"
)

// FanOutPublisher publishes to multiple publishers in parallel.
type FanOutPublisher struct {
	publishers []Publisher
}

func NewFanOutPublisher(publishers ...Publisher) *FanOutPublisher {
	return &FanOutPublisher{
		publishers: publishers,
	}
}

func (f *FanOutPublisher) Publish(ctx context.Context, topic, value string) error {
	var wg sync.WaitGroup
	errs := make([]error, len(f.publishers))

	for i, pub := range f.publishers {
		wg.Add(1)
		go func(idx int, p Publisher) {
			defer wg.Done()
			errs[idx] = p.Publish(ctx, topic, value)
		}(i, pub)
	}
	wg.Wait()

	// Return the first error found; the others were still attempted.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
