package events

import (
	"context"
	"fmt"
	"sync"
)

type FakePublisher struct {
	Requested   []PasswordResetRequested
	Completed   []PasswordResetCompleted
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (p *FakePublisher) PublishResetRequested(ctx context.Context, e PasswordResetRequested) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish reset requested event %v", e)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Requested = append(p.Requested, e)
	return nil
}

func (p *FakePublisher) PublishResetCompleted(ctx context.Context, e PasswordResetCompleted) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish reset completed event %v", e)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Completed = append(p.Completed, e)
	return nil
}
