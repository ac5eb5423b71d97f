package testutil

import (
	"context"
	"fmt"
	"sync"

	"storyshare/internal/story"
)

// StubPublisher records submissions and returns a canned receipt or error.
// When Gate is non-nil, Publish blocks until it is closed or ctx is done.
type StubPublisher struct {
	Err  error
	Gate chan struct{}

	mu          sync.Mutex
	submissions []story.Submission
}

var _ story.Publisher = (*StubPublisher)(nil)

func (p *StubPublisher) Publish(ctx context.Context, sub story.Submission) (story.Receipt, error) {
	if p.Gate != nil {
		select {
		case <-p.Gate:
		case <-ctx.Done():
			return story.Receipt{}, ctx.Err()
		}
	}

	p.mu.Lock()
	p.submissions = append(p.submissions, sub)
	n := len(p.submissions)
	p.mu.Unlock()

	if p.Err != nil {
		return story.Receipt{}, p.Err
	}
	return story.Receipt{
		ID:       fmt.Sprintf("stub-%d", n),
		Title:    sub.Title,
		Author:   sub.DisplayAuthor(),
		Emotions: sub.Emotions.Slice(),
		Words:    story.WordCount(sub.Content),
		Message:  story.ThankYouMessage,
	}, nil
}

// Submissions returns what has been published so far.
func (p *StubPublisher) Submissions() []story.Submission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]story.Submission(nil), p.submissions...)
}
