package companion

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Responses are the replies the canned responder picks from.
var Responses = []string{
	"I hear you, and what you're feeling is completely valid. Thank you for sharing that with me.",
	"It sounds like you're going through something difficult. Would you like to tell me more about what's on your mind?",
	"I'm here to listen. Sometimes just expressing our thoughts can help us process them better.",
	"Your feelings matter, and I'm honored that you're sharing them with me. How can I best support you right now?",
	"That takes courage to share. Remember that healing isn't linear, and it's okay to take things one day at a time.",
}

// Responder produces the companion's reply to a conversation.
type Responder interface {
	Reply(ctx context.Context, history []Message) (string, error)
}

// CannedResponder waits, then returns one of Responses at random.
// It ignores the conversation content.
type CannedResponder struct {
	delay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ Responder = (*CannedResponder)(nil)

// NewCannedResponder creates a responder that replies after delay.
// src seeds the choice of reply; pass nil for a random seed.
func NewCannedResponder(delay time.Duration, src rand.Source) *CannedResponder {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &CannedResponder{delay: delay, rnd: rand.New(src)}
}

// Reply waits for the configured delay, or until ctx is cancelled.
func (r *CannedResponder) Reply(ctx context.Context, _ []Message) (string, error) {
	if r.delay > 0 {
		t := time.NewTimer(r.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	r.mu.Lock()
	i := r.rnd.IntN(len(Responses))
	r.mu.Unlock()
	return Responses[i], nil
}
