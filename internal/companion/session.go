package companion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"storyshare/internal/story"
)

// ErrSlowDown is returned by Send when messages arrive faster than the configured rate.
var ErrSlowDown = errors.New("slow down: too many messages, please wait a moment")

// Message is one line of the conversation. IDs are sequential from 1.
type Message struct {
	ID       int
	Text     string
	FromUser bool
	At       time.Time
}

// NewLimiter allows perMinute messages per minute with the given burst.
// A non-positive perMinute disables limiting and returns nil.
func NewLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// Session is one conversation with the companion. It is safe for concurrent
// use; replies are appended from their own goroutines.
type Session struct {
	responder Responder
	limiter   *rate.Limiter
	clock     story.Clock
	logger    story.Logger

	mu       sync.Mutex
	persona  Persona
	messages []Message
}

// NewSession starts a conversation that opens with the persona's greeting.
// limiter may be nil for no rate limit.
func NewSession(persona Persona, responder Responder, limiter *rate.Limiter, clock story.Clock, logger story.Logger) *Session {
	s := &Session{
		responder: responder,
		limiter:   limiter,
		clock:     clock,
		logger:    logger,
		persona:   persona,
	}
	s.appendLocked(persona.Greeting(), false)
	return s
}

// Persona returns the current persona.
func (s *Session) Persona() Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona
}

// SetPersona changes the persona for future replies. Past messages are unchanged.
func (s *Session) SetPersona(p Persona) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = p
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Send appends the user's message and requests a reply.
// Blank text is ignored: no message is added and both results are nil.
// The reply is appended to the session when it arrives and is also
// delivered through the returned Pending.
func (s *Session) Send(ctx context.Context, text string) (*story.Pending[Message], error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.logger.Warn("companion message rate exceeded")
		return nil, ErrSlowDown
	}

	s.mu.Lock()
	user := s.appendLocked(text, true)
	history := append([]Message(nil), s.messages...)
	s.mu.Unlock()

	s.logger.Debug("companion message sent", "id", user.ID, "chars", len(text))

	return story.Go(ctx, func(ctx context.Context) (Message, error) {
		reply, err := s.responder.Reply(ctx, history)
		if err != nil {
			return Message{}, fmt.Errorf("companion reply: %w", err)
		}

		s.mu.Lock()
		msg := s.appendLocked(reply, false)
		s.mu.Unlock()

		s.logger.Debug("companion replied", "id", msg.ID)
		return msg, nil
	}), nil
}

func (s *Session) appendLocked(text string, fromUser bool) Message {
	msg := Message{
		ID:       len(s.messages) + 1,
		Text:     text,
		FromUser: fromUser,
		At:       s.clock.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}
