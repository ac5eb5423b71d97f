package story

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrMissingInformation is the only validation failure a submission can have.
var ErrMissingInformation = errors.New("missing information: please fill in all fields and select at least one emotion")

// ThankYouMessage is returned with every accepted submission.
const ThankYouMessage = "Thank you for sharing your story. It may help someone who needs to hear it."

// Submission is a story as entered by its author.
type Submission struct {
	Title    string
	Content  string
	Author   string // blank posts anonymously
	Emotions EmotionSet
	Image    string
}

// Validate checks that title, content and at least one emotion are present.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Content) == "" || s.Emotions.Len() == 0 {
		return ErrMissingInformation
	}
	return nil
}

// DisplayAuthor returns the author, or AnonymousAuthor when blank.
func (s Submission) DisplayAuthor() string {
	if a := strings.TrimSpace(s.Author); a != "" {
		return a
	}
	return AnonymousAuthor
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Receipt acknowledges a published submission.
type Receipt struct {
	ID          string
	Title       string
	Author      string
	Emotions    []Emotion
	Words       int
	PublishedAt time.Time
	Message     string
}

// Publisher hands a validated submission to whatever stores it.
type Publisher interface {
	Publish(ctx context.Context, sub Submission) (Receipt, error)
}

// SimulatedPublisher stands in for a backend: it waits, then acknowledges.
// Nothing is stored.
type SimulatedPublisher struct {
	delay time.Duration
	clock Clock
	idgen IDGenerator
}

var _ Publisher = (*SimulatedPublisher)(nil)

// NewSimulatedPublisher creates a publisher that acknowledges after delay.
func NewSimulatedPublisher(delay time.Duration, clock Clock, idgen IDGenerator) *SimulatedPublisher {
	return &SimulatedPublisher{delay: delay, clock: clock, idgen: idgen}
}

// Publish waits for the configured delay, or until ctx is cancelled.
func (p *SimulatedPublisher) Publish(ctx context.Context, sub Submission) (Receipt, error) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		}
	}

	return Receipt{
		ID:          p.idgen.New(),
		Title:       strings.TrimSpace(sub.Title),
		Author:      sub.DisplayAuthor(),
		Emotions:    sub.Emotions.Slice(),
		Words:       WordCount(sub.Content),
		PublishedAt: p.clock.Now(),
		Message:     ThankYouMessage,
	}, nil
}
