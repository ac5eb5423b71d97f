package story_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"storyshare/internal/story"
	"storyshare/internal/testutil"
)

func TestSubmission_Validate(t *testing.T) {
	complete := story.Submission{
		Title:    "A small win",
		Content:  "I went outside today.",
		Emotions: story.NewEmotionSet(story.Joy),
	}

	tests := []struct {
		name    string
		modify  func(s story.Submission) story.Submission
		wantErr bool
	}{
		{name: "complete", modify: func(s story.Submission) story.Submission { return s }},
		{name: "author is optional", modify: func(s story.Submission) story.Submission { s.Author = ""; return s }},
		{name: "missing title", modify: func(s story.Submission) story.Submission { s.Title = ""; return s }, wantErr: true},
		{name: "blank title", modify: func(s story.Submission) story.Submission { s.Title = "   "; return s }, wantErr: true},
		{name: "missing content", modify: func(s story.Submission) story.Submission { s.Content = "\n\t"; return s }, wantErr: true},
		{name: "no emotions", modify: func(s story.Submission) story.Submission { s.Emotions = story.EmotionSet{}; return s }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.modify(complete).Validate()
			if tt.wantErr {
				if !errors.Is(err, story.ErrMissingInformation) {
					t.Errorf("Validate() error = %v, want ErrMissingInformation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three\nfour\tfive", 5},
	}
	for _, tt := range tests {
		if got := story.WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSubmission_DisplayAuthor(t *testing.T) {
	if got := (story.Submission{}).DisplayAuthor(); got != story.AnonymousAuthor {
		t.Errorf("DisplayAuthor() = %q, want %q", got, story.AnonymousAuthor)
	}
	if got := (story.Submission{Author: " Sam "}).DisplayAuthor(); got != "Sam" {
		t.Errorf("DisplayAuthor() = %q, want %q", got, "Sam")
	}
}

func TestSimulatedPublisher_Publish(t *testing.T) {
	clock := testutil.FixedClock()
	p := story.NewSimulatedPublisher(0, clock, testutil.NewStubIDGenerator())

	got, err := p.Publish(context.Background(), story.Submission{
		Title:    "  Morning walk ",
		Content:  "the air was cold and clear",
		Emotions: story.NewEmotionSet(story.Joy, story.Hope),
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	want := story.Receipt{
		ID:          "story-1",
		Title:       "Morning walk",
		Author:      story.AnonymousAuthor,
		Emotions:    []story.Emotion{story.Hope, story.Joy},
		Words:       6,
		PublishedAt: clock.Now(),
		Message:     story.ThankYouMessage,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Publish() mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulatedPublisher_Delay(t *testing.T) {
	p := story.NewSimulatedPublisher(20*time.Millisecond, testutil.FixedClock(), testutil.NewStubIDGenerator())

	start := time.Now()
	if _, err := p.Publish(context.Background(), story.Submission{Title: "t"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Publish() returned after %v, want at least 20ms", elapsed)
	}
}

func TestSimulatedPublisher_Cancel(t *testing.T) {
	p := story.NewSimulatedPublisher(time.Hour, testutil.FixedClock(), testutil.NewStubIDGenerator())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Publish(ctx, story.Submission{Title: "t"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Publish() error = %v, want context.Canceled", err)
	}
}
