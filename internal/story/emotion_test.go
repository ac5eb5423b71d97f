package story_test

import (
	"errors"
	"testing"

	"storyshare/internal/story"
)

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		in      string
		want    story.Emotion
		wantErr bool
	}{
		{in: "Hope", want: story.Hope},
		{in: "hope", want: story.Hope},
		{in: "  SADNESS ", want: story.Sadness},
		{in: "anger", want: story.Anger},
		{in: "Anxiety", wantErr: true},
		{in: "Boredom", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := story.ParseEmotion(tt.in)
			if tt.wantErr {
				if !errors.Is(err, story.ErrUnknownEmotion) {
					t.Errorf("ParseEmotion(%q) error = %v, want ErrUnknownEmotion", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEmotion(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseEmotion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	got, err := story.ParseTag("anxiety")
	if err != nil {
		t.Fatalf("ParseTag() error = %v", err)
	}
	if got != story.Anxiety {
		t.Errorf("ParseTag() = %q, want %q", got, story.Anxiety)
	}

	if _, err := story.ParseTag("Boredom"); !errors.Is(err, story.ErrUnknownEmotion) {
		t.Errorf("ParseTag(Boredom) error = %v, want ErrUnknownEmotion", err)
	}
}

func TestEmotion_Tone(t *testing.T) {
	if got := story.Anxiety.Tone(); got != story.Fear {
		t.Errorf("Anxiety.Tone() = %q, want %q", got, story.Fear)
	}
	for _, e := range story.Emotions() {
		if got := e.Tone(); got != e {
			t.Errorf("%s.Tone() = %q, want itself", e, got)
		}
	}
}

func TestEmotion_Filterable(t *testing.T) {
	for _, e := range story.Emotions() {
		if !e.Filterable() {
			t.Errorf("%s.Filterable() = false, want true", e)
		}
	}
	if story.Anxiety.Filterable() {
		t.Error("Anxiety.Filterable() = true, want false")
	}
}

func TestEmotions_Order(t *testing.T) {
	want := []story.Emotion{story.Hope, story.Sadness, story.Joy, story.Fear, story.Love, story.Anger}
	got := story.Emotions()
	if len(got) != len(want) {
		t.Fatalf("len(Emotions()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Emotions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
