package story

import (
	"errors"
	"fmt"
	"strings"
)

// Emotion is a tag attached to a story.
type Emotion string

const (
	Hope    Emotion = "Hope"
	Sadness Emotion = "Sadness"
	Joy     Emotion = "Joy"
	Fear    Emotion = "Fear"
	Love    Emotion = "Love"
	Anger   Emotion = "Anger"

	// Anxiety appears on stories for display only. It shares Fear's tone and
	// is never offered as a filter option.
	Anxiety Emotion = "Anxiety"
)

// ErrUnknownEmotion is returned when a tag is not part of the known set.
var ErrUnknownEmotion = errors.New("unknown emotion")

// Emotions returns the filterable emotions in display order.
func Emotions() []Emotion {
	return []Emotion{Hope, Sadness, Joy, Fear, Love, Anger}
}

// ParseEmotion resolves a filterable emotion name, ignoring case and surrounding space.
func ParseEmotion(s string) (Emotion, error) {
	name := strings.TrimSpace(s)
	for _, e := range Emotions() {
		if strings.EqualFold(name, string(e)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
}

// ParseTag resolves any tag that may appear on a story, including display-only ones.
func ParseTag(s string) (Emotion, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(Anxiety)) {
		return Anxiety, nil
	}
	return ParseEmotion(s)
}

// Tone returns the emotion whose color this tag is rendered with.
func (e Emotion) Tone() Emotion {
	if e == Anxiety {
		return Fear
	}
	return e
}

// Filterable reports whether e can be selected as a filter.
func (e Emotion) Filterable() bool {
	return rank(e) < len(Emotions())
}

func (e Emotion) String() string { return string(e) }

// rank orders emotions for display. Unknown tags sort last.
func rank(e Emotion) int {
	for i, known := range Emotions() {
		if known == e {
			return i
		}
	}
	if e == Anxiety {
		return len(Emotions())
	}
	return len(Emotions()) + 1
}
