package story

import (
	"sort"
	"strings"
)

// EmotionSet is an immutable set of emotion tags. The zero value is empty.
type EmotionSet struct {
	m map[Emotion]struct{}
}

// NewEmotionSet returns a set holding the given tags.
func NewEmotionSet(tags ...Emotion) EmotionSet {
	if len(tags) == 0 {
		return EmotionSet{}
	}
	m := make(map[Emotion]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return EmotionSet{m: m}
}

// Has reports membership.
func (s EmotionSet) Has(e Emotion) bool {
	_, ok := s.m[e]
	return ok
}

// Len returns the number of tags in the set.
func (s EmotionSet) Len() int { return len(s.m) }

// Toggle returns a new set with e removed if present, added otherwise.
func (s EmotionSet) Toggle(e Emotion) EmotionSet {
	m := make(map[Emotion]struct{}, len(s.m)+1)
	for k := range s.m {
		m[k] = struct{}{}
	}
	if _, ok := m[e]; ok {
		delete(m, e)
	} else {
		m[e] = struct{}{}
	}
	if len(m) == 0 {
		return EmotionSet{}
	}
	return EmotionSet{m: m}
}

// Equal reports whether both sets hold the same tags.
func (s EmotionSet) Equal(other EmotionSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.m {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Slice returns the tags in display order.
func (s EmotionSet) Slice() []Emotion {
	out := make([]Emotion, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// intersects reports whether any of tags is in the set.
func (s EmotionSet) intersects(tags []Emotion) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// FilterState is the user-applied filter. Values are replaced, never mutated.
type FilterState struct {
	Search   string
	Emotions EmotionSet
}

// WithSearch returns a copy of the state with a new search term.
func (f FilterState) WithSearch(term string) FilterState {
	return FilterState{Search: term, Emotions: f.Emotions}
}

// Toggle returns a copy of the state with e toggled in the selection.
func (f FilterState) Toggle(e Emotion) FilterState {
	return FilterState{Search: f.Search, Emotions: f.Emotions.Toggle(e)}
}

// Clear returns the empty state.
func (f FilterState) Clear() FilterState {
	return FilterState{}
}

// IsEmpty reports whether the state lets every story through.
func (f FilterState) IsEmpty() bool {
	return f.Search == "" && f.Emotions.Len() == 0
}

// Matches reports whether a story passes both the search and emotion predicates.
func Matches(s Story, state FilterState) bool {
	return matchesSearch(s, strings.ToLower(state.Search)) && matchesEmotions(s, state.Emotions)
}

// Filter returns the stories matching state, in their original order.
func Filter(stories []Story, state FilterState) []Story {
	term := strings.ToLower(state.Search)
	out := make([]Story, 0, len(stories))
	for _, s := range stories {
		if matchesSearch(s, term) && matchesEmotions(s, state.Emotions) {
			out = append(out, s)
		}
	}
	return out
}

// matchesSearch expects term to be lowercased already.
func matchesSearch(s Story, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.Content), term)
}

// Selected tags are OR-ed: any overlap passes.
func matchesEmotions(s Story, selected EmotionSet) bool {
	if selected.Len() == 0 {
		return true
	}
	return selected.intersects(s.Emotions)
}
