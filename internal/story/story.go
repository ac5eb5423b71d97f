package story

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// AnonymousAuthor is shown for stories posted without a name.
const AnonymousAuthor = "Anonymous"

var (
	ErrStoryNotFound  = errors.New("story not found")
	ErrDuplicateStory = errors.New("duplicate story id")
)

// Story is a read-only record shown to readers.
type Story struct {
	ID       int
	Title    string
	Content  string
	Emotions []Emotion
	Author   string
	TimeAgo  string // pre-formatted, e.g. "2 hours ago"
	Image    string // opaque asset reference
	PostedAt time.Time
}

// DisplayAuthor returns the author, or AnonymousAuthor when blank.
func (s Story) DisplayAuthor() string {
	if strings.TrimSpace(s.Author) == "" {
		return AnonymousAuthor
	}
	return s.Author
}

// DisplayTime returns TimeAgo when set, otherwise PostedAt relative to now.
func (s Story) DisplayTime(now time.Time) string {
	if s.TimeAgo != "" || s.PostedAt.IsZero() {
		return s.TimeAgo
	}
	return humanize.RelTime(s.PostedAt, now, "ago", "from now")
}

// HasEmotion reports whether the story carries the tag e.
func (s Story) HasEmotion(e Emotion) bool {
	for _, tag := range s.Emotions {
		if tag == e {
			return true
		}
	}
	return false
}

// Catalog is an ordered, immutable sequence of stories. Order is display order.
type Catalog struct {
	name    string
	stories []Story
	index   map[int]int
}

// NewCatalog builds a catalog, rejecting duplicate story ids.
func NewCatalog(name string, stories []Story) (*Catalog, error) {
	c := &Catalog{
		name:    name,
		stories: make([]Story, 0, len(stories)),
		index:   make(map[int]int, len(stories)),
	}
	for _, s := range stories {
		if _, ok := c.index[s.ID]; ok {
			return nil, fmt.Errorf("%w: %d in catalog %q", ErrDuplicateStory, s.ID, name)
		}
		s.Emotions = append([]Emotion(nil), s.Emotions...)
		c.index[s.ID] = len(c.stories)
		c.stories = append(c.stories, s)
	}
	return c, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of stories.
func (c *Catalog) Len() int { return len(c.stories) }

// Stories returns a copy of the stories in display order.
func (c *Catalog) Stories() []Story {
	return append([]Story(nil), c.stories...)
}

// Find returns the story with the given id.
func (c *Catalog) Find(id int) (Story, error) {
	i, ok := c.index[id]
	if !ok {
		return Story{}, fmt.Errorf("%w: %d", ErrStoryNotFound, id)
	}
	return c.stories[i], nil
}

// Filter returns the stories visible under state.
func (c *Catalog) Filter(state FilterState) []Story {
	return Filter(c.stories, state)
}
