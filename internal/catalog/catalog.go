package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"storyshare/internal/story"
)

// ErrCatalogNotFound is returned when a named catalog does not exist.
var ErrCatalogNotFound = errors.New("catalog not found")

// document is the TOML layout of a catalog file:
//
//	[[catalogs]]
//	name = "all"
//
//	[[catalogs.stories]]
//	id = 1
//	title = "..."
//	emotions = ["Hope", "Joy"]
type document struct {
	Catalogs []catalogEntry `toml:"catalogs"`
}

type catalogEntry struct {
	Name    string       `toml:"name"`
	Stories []storyEntry `toml:"stories"`
}

type storyEntry struct {
	ID       int       `toml:"id"`
	Title    string    `toml:"title"`
	Content  string    `toml:"content"`
	Emotions []string  `toml:"emotions"`
	Author   string    `toml:"author"`
	TimeAgo  string    `toml:"time_ago"`
	Image    string    `toml:"image"`
	PostedAt time.Time `toml:"posted_at"`
}

// MemorySource holds catalogs already decoded into memory.
// It is safe for concurrent use because catalogs are never modified.
type MemorySource struct {
	names    []string
	catalogs map[string]*story.Catalog
}

var _ story.CatalogSource = (*MemorySource)(nil)

// NewMemorySource creates a source from prebuilt catalogs, keeping their order.
func NewMemorySource(catalogs ...*story.Catalog) (*MemorySource, error) {
	src := &MemorySource{catalogs: make(map[string]*story.Catalog, len(catalogs))}
	for _, c := range catalogs {
		if _, ok := src.catalogs[c.Name()]; ok {
			return nil, fmt.Errorf("duplicate catalog name: %q", c.Name())
		}
		src.catalogs[c.Name()] = c
		src.names = append(src.names, c.Name())
	}
	return src, nil
}

// Decode reads a TOML catalog document.
func Decode(r io.Reader) (*MemorySource, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	catalogs := make([]*story.Catalog, 0, len(doc.Catalogs))
	for _, entry := range doc.Catalogs {
		if entry.Name == "" {
			return nil, fmt.Errorf("catalog without a name")
		}
		stories := make([]story.Story, 0, len(entry.Stories))
		for _, se := range entry.Stories {
			s, err := se.toStory()
			if err != nil {
				return nil, fmt.Errorf("catalog %q: %w", entry.Name, err)
			}
			stories = append(stories, s)
		}
		c, err := story.NewCatalog(entry.Name, stories)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, c)
	}
	return NewMemorySource(catalogs...)
}

// toStory converts an entry, resolving its tags. A missing tag list is an empty set.
func (e storyEntry) toStory() (story.Story, error) {
	tags := make([]story.Emotion, 0, len(e.Emotions))
	for _, raw := range e.Emotions {
		tag, err := story.ParseTag(raw)
		if err != nil {
			return story.Story{}, fmt.Errorf("story %d: %w", e.ID, err)
		}
		tags = append(tags, tag)
	}
	return story.Story{
		ID:       e.ID,
		Title:    e.Title,
		Content:  e.Content,
		Emotions: tags,
		Author:   e.Author,
		TimeAgo:  e.TimeAgo,
		Image:    e.Image,
		PostedAt: e.PostedAt,
	}, nil
}

// Catalog returns the named catalog.
func (m *MemorySource) Catalog(_ context.Context, name string) (*story.Catalog, error) {
	c, ok := m.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCatalogNotFound, name)
	}
	return c, nil
}

// Names lists the catalog names in the order they were defined.
func (m *MemorySource) Names() []string {
	return append([]string(nil), m.names...)
}
