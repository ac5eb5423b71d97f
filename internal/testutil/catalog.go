package testutil

import (
	"strings"
	"testing"

	"storyshare/internal/assets"
	"storyshare/internal/catalog"
	"storyshare/internal/story"
)

// SampleStories returns a small catalog covering every filterable emotion.
func SampleStories() []story.Story {
	return []story.Story{
		{ID: 1, Title: "Finding Light", Content: "a garden helped me heal", Emotions: []story.Emotion{story.Hope, story.Sadness}, Image: "story-hope.svg"},
		{ID: 2, Title: "The Weight of Goodbye", Content: "leaving home", Emotions: []story.Emotion{story.Sadness, story.Love}, Author: "Maria S.", Image: "story-sadness.svg"},
		{ID: 3, Title: "Courage in Small Steps", Content: "speaking up at work", Emotions: []story.Emotion{story.Fear, story.Joy}},
		{ID: 4, Title: "Letting Go", Content: "I held onto anger", Emotions: []story.Emotion{story.Anger, story.Hope}},
	}
}

// NewTestCatalogSource returns a source with an "all" catalog of SampleStories
// and a "recommended" catalog holding the first two.
func NewTestCatalogSource(t *testing.T) *catalog.MemorySource {
	t.Helper()

	all, err := story.NewCatalog("all", SampleStories())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	rec, err := story.NewCatalog("recommended", SampleStories()[:2])
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	src, err := catalog.NewMemorySource(rec, all)
	if err != nil {
		t.Fatalf("building source: %v", err)
	}
	return src
}

// NewTestAssets returns in-memory assets holding the images used by SampleStories.
func NewTestAssets(t *testing.T) *assets.MemoryAssets {
	t.Helper()

	a := assets.NewMemoryAssets()
	for _, ref := range []string{"story-hope.svg", "story-sadness.svg"} {
		if err := a.Put(ref, strings.NewReader("<svg id=\""+ref+"\"/>")); err != nil {
			t.Fatalf("storing asset: %v", err)
		}
	}
	return a
}
