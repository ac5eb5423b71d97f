package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"storyshare/internal/config"
	"storyshare/internal/story"
)

const twoCatalogs = `
[[catalogs]]
name = "home"

[[catalogs.stories]]
id = 7
title = "Morning"
content = "the sun came up"
emotions = ["hope", "Joy"]

[[catalogs]]
name = "archive"

[[catalogs.stories]]
id = 1
title = "Untagged"
content = "no emotions here"

[[catalogs.stories]]
id = 2
title = "Nervous"
content = "first day"
emotions = ["Anxiety"]
`

func TestDecode(t *testing.T) {
	src, err := Decode(strings.NewReader(twoCatalogs))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if diff := cmp.Diff([]string{"home", "archive"}, src.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	home, err := src.Catalog(context.Background(), "home")
	if err != nil {
		t.Fatalf("Catalog(home) error = %v", err)
	}
	s, err := home.Find(7)
	if err != nil {
		t.Fatalf("Find(7) error = %v", err)
	}
	if diff := cmp.Diff([]story.Emotion{story.Hope, story.Joy}, s.Emotions); diff != "" {
		t.Errorf("Emotions mismatch (-want +got):\n%s", diff)
	}

	archive, err := src.Catalog(context.Background(), "archive")
	if err != nil {
		t.Fatalf("Catalog(archive) error = %v", err)
	}
	untagged, _ := archive.Find(1)
	if len(untagged.Emotions) != 0 {
		t.Errorf("untagged story has emotions %v", untagged.Emotions)
	}
	nervous, _ := archive.Find(2)
	if !nervous.HasEmotion(story.Anxiety) {
		t.Errorf("story 2 emotions = %v, want Anxiety", nervous.Emotions)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed toml", "[[catalogs]\nname ="},
		{"unknown tag", "[[catalogs]]\nname = \"x\"\n[[catalogs.stories]]\nid = 1\nemotions = [\"Boredom\"]\n"},
		{"duplicate story id", "[[catalogs]]\nname = \"x\"\n[[catalogs.stories]]\nid = 1\n[[catalogs.stories]]\nid = 1\n"},
		{"duplicate catalog", "[[catalogs]]\nname = \"x\"\n[[catalogs]]\nname = \"x\"\n"},
		{"missing name", "[[catalogs]]\n[[catalogs.stories]]\nid = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func TestDecode_UnknownTagWrapsError(t *testing.T) {
	_, err := Decode(strings.NewReader("[[catalogs]]\nname = \"x\"\n[[catalogs.stories]]\nid = 1\nemotions = [\"Boredom\"]\n"))
	if !errors.Is(err, story.ErrUnknownEmotion) {
		t.Errorf("Decode() error = %v, want ErrUnknownEmotion", err)
	}
}

func TestMemorySource_CatalogNotFound(t *testing.T) {
	src, err := NewMemorySource()
	if err != nil {
		t.Fatalf("NewMemorySource() error = %v", err)
	}
	_, err = src.Catalog(context.Background(), "nope")
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("Catalog() error = %v, want ErrCatalogNotFound", err)
	}
}

func TestMemorySource_NamesIsCopy(t *testing.T) {
	src, err := Decode(strings.NewReader(twoCatalogs))
	if err != nil {
		t.Fatal(err)
	}
	names := src.Names()
	names[0] = "mutated"
	if src.Names()[0] != "home" {
		t.Error("Names() exposed internal slice")
	}
}

func TestEmbeddedSource(t *testing.T) {
	src, err := NewEmbeddedSource()
	if err != nil {
		t.Fatalf("NewEmbeddedSource() error = %v", err)
	}
	ctx := context.Background()

	recommended, err := src.Catalog(ctx, "recommended")
	if err != nil {
		t.Fatalf("Catalog(recommended) error = %v", err)
	}
	if recommended.Len() != 3 {
		t.Errorf("recommended Len() = %d, want 3", recommended.Len())
	}

	all, err := src.Catalog(ctx, "all")
	if err != nil {
		t.Fatalf("Catalog(all) error = %v", err)
	}
	if all.Len() != 6 {
		t.Errorf("all Len() = %d, want 6", all.Len())
	}

	for _, s := range all.Stories() {
		if s.Title == "" || s.Content == "" || len(s.Emotions) == 0 || s.Image == "" {
			t.Errorf("story %d is incomplete: %+v", s.ID, s)
		}
	}

	hopeful := all.Filter(story.FilterState{}.Toggle(story.Anger))
	if len(hopeful) != 1 || hopeful[0].Title != "Learning to Let Go" {
		t.Errorf("Filter(Anger) = %v, want only \"Learning to Let Go\"", hopeful)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(twoCatalogs), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	if len(src.Names()) != 2 {
		t.Errorf("Names() = %v, want 2 catalogs", src.Names())
	}

	if _, err := NewFileSource(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("NewFileSource() expected error for missing file")
	}
}

func TestNewSourceFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(twoCatalogs), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		cfg       config.CatalogConfig
		wantNames []string
		wantErr   bool
	}{
		{name: "embedded", cfg: config.CatalogConfig{Type: "embedded"}, wantNames: []string{"recommended", "all"}},
		{name: "empty type defaults to embedded", cfg: config.CatalogConfig{}, wantNames: []string{"recommended", "all"}},
		{name: "file", cfg: config.CatalogConfig{Type: "file", Path: path}, wantNames: []string{"home", "archive"}},
		{name: "file without path", cfg: config.CatalogConfig{Type: "file"}, wantErr: true},
		{name: "unknown type", cfg: config.CatalogConfig{Type: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSourceFromConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewSourceFromConfig() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSourceFromConfig() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantNames, src.Names()); diff != "" {
				t.Errorf("Names() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
