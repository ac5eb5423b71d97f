package assets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryAssets_PutAndGet(t *testing.T) {
	a := NewMemoryAssets()

	tests := []struct {
		name    string
		ref     string
		content string
	}{
		{name: "store and retrieve", ref: "story-hope.svg", content: "<svg/>"},
		{name: "empty content", ref: "empty.svg", content: ""},
		{name: "large content", ref: "large.png", content: strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.Put(tt.ref, strings.NewReader(tt.content)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			var buf bytes.Buffer
			if err := a.Get(context.Background(), tt.ref, &buf); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got := buf.String(); got != tt.content {
				t.Errorf("Get() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestMemoryAssets_GetMissing(t *testing.T) {
	a := NewMemoryAssets()
	var buf bytes.Buffer
	err := a.Get(context.Background(), "nope.svg", &buf)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Get() error = %v, want ErrAssetNotFound", err)
	}
}

func TestMemoryAssets_PutReplaces(t *testing.T) {
	a := NewMemoryAssets()
	_ = a.Put("img", strings.NewReader("old"))
	_ = a.Put("img", strings.NewReader("new"))

	var buf bytes.Buffer
	if err := a.Get(context.Background(), "img", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "new" {
		t.Errorf("Get() = %q, want %q", buf.String(), "new")
	}
}
