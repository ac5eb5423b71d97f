package story

import (
	"context"
	"fmt"
	"io"
	"time"
)

// StoryService coordinates catalog reads, asset lookup and submissions for the CLI.
type StoryService struct {
	catalogs  CatalogSource
	assets    AssetSource
	publisher Publisher
	logger    Logger
	clock     Clock
}

// NewStoryService creates a StoryService with the provided dependencies.
// assets may be nil when images are not needed.
func NewStoryService(catalogs CatalogSource, assets AssetSource, publisher Publisher, logger Logger, clock Clock) *StoryService {
	return &StoryService{
		catalogs:  catalogs,
		assets:    assets,
		publisher: publisher,
		logger:    logger,
		clock:     clock,
	}
}

// Now returns the service clock's current time.
func (s *StoryService) Now() time.Time { return s.clock.Now() }

// Catalog returns the named catalog.
func (s *StoryService) Catalog(ctx context.Context, name string) (*Catalog, error) {
	c, err := s.catalogs.Catalog(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %q: %w", name, err)
	}
	return c, nil
}

// Browse returns the stories of the named catalog visible under state.
func (s *StoryService) Browse(ctx context.Context, name string, state FilterState) ([]Story, error) {
	c, err := s.Catalog(ctx, name)
	if err != nil {
		return nil, err
	}
	visible := c.Filter(state)
	s.logger.Debug("catalog filtered",
		"catalog", name,
		"search", state.Search,
		"emotions", state.Emotions.Slice(),
		"visible", len(visible),
		"total", c.Len(),
	)
	return visible, nil
}

// Story returns a single story from the named catalog.
func (s *StoryService) Story(ctx context.Context, name string, id int) (Story, error) {
	c, err := s.Catalog(ctx, name)
	if err != nil {
		return Story{}, err
	}
	return c.Find(id)
}

// Image streams the story's image asset to w.
func (s *StoryService) Image(ctx context.Context, st Story, w io.Writer) error {
	if s.assets == nil {
		return fmt.Errorf("no asset source configured")
	}
	if st.Image == "" {
		return fmt.Errorf("story %d has no image", st.ID)
	}
	if err := s.assets.Get(ctx, st.Image, w); err != nil {
		return fmt.Errorf("fetching image for story %d: %w", st.ID, err)
	}
	return nil
}

// Submit validates sub and, if valid, publishes it asynchronously.
// Validation failures are returned directly; publish failures arrive through the Pending.
func (s *StoryService) Submit(ctx context.Context, sub Submission) (*Pending[Receipt], error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("submitting story", "title", sub.Title, "words", WordCount(sub.Content))
	return Go(ctx, func(ctx context.Context) (Receipt, error) {
		r, err := s.publisher.Publish(ctx, sub)
		if err != nil {
			s.logger.Error("publishing story failed", "title", sub.Title, "error", err)
			return Receipt{}, fmt.Errorf("publishing story: %w", err)
		}
		s.logger.Info("story published", "id", r.ID, "title", r.Title)
		return r, nil
	}), nil
}
