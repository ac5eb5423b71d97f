package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"storyshare/internal/assets"
	"storyshare/internal/catalog"
	"storyshare/internal/companion"
	"storyshare/internal/config"
	"storyshare/internal/encryption"
	"storyshare/internal/story"

	"golang.org/x/sync/errgroup"
)

// StoryApp is the application layer between the CLI and StoryService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw strings from flags and prompts, and closes the log on Close.
type StoryApp struct {
	cfg       *config.Config
	catalogs  story.CatalogSource
	assets    story.AssetSource
	encryptor story.Encryptor
	service   *story.StoryService
	logger    story.Logger
	clock     story.Clock
	op        *Operation
	logFile   io.Closer
}

// NewStoryApp creates a fully wired StoryApp from the given config.
// operation identifies the CLI command being run (e.g. "Browse", "Submit").
// console receives warnings and errors; it may be nil. The caller must call Close.
func NewStoryApp(ctx context.Context, cfg *config.Config, operation string, console io.Writer) (*StoryApp, error) {
	clock := story.RealClock{}
	op := NewOperation(operation, clock.Now())

	l, logFile, err := newLogger(cfg.Log, cfg.LogDir, op.ID, console)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	cats, err := catalog.NewSourceFromConfig(cfg.Catalog)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating catalog source: %w", err)
	}

	imgs, err := assets.NewSourceFromConfig(ctx, cfg.Assets, logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating asset source: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	pub := story.NewSimulatedPublisher(cfg.Submission.Delay.Duration, clock, story.UUIDGenerator{})
	svc := story.NewStoryService(cats, imgs, pub, logger, clock)

	logger.Debug("operation started", "operation", operation, "catalog", cfg.Catalog.Type, "assets", cfg.Assets.Type)

	return &StoryApp{
		cfg:       cfg,
		catalogs:  cats,
		assets:    imgs,
		encryptor: enc,
		service:   svc,
		logger:    logger,
		clock:     clock,
		op:        op,
		logFile:   logFile,
	}, nil
}

// track records err on the operation and returns it unchanged.
func (a *StoryApp) track(err error) error {
	a.op.Fail(err)
	return err
}

// Config returns the active configuration.
func (a *StoryApp) Config() *config.Config { return a.cfg }

// Now returns the current time of the app's clock.
func (a *StoryApp) Now() time.Time { return a.clock.Now() }

// CatalogNames lists the available catalogs.
func (a *StoryApp) CatalogNames() []string { return a.catalogs.Names() }

// CatalogName returns name, or the configured default catalog when name is blank.
func (a *StoryApp) CatalogName(name string) string {
	if name != "" {
		return name
	}
	if a.cfg.Catalog.Default != "" {
		return a.cfg.Catalog.Default
	}
	return "all"
}

// NewFilterState builds a filter from a search term and raw emotion names.
// Only filterable emotions are accepted.
func NewFilterState(search string, emotions []string) (story.FilterState, error) {
	set, err := parseEmotions(emotions)
	if err != nil {
		return story.FilterState{}, err
	}
	return story.FilterState{Search: search, Emotions: set}, nil
}

// parseEmotions resolves raw names into a set; repeats are merged.
func parseEmotions(raw []string) (story.EmotionSet, error) {
	var set story.EmotionSet
	for _, r := range raw {
		e, err := story.ParseEmotion(r)
		if err != nil {
			return story.EmotionSet{}, err
		}
		if !set.Has(e) {
			set = set.Toggle(e)
		}
	}
	return set, nil
}

// Browse returns the stories of a catalog visible under state.
func (a *StoryApp) Browse(ctx context.Context, catalogName string, state story.FilterState) ([]story.Story, error) {
	stories, err := a.service.Browse(ctx, a.CatalogName(catalogName), state)
	return stories, a.track(err)
}

// Story parses rawID and returns that story from the catalog.
func (a *StoryApp) Story(ctx context.Context, catalogName, rawID string) (story.Story, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return story.Story{}, a.track(fmt.Errorf("invalid story id %q: must be a number", rawID))
	}
	s, err := a.service.Story(ctx, a.CatalogName(catalogName), id)
	return s, a.track(err)
}

// SaveImage writes the story's image to path.
func (a *StoryApp) SaveImage(ctx context.Context, s story.Story, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return a.track(fmt.Errorf("creating image directory: %w", err))
	}
	f, err := os.Create(path)
	if err != nil {
		return a.track(fmt.Errorf("creating image file: %w", err))
	}
	if err := a.service.Image(ctx, s, f); err != nil {
		f.Close()
		os.Remove(path)
		return a.track(err)
	}
	return a.track(f.Close())
}

// Submit validates and publishes a story built from raw form values.
func (a *StoryApp) Submit(ctx context.Context, title, content, author string, emotions []string) (*story.Pending[story.Receipt], error) {
	set, err := parseEmotions(emotions)
	if err != nil {
		return nil, a.track(err)
	}

	p, err := a.service.Submit(ctx, story.Submission{
		Title:    title,
		Content:  content,
		Author:   author,
		Emotions: set,
	})
	return p, a.track(err)
}

// Companion bundles a chat session with its dictation state.
type Companion struct {
	Session   *companion.Session
	Draft     *companion.Draft
	Dictation *companion.Dictation
}

// NewCompanion starts a chat session. Blank name or voice keep the configured values.
// onVoiceError receives dictation errors and may be nil.
func (a *StoryApp) NewCompanion(name, voice string, onVoiceError func(error)) (*Companion, error) {
	persona := companion.Persona{Name: a.cfg.Companion.Name, Voice: companion.VoiceFemale}
	if name != "" {
		persona.Name = name
	}
	if voice == "" {
		voice = a.cfg.Companion.Voice
	}
	if voice != "" {
		v, err := companion.ParseVoice(voice)
		if err != nil {
			return nil, a.track(err)
		}
		persona.Voice = v
	}

	responder := companion.NewCannedResponder(a.cfg.Companion.ReplyDelay.Duration, nil)
	limiter := companion.NewLimiter(a.cfg.Companion.MessagesPerMin, a.cfg.Companion.Burst)
	session := companion.NewSession(persona, responder, limiter, a.clock, a.logger)

	var rec companion.Recognizer
	if p := a.cfg.Companion.DictationPath; p != "" {
		rec = companion.NewFileRecognizer(p)
	}
	draft := &companion.Draft{}
	dictation := companion.NewDictation(rec, draft, func(err error) {
		a.logger.Warn("voice input error", "error", err)
		if onVoiceError != nil {
			onVoiceError(err)
		}
	})

	a.logger.Info("companion session started", "name", persona.DisplayName(), "voice", string(persona.Voice), "voice_input", dictation.Supported())
	return &Companion{Session: session, Draft: draft, Dictation: dictation}, nil
}

// ExportTranscript writes the session's transcript to path, encrypted when requested.
func (a *StoryApp) ExportTranscript(path string, s *companion.Session, encrypt bool) error {
	var enc story.Encryptor
	if encrypt {
		if !a.encryptor.IsConfigured() {
			return a.track(fmt.Errorf("transcript keys not set up: run `storyshare config keys`"))
		}
		enc = a.encryptor
	}

	msgs := s.Messages()
	if err := companion.ExportTranscript(path, s.Persona(), msgs, enc); err != nil {
		return a.track(err)
	}
	a.logger.Info("transcript exported", "path", path, "messages", len(msgs), "encrypted", encrypt)
	return nil
}

// KeysConfigured reports whether transcript encryption keys exist.
func (a *StoryApp) KeysConfigured() bool { return a.encryptor.IsConfigured() }

// SetupKeys generates the transcript encryption keys.
func (a *StoryApp) SetupKeys(passphrase string) error {
	if err := a.encryptor.Setup(passphrase); err != nil {
		return a.track(fmt.Errorf("setting up encryption keys: %w", err))
	}
	a.logger.Info("encryption keys created")
	return nil
}

// DecryptTranscript unlocks the private key and writes the plaintext of path to w.
func (a *StoryApp) DecryptTranscript(path, passphrase string, w io.Writer) error {
	dc, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return a.track(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return a.track(fmt.Errorf("opening transcript: %w", err))
	}
	defer f.Close()

	if err := dc.Decrypt(f, w); err != nil {
		return a.track(fmt.Errorf("decrypting transcript: %w", err))
	}
	return nil
}

// Check verifies that every configured catalog loads and the asset source is
// reachable. The checks run concurrently; the first failure is returned.
func (a *StoryApp) Check(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range a.catalogs.Names() {
		g.Go(func() error {
			_, err := a.service.Catalog(ctx, name)
			return err
		})
	}
	g.Go(func() error {
		if err := a.assets.ValidateSetup(ctx); err != nil {
			return fmt.Errorf("asset source: %w", err)
		}
		return nil
	})
	return a.track(g.Wait())
}

// Close logs the outcome of the operation and closes the log file.
func (a *StoryApp) Close() error {
	elapsed := a.clock.Now().Sub(a.op.Started)
	args := []any{"operation", a.op.Name, "status", a.op.Status, "elapsed", elapsed}
	if a.op.Failed() {
		args = append(args, "error", a.op.Err)
	}
	a.logger.Info("operation finished", args...)

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}
