package companion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrVoiceUnsupported is reported when no recognizer is available.
// It is an expected state, not a failure.
var ErrVoiceUnsupported = errors.New("voice input not supported")

// Handlers receive recognizer events. Any of them may be nil.
type Handlers struct {
	OnResult func(transcript string)
	OnError  func(err error)
	OnEnd    func()
}

// Recognizer turns speech (or a stand-in for it) into text.
type Recognizer interface {
	// Start begins recognition. Events are delivered to h until the
	// recognizer ends on its own, Stop is called, or ctx is done.
	Start(ctx context.Context, h Handlers) error

	// Stop ends recognition and waits for pending events to be delivered.
	Stop()
}

// LineRecognizer treats each line read from a source as one transcript.
// It stands in for speech recognition with a dictation FIFO or file.
type LineRecognizer struct {
	open func() (io.ReadCloser, error)

	mu      sync.Mutex
	rc      io.ReadCloser
	done    chan struct{}
	stopped bool
}

var _ Recognizer = (*LineRecognizer)(nil)

// NewLineRecognizer reads from whatever open returns on each Start.
func NewLineRecognizer(open func() (io.ReadCloser, error)) *LineRecognizer {
	return &LineRecognizer{open: open}
}

// NewFileRecognizer reads dictation lines from path, a regular file or a FIFO.
// A FIFO is opened read-write so that opening does not wait for a writer and
// the reader does not see end of file when a writer disconnects.
func NewFileRecognizer(path string) *LineRecognizer {
	return NewLineRecognizer(func() (io.ReadCloser, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Mode()&os.ModeNamedPipe != 0 {
			return os.OpenFile(path, os.O_RDWR, 0)
		}
		return os.Open(path)
	})
}

// Start opens the source and reads lines in the background.
func (r *LineRecognizer) Start(ctx context.Context, h Handlers) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		select {
		case <-r.done:
			// previous run ended on its own
			r.rc.Close()
		default:
			return fmt.Errorf("recognizer already started")
		}
	}

	rc, err := r.open()
	if err != nil {
		return fmt.Errorf("opening dictation source: %w", err)
	}
	r.rc = rc
	r.done = make(chan struct{})
	r.stopped = false

	go r.read(rc, r.done, h)
	go func(done chan struct{}) {
		select {
		case <-ctx.Done():
			r.Stop()
		case <-done:
		}
	}(r.done)
	return nil
}

func (r *LineRecognizer) read(rc io.Reader, done chan struct{}, h Handlers) {
	defer close(done)

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if h.OnResult != nil {
			h.OnResult(line)
		}
	}

	if err := scanner.Err(); err != nil && !r.isStopped() && h.OnError != nil {
		h.OnError(fmt.Errorf("reading dictation: %w", err))
	}
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

func (r *LineRecognizer) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Stop closes the source and waits for the reader goroutine to exit.
// It is safe to call when not started.
func (r *LineRecognizer) Stop() {
	r.mu.Lock()
	done := r.done
	if done == nil {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	rc := r.rc
	r.mu.Unlock()

	rc.Close()
	<-done

	r.mu.Lock()
	if r.done == done {
		r.done = nil
		r.rc = nil
	}
	r.mu.Unlock()
}

// Draft is the message being composed. Dictated text is appended to it.
type Draft struct {
	mu   sync.Mutex
	text string
}

// Append adds a transcript, separated from existing text by one space.
func (d *Draft) Append(transcript string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := strings.TrimSpace(transcript)
	if d.text != "" {
		d.text += " " + t
		return
	}
	d.text = t
}

// Set replaces the draft.
func (d *Draft) Set(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}

// Text returns the draft.
func (d *Draft) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Take returns the draft and clears it.
func (d *Draft) Take() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := d.text
	d.text = ""
	return t
}

// Dictation connects a Recognizer to a Draft and tracks whether it is listening.
type Dictation struct {
	rec     Recognizer
	draft   *Draft
	onError func(error)

	mu        sync.Mutex
	listening bool
}

// NewDictation creates a dictation toggle. rec may be nil when voice input is
// unavailable. onError receives recognizer errors and may be nil.
func NewDictation(rec Recognizer, draft *Draft, onError func(error)) *Dictation {
	return &Dictation{rec: rec, draft: draft, onError: onError}
}

// Supported reports whether a recognizer is available.
func (d *Dictation) Supported() bool { return d.rec != nil }

// Listening reports whether recognition is in progress.
func (d *Dictation) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Toggle starts listening if idle and stops if listening.
// It returns ErrVoiceUnsupported when there is no recognizer.
func (d *Dictation) Toggle(ctx context.Context) error {
	if !d.Supported() {
		return ErrVoiceUnsupported
	}
	if d.Listening() {
		d.Stop()
		return nil
	}

	d.mu.Lock()
	d.listening = true
	d.mu.Unlock()

	err := d.rec.Start(ctx, Handlers{
		OnResult: d.draft.Append,
		OnError: func(err error) {
			d.setListening(false)
			if d.onError != nil {
				d.onError(err)
			}
		},
		OnEnd: func() { d.setListening(false) },
	})
	if err != nil {
		d.setListening(false)
		return err
	}
	return nil
}

// Stop ends recognition if it is running.
func (d *Dictation) Stop() {
	if d.rec == nil {
		return
	}
	d.rec.Stop()
	d.setListening(false)
}

func (d *Dictation) setListening(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listening = v
}
