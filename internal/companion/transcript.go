package companion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"storyshare/internal/story"
)

// UserLabel names the user's lines in a transcript.
const UserLabel = "You"

// FormatMessage renders one message as "HH:MM name: text".
func FormatMessage(p Persona, m Message) string {
	name := p.DisplayName()
	if m.FromUser {
		name = UserLabel
	}
	return fmt.Sprintf("%s %s: %s", m.At.Format("15:04"), name, m.Text)
}

// WriteTranscript writes one formatted line per message to w.
func WriteTranscript(w io.Writer, p Persona, msgs []Message) error {
	for _, m := range msgs {
		if _, err := fmt.Fprintln(w, FormatMessage(p, m)); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
	}
	return nil
}

// ExportTranscript writes the transcript to path, encrypted with enc when it
// is non-nil. The file is replaced atomically.
func ExportTranscript(path string, p Persona, msgs []Message, enc story.Encryptor) error {
	var plain bytes.Buffer
	if err := WriteTranscript(&plain, p, msgs); err != nil {
		return err
	}

	var out bytes.Buffer
	if enc != nil {
		if err := enc.Encrypt(&plain, &out); err != nil {
			return fmt.Errorf("encrypting transcript: %w", err)
		}
	} else {
		out = plain
	}

	return writeFileAtomic(path, &out)
}

// writeFileAtomic writes r to a temp file beside path and renames it into place.
func writeFileAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating transcript directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".transcript-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
