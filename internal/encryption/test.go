package encryption

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"storyshare/internal/story"
)

// testMarker opens every file written by TestEncryptor.
const testMarker = "storyshare-test-encryption v1\n"

// TestEncryptor is a reversible, deterministic stand-in for AgeEncryptor.
// It prefixes a marker line and stores the data unchanged after it.
// The passphrase given to Setup must be used to Unlock.
type TestEncryptor struct {
	passphrase string
	configured bool
}

var _ story.Encryptor = (*TestEncryptor)(nil)

// NewTestEncryptor returns a TestEncryptor that is already configured with
// an empty passphrase.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{configured: true}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.passphrase = passphrase
	e.configured = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := io.WriteString(w, testMarker); err != nil {
		return fmt.Errorf("writing test marker: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (story.DecryptionContext, error) {
	if passphrase != e.passphrase {
		return nil, fmt.Errorf("unlocking test key: wrong passphrase")
	}
	return &TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return e.configured
}

// TestDecryptionContext removes the marker written by TestEncryptor.
type TestDecryptionContext struct{}

var _ story.DecryptionContext = (*TestDecryptionContext)(nil)

func (c *TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	marker := make([]byte, len(testMarker))
	if _, err := io.ReadFull(br, marker); err != nil {
		return fmt.Errorf("reading test marker: %w", err)
	}
	if !bytes.Equal(marker, []byte(testMarker)) {
		return fmt.Errorf("not a test-encrypted file")
	}
	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
