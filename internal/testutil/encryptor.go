package testutil

import (
	"storyshare/internal/encryption"
	"storyshare/internal/story"
)

// NewTestEncryptor returns a deterministic encryptor unlocked by the empty passphrase.
func NewTestEncryptor() story.Encryptor {
	return encryption.NewTestEncryptor()
}
