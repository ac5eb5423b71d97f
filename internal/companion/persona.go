// Package companion implements a simulated supportive chat partner.
// Replies are canned; nothing leaves the process.
package companion

import (
	"fmt"
	"strings"
)

// Voice is the spoken voice preference of a persona.
type Voice string

const (
	VoiceFemale Voice = "female"
	VoiceMale   Voice = "male"
)

// DefaultName is the persona name used when none is configured.
const DefaultName = "Asteria"

// ParseVoice resolves a voice name, ignoring case.
func ParseVoice(s string) (Voice, error) {
	switch Voice(strings.ToLower(strings.TrimSpace(s))) {
	case VoiceFemale:
		return VoiceFemale, nil
	case VoiceMale:
		return VoiceMale, nil
	default:
		return "", fmt.Errorf("unknown voice %q: must be %q or %q", s, VoiceFemale, VoiceMale)
	}
}

// Persona is how the companion presents itself.
type Persona struct {
	Name  string
	Voice Voice
}

// DefaultPersona returns Asteria with a female voice.
func DefaultPersona() Persona {
	return Persona{Name: DefaultName, Voice: VoiceFemale}
}

// DisplayName returns the name, or DefaultName when blank.
func (p Persona) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return DefaultName
}

// Greeting is the first message of every session.
func (p Persona) Greeting() string {
	return fmt.Sprintf("Hello, I'm %s. I'm here to listen without judgment and support you through whatever you're feeling. How are you doing today?", p.DisplayName())
}
