package types

import "fmt"

// Tone is a stylistic rendering of a generated script.
type Tone string

// Supported script tones. ToneAll is only valid as a request option and
// expands to the three concrete tones.
const (
	ToneEducational  Tone = "educational"
	ToneEntertaining Tone = "entertaining"
	ToneProfessional Tone = "professional"
	ToneAll          Tone = "all"
)

// AllTones returns the concrete tones in their canonical order.
func AllTones() []Tone {
	return []Tone{ToneEducational, ToneEntertaining, ToneProfessional}
}

// ParseTone validates a tone string from user input.
func ParseTone(s string) (Tone, error) {
	switch Tone(s) {
	case ToneEducational, ToneEntertaining, ToneProfessional, ToneAll:
		return Tone(s), nil
	}
	return "", fmt.Errorf("unrecognized tone %q (choose educational, entertaining, professional, or all)", s)
}

// Description returns the style guidance used when generating a script in
// this tone.
func (t Tone) Description() string {
	switch t {
	case ToneEducational:
		return "Clear, informative, teaching-focused. Like a knowledgeable professor."
	case ToneEntertaining:
		return "Fun, energetic, personality-driven. Like a friend sharing cool stuff."
	case ToneProfessional:
		return "Polished, authoritative, business-like. Like an industry expert."
	}
	return ""
}

// ScriptVariant is one tone rendering of the generated video script.
// Independent variants never mutate each other.
type ScriptVariant struct {
	Tone         Tone   `json:"tone"`
	Body         string `json:"body"`
	TargetLength string `json:"target_length"`
}
