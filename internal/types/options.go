package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Topic length bounds applied before any collaborator call.
const (
	MinTopicLength = 3
	MaxTopicLength = 200
)

// ValidLengths are the accepted target video length strings.
var ValidLengths = []string{
	"5-8 minutes", "8-10 minutes", "10-12 minutes",
	"12-15 minutes", "15-20 minutes", "20+ minutes",
}

// DefaultLength is the target length used when none is requested.
const DefaultLength = "10-12 minutes"

// Options configures a single pipeline run. Unrecognized or malformed values
// fail validation before any collaborator is called.
type Options struct {
	Tone       Tone   `json:"tone" validate:"required,oneof=educational entertaining professional all"`
	Variations bool   `json:"variations"`
	Length     string `json:"length" validate:"required"`
	IncludeSEO bool   `json:"include_seo"`
	OutputDir  string `json:"output_path"`
}

// DefaultOptions returns the options used when the caller specifies nothing:
// a single educational script with SEO, exported to ./output.
func DefaultOptions() Options {
	return Options{
		Tone:       ToneEducational,
		Length:     DefaultLength,
		IncludeSEO: true,
		OutputDir:  "output",
	}
}

// Validate checks the options structure using the validator plus the length
// whitelist that struct tags cannot express.
func (o *Options) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return err
	}
	for _, l := range ValidLengths {
		if o.Length == l {
			return nil
		}
	}
	return fmt.Errorf("invalid length %q (choose from: %s)", o.Length, strings.Join(ValidLengths, ", "))
}

// RequestedTones returns the concrete tones this run should generate:
// all three when variations are requested or tone is "all", otherwise the
// single selected tone.
func (o *Options) RequestedTones() []Tone {
	if o.Variations || o.Tone == ToneAll {
		return AllTones()
	}
	return []Tone{o.Tone}
}

// ValidateTopic applies the topic bounds: non-empty after trimming and within
// the length limits.
func ValidateTopic(topic string) error {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if len(trimmed) < MinTopicLength {
		return fmt.Errorf("topic too short (minimum %d characters)", MinTopicLength)
	}
	if len(trimmed) > MaxTopicLength {
		return fmt.Errorf("topic too long (maximum %d characters)", MaxTopicLength)
	}
	return nil
}
