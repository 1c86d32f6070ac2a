// Package emotions holds the fixed GoEmotions label set, its localized display
// names and the confidence tiers derived from a label's probability.
package emotions

import (
	"errors"
	"fmt"
)

// Labels is the model's label set in GoEmotions order.
var Labels = [...]string{
	"admiration",
	"amusement",
	"anger",
	"annoyance",
	"approval",
	"caring",
	"confusion",
	"curiosity",
	"desire",
	"disappointment",
	"disapproval",
	"disgust",
	"embarrassment",
	"excitement",
	"fear",
	"gratitude",
	"grief",
	"joy",
	"love",
	"nervousness",
	"optimism",
	"pride",
	"realization",
	"relief",
	"remorse",
	"sadness",
	"surprise",
	"neutral",
}

// LabelCount is the number of labels every classification covers.
const LabelCount = len(Labels)

var ErrIncompleteScores = errors.New("scores do not cover the label set")

var portuguese = map[string]string{
	"admiration":     "admiração",
	"amusement":      "diversão",
	"anger":          "raiva",
	"annoyance":      "irritação",
	"approval":       "aprovação",
	"caring":         "cuidado",
	"confusion":      "confusão",
	"curiosity":      "curiosidade",
	"desire":         "desejo",
	"disappointment": "decepção",
	"disapproval":    "desaprovação",
	"disgust":        "nojo",
	"embarrassment":  "vergonha",
	"excitement":     "empolgação",
	"fear":           "medo",
	"gratitude":      "gratidão",
	"grief":          "tristeza profunda",
	"joy":            "alegria",
	"love":           "amor",
	"nervousness":    "nervosismo",
	"optimism":       "otimismo",
	"pride":          "orgulho",
	"realization":    "percepção",
	"relief":         "alívio",
	"remorse":        "remorso",
	"sadness":        "tristeza",
	"surprise":       "surpresa",
	"neutral":        "neutro",
}

// Translator maps model labels to display names for one locale.
type Translator struct {
	locale string
	names  map[string]string
}

// NewTranslator returns the translator for locale ("pt" or "en").
func NewTranslator(locale string) (*Translator, error) {
	switch locale {
	case "pt":
		return &Translator{locale: locale, names: portuguese}, nil
	case "en":
		return &Translator{locale: locale, names: nil}, nil
	default:
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
}

func (t *Translator) Locale() string {
	return t.locale
}

// Translate returns the display name of label, or label itself when it has none.
func (t *Translator) Translate(label string) string {
	if name, ok := t.names[label]; ok {
		return name
	}
	return label
}

// Score is a label paired with its model probability in [0,1].
type Score struct {
	Label       string  `json:"label"`
	Probability float64 `json:"score"`
}

// Validate checks that scores hold every label exactly once.
func Validate(scores []Score) error {
	if len(scores) != LabelCount {
		return fmt.Errorf("%w: got %d scores, want %d", ErrIncompleteScores, len(scores), LabelCount)
	}

	seen := make(map[string]struct{}, LabelCount)
	for _, s := range scores {
		if !IsLabel(s.Label) {
			return fmt.Errorf("%w: unknown label %q", ErrIncompleteScores, s.Label)
		}
		if _, dup := seen[s.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrIncompleteScores, s.Label)
		}
		seen[s.Label] = struct{}{}
	}

	return nil
}

var labelSet = func() map[string]struct{} {
	set := make(map[string]struct{}, LabelCount)
	for _, l := range Labels {
		set[l] = struct{}{}
	}
	return set
}()

func IsLabel(label string) bool {
	_, ok := labelSet[label]
	return ok
}
