package contentfilter

import (
	goaway "github.com/TwiN/go-away"

	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// defaultCustomWords extends the base dictionary with terms the wall
// refuses regardless of phrasing.
var defaultCustomWords = []string{
	"violence", "threat", "harm", "suicide", "drug", "illegal", "kill",
}

// Filter screens submitted text against a disallowed-term dictionary.
// Filtering is synchronous and runs before any persistence.
type Filter struct {
	detector *goaway.ProfanityDetector
}

// New builds a filter from the base dictionary plus the given supplement.
// With no supplement the default sensitive-term list is used.
func New(customWords ...string) *Filter {
	if len(customWords) == 0 {
		customWords = defaultCustomWords
	}

	profanities := make([]string, 0, len(goaway.DefaultProfanities)+len(customWords))
	profanities = append(profanities, goaway.DefaultProfanities...)
	profanities = append(profanities, customWords...)

	detector := goaway.NewProfanityDetector().
		WithCustomDictionary(profanities, goaway.DefaultFalsePositives, goaway.DefaultFalseNegatives)

	return &Filter{detector: detector}
}

// Clean returns the text with disallowed substrings masked, or
// ErrPolicyViolation when the text is rejected outright.
func (f *Filter) Clean(text string) (string, error) {
	if f.detector.IsProfane(text) {
		return "", apperrors.ErrPolicyViolation
	}
	return f.detector.Censor(text), nil
}

// IsProfane reports whether the text matches the dictionary
func (f *Filter) IsProfane(text string) bool {
	return f.detector.IsProfane(text)
}
