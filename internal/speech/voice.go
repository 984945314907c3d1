package speech

import (
	"regexp"
	"strings"
)

// Voice describes one installed synthesis voice.
type Voice struct {
	Name     string
	Language string
}

// Names that commonly indicate a female voice across platforms.
var femaleNames = []string{
	"female", "woman", "girl", "samantha", "victoria", "amelia", "aria",
	"eva", "olivia", "emma", "zira", "hazel", "susan", "karen",
}

var maleNames = []string{
	"male", "man", "daniel", "alex", "fred", "george", "david", "mark",
}

// PickVoice selects a voice: preferred-gender name heuristic first, then
// any voice matching the language tag, then the first voice. Returns false
// when no voices are installed.
func PickVoice(voices []Voice, gender Gender, language string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	var candidates []string
	switch gender {
	case GenderFemale:
		candidates = femaleNames
	case GenderMale:
		candidates = maleNames
	}
	for _, v := range voices {
		name := strings.ToLower(v.Name)
		for _, c := range candidates {
			if strings.Contains(name, c) {
				return v, true
			}
		}
	}

	if language != "" {
		// "en-US" should match "en_US" and "en-us" style tags too.
		pattern := strings.ReplaceAll(regexp.QuoteMeta(language), "-", "[-_]?")
		if re, err := regexp.Compile("(?i)" + pattern); err == nil {
			for _, v := range voices {
				if re.MatchString(v.Language) {
					return v, true
				}
			}
		}
	}

	return voices[0], true
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*\s*`)

// SplitSentences breaks text into sentence-sized chunks for the chunked
// delivery mode. Text without terminal punctuation comes back whole.
func SplitSentences(text string) []string {
	matches := sentenceRe.FindAllString(text, -1)
	if matches == nil {
		return []string{text}
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitWords breaks text into words for the word-by-word delivery mode.
func SplitWords(text string) []string {
	return strings.Fields(text)
}
