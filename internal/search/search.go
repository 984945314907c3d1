// Package search implements keyword matching and emotion categorization
// over photo metadata. Both work on the same lower-cased haystack built
// from a photo's title, tags and comments.
package search

import (
	"math/rand"
	"strings"

	"github.com/felixgeelhaar/remind/internal/album"
)

// Haystack concatenates a photo's title, tags and comments into one
// lower-cased string used as the matching substrate.
func Haystack(p album.Photo) string {
	parts := make([]string, 0, 1+len(p.Tags)+len(p.Comments))
	parts = append(parts, p.Title)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Comments...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Search filters photos by free-text query. An empty query returns the
// input unchanged. Otherwise a photo matches when at least one
// whitespace-separated token of the query is a substring of its haystack;
// a non-empty query with zero tokens (all whitespace) matches nothing.
// Recall over precision: loosely phrased queries should still find
// something. Relative input order is preserved, there is no ranking.
func Search(query string, photos []album.Photo) []album.Photo {
	if query == "" {
		return photos
	}

	words := strings.Fields(strings.ToLower(query))

	matched := []album.Photo{}
	for _, p := range photos {
		hay := Haystack(p)
		for _, w := range words {
			if strings.Contains(hay, w) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

// emotionTable is evaluated in order; the first emotion with any keyword
// hit wins.
var emotionTable = []struct {
	emotion  string
	keywords []string
}{
	{album.EmotionJoy, []string{"happy", "joy", "fun", "party", "celebrate", "cute"}},
	{album.EmotionNostalgia, []string{"nostalgia", "old", "memory", "remind", "childhood"}},
	{album.EmotionPeace, []string{"calm", "peace", "quiet", "serene", "relax"}},
	{album.EmotionSurprise, []string{"surprise", "wow", "amazing"}},
	{album.EmotionSadness, []string{"sad", "cry", "miss"}},
}

// fallbackEmotions is the random pick pool when no keyword matched.
var fallbackEmotions = []string{
	album.EmotionJoy,
	album.EmotionPeace,
	album.EmotionNostalgia,
	album.EmotionWonder,
}

// Classifier assigns heuristic emotion labels. The random source is
// injected so the no-match fallback is deterministic in tests.
type Classifier struct {
	rng *rand.Rand
}

// NewClassifier creates a classifier backed by the given random source.
func NewClassifier(rng *rand.Rand) *Classifier {
	return &Classifier{rng: rng}
}

// Classify returns the first emotion whose keyword list has a substring
// match in the photo's haystack, or a uniformly random fallback label.
func (c *Classifier) Classify(p album.Photo) string {
	hay := Haystack(p)
	for _, entry := range emotionTable {
		for _, k := range entry.keywords {
			if strings.Contains(hay, k) {
				return entry.emotion
			}
		}
	}
	return fallbackEmotions[c.rng.Intn(len(fallbackEmotions))]
}
