package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/remind/internal/album"
)

// RecordAnswer appends a {prompt, answer} record to a photo and recomputes
// its summary from all answers so far. It returns the updated photo and an
// encouragement line for the user.
func RecordAnswer(ctx context.Context, photos *album.Collection, strategy SummaryStrategy, photoID, prompt, answer string, now time.Time) (album.Photo, string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return album.Photo{}, "", fmt.Errorf("answer cannot be empty")
	}

	photo, ok := photos.Get(photoID)
	if !ok {
		return album.Photo{}, "", fmt.Errorf("photo not found: %s", photoID)
	}

	photo.Answers = append(photo.Answers, album.Answer{
		Prompt: prompt,
		Answer: answer,
		At:     now,
	})

	all := make([]string, 0, len(photo.Answers))
	for _, a := range photo.Answers {
		all = append(all, a.Answer)
	}
	photo.AISummary = strategy.Summarize(ctx, strings.Join(all, " "))

	if err := photos.Update(photo); err != nil {
		return album.Photo{}, "", err
	}
	return photo, Encouragement(answer), nil
}
