package album

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// ImportGlobs adds photos for every image file matching the given glob
// patterns. The file path becomes the media reference and the base name
// (without extension) the title. Already-imported paths are skipped.
func (c *Collection) ImportGlobs(patterns []string, cls Classifier) (int, error) {
	known := map[string]bool{}
	for _, p := range c.All() {
		known[p.URL] = true
	}

	added := 0
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return added, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, path := range matches {
			if !imageExts[strings.ToLower(filepath.Ext(path))] || known[path] {
				continue
			}
			photo := Photo{
				ID:    uuid.New().String(),
				URL:   path,
				Title: titleFromPath(path),
				Tags:  []string{filepath.Base(filepath.Dir(path))},
			}
			if cls != nil {
				photo.Emotion = cls.Classify(photo)
			}
			if err := c.Add(photo); err != nil {
				return added, err
			}
			known[path] = true
			added++
		}
	}
	return added, nil
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(strings.ReplaceAll(name, "_", " "), "-", " ")
}
