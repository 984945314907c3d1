package coach

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy bounds a guided session.
type Policy struct {
	// MaxPhotos caps how many photos one session walks through.
	MaxPhotos int `json:"max_photos" yaml:"max_photos"`
	// Questions asked per photo, in order.
	Questions []string `json:"questions" yaml:"questions"`
	// PaceDelay is the narration pause between steps. Zero advances
	// immediately, which is what tests use.
	PaceDelay time.Duration `json:"pace_delay" yaml:"pace_delay"`
}

// DefaultPolicy matches the behavior the app has always shipped with:
// up to five photos per session, the standard question set.
var DefaultPolicy = Policy{
	MaxPhotos: 5,
	Questions: DefaultQuestions,
	PaceDelay: 700 * time.Millisecond,
}

// LoadPolicy reads a session policy from a JSON or YAML file. Omitted
// fields fall back to the defaults.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	p := DefaultPolicy
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON policy: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML policy: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported policy format: %s (use .json or .yaml)", ext)
	}

	if p.MaxPhotos <= 0 {
		p.MaxPhotos = DefaultPolicy.MaxPhotos
	}
	if len(p.Questions) == 0 {
		p.Questions = DefaultQuestions
	}
	return &p, nil
}
