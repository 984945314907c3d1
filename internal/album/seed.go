package album

import (
	_ "embed"
	"encoding/json"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the built-in starter album. It is merged with the stored
// snapshot on first load; once a snapshot exists the seed is ignored.
func Seed() []Photo {
	var photos []Photo
	if err := json.Unmarshal(seedJSON, &photos); err != nil {
		// The seed is compiled in; a decode failure is a build defect.
		panic("album: invalid embedded seed: " + err.Error())
	}
	return photos
}
