package album

import (
	"fmt"
	"sync"
	"time"
)

// Store is the slice of the persistence layer the collection needs.
type Store interface {
	Photos() ([]Photo, error)
	SavePhotos(photos []Photo) error
}

// Classifier assigns an emotion label to a photo.
type Classifier interface {
	Classify(p Photo) string
}

// Collection owns the working set of photos. Every mutation path supplies a
// full updated copy of a photo and the collection applies it by identity
// match on ID (last-writer-wins, no partial patches).
type Collection struct {
	mu     sync.RWMutex
	store  Store
	photos []Photo
}

// Load builds the collection from the stored snapshot, falling back to the
// seed when nothing was stored. Photos without an emotion label are
// classified once at load.
func Load(st Store, seed []Photo, cls Classifier) (*Collection, error) {
	photos, err := st.Photos()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored photos: %w", err)
	}
	if len(photos) == 0 {
		photos = make([]Photo, len(seed))
		copy(photos, seed)
	}

	changed := false
	for i := range photos {
		if photos[i].Emotion == "" && cls != nil {
			photos[i].Emotion = cls.Classify(photos[i])
			changed = true
		}
	}

	c := &Collection{store: st, photos: photos}
	if changed || len(photos) == len(seed) {
		// Best effort: the in-memory set stays authoritative if this fails.
		_ = st.SavePhotos(photos)
	}
	return c, nil
}

// All returns a copy of the working set in stable order.
func (c *Collection) All() []Photo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Photo, len(c.photos))
	copy(out, c.photos)
	return out
}

// Get returns the photo with the given id.
func (c *Collection) Get(id string) (Photo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.photos {
		if p.ID == id {
			return p, true
		}
	}
	return Photo{}, false
}

// Len returns the number of photos in the working set.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.photos)
}

// Update replaces the stored record whose ID matches and persists the full
// snapshot. Unknown IDs are rejected.
func (c *Collection) Update(updated Photo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for i := range c.photos {
		if c.photos[i].ID == updated.ID {
			c.photos[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("photo not found: %s", updated.ID)
	}
	return c.store.SavePhotos(c.photos)
}

// Add appends a new photo to the working set and persists the snapshot.
func (c *Collection) Add(p Photo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.photos {
		if c.photos[i].ID == p.ID {
			return fmt.Errorf("photo already exists: %s", p.ID)
		}
	}
	c.photos = append(c.photos, p)
	return c.store.SavePhotos(c.photos)
}

// Export packages the full working set for sharing.
func (c *Collection) Export() Snapshot {
	return Snapshot{Photos: c.All(), GeneratedAt: time.Now()}
}
