package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/remind/internal/album"
	"github.com/felixgeelhaar/remind/internal/search"
	"github.com/felixgeelhaar/remind/internal/store"
)

func dataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".remind")
}

func getStore() store.Storage {
	storeLayer, err := store.NewSQLiteStore(filepath.Join(dataDir(), "album.db"))
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return storeLayer
}

func newClassifier() *search.Classifier {
	return search.NewClassifier(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func openCollection(s store.Storage) *album.Collection {
	photos, err := album.Load(s, album.Seed(), newClassifier())
	if err != nil {
		fmt.Printf("Failed to load album: %v\n", err)
		os.Exit(1)
	}
	return photos
}
