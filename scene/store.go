package scene

import (
	"github.com/horizonkit/texpack/internal/imageio"
	"github.com/horizonkit/texpack/internal/texcache"
)

// defaultStoreLimit bounds the shared decoded-image cache. Batches rarely
// touch more distinct textures than this; older entries age out.
const defaultStoreLimit = 256

// Store decodes image files and memoizes the results, so materials sharing
// a texture decode it once per batch. Safe for concurrent use.
type Store struct {
	cache *texcache.Cache[string, loaded]
}

// loaded memoizes one decode attempt, failures included, so a broken file
// is not re-read for every material referencing it.
type loaded struct {
	img *imageio.Image
	err error
}

// NewStore creates a store evicting past limit decoded images. A limit of
// zero means unbounded.
func NewStore(limit int) *Store {
	return &Store{cache: texcache.New[string, loaded](limit)}
}

// Load returns the decoded image at path, from cache when possible.
func (s *Store) Load(path string) (*imageio.Image, error) {
	l := s.cache.GetOrCreate(path, func() loaded {
		img, err := imageio.Load(path)
		return loaded{img: img, err: err}
	})
	return l.img, l.err
}

// defaultStore backs LoadImage and the manifest loader.
var defaultStore = NewStore(defaultStoreLimit)

// LoadImage decodes an image file through the shared package store.
func LoadImage(path string) (*imageio.Image, error) {
	return defaultStore.Load(path)
}
