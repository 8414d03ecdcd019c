package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sort"
	"time"

	"RateVault/internal/model"
)

var (
	// ErrFavoriteExists is returned when adding a pair that is already saved.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrFavoriteNotFound is returned when deleting a pair that is not saved.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// AddFavorite saves a currency pair. Re-adding an existing pair is
// rejected, not overwritten.
func (s *Store) AddFavorite(base, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.loadFavorites()
	id := model.FavoriteID(base, target)
	if _, ok := favorites[id]; ok {
		return ErrFavoriteExists
	}
	favorites[id] = model.Favorite{
		Base:      base,
		Target:    target,
		Timestamp: epochSeconds(time.Now()),
	}
	return writeJSONFile(s.favoritesPath(), favorites)
}

// DeleteFavorite removes a saved pair.
func (s *Store) DeleteFavorite(base, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.loadFavorites()
	id := model.FavoriteID(base, target)
	if _, ok := favorites[id]; !ok {
		return ErrFavoriteNotFound
	}
	delete(favorites, id)
	return writeJSONFile(s.favoritesPath(), favorites)
}

// ListFavorites returns all saved pairs ordered by the time they were added.
func (s *Store) ListFavorites() []model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.loadFavorites()
	out := make([]model.Favorite, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return model.FavoriteID(out[i].Base, out[i].Target) < model.FavoriteID(out[j].Base, out[j].Target)
	})
	return out
}

// loadFavorites reads the favorites file, treating a missing or corrupt
// file as empty. Caller must hold s.mu.
func (s *Store) loadFavorites() map[string]model.Favorite {
	favorites := make(map[string]model.Favorite)
	data, err := os.ReadFile(s.favoritesPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read favorites: %v, treating as empty", err)
		}
		return favorites
	}
	if err := json.Unmarshal(data, &favorites); err != nil {
		log.Printf("[WARN] corrupt favorites file: %v, treating as empty", err)
		return make(map[string]model.Favorite)
	}
	return favorites
}
