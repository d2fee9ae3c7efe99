package usecase

import (
	"encoding/json"
	"errors"
	"sync"

	offerdomain "couponbox/internal/offer/domain"
	"couponbox/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

const keyFavorites = "favorites"

// FavoritesUsecase maintains the persisted set of favorited offers. Identity
// is the enriched offer id; the list never holds two entries with the same
// id. Every mutation writes through to the store and is rolled back when the
// write fails.
type FavoritesUsecase interface {
	Toggle(offer offerdomain.EnrichedOffer) (bool, error)
	IsFavorite(id string) bool
	Remove(id string) error
	Count() int
	List() []offerdomain.EnrichedOffer
}

// favoritesUsecase implements FavoritesUsecase
type favoritesUsecase struct {
	store kvstore.Store

	mu        sync.Mutex
	favorites []offerdomain.EnrichedOffer
}

// NewFavoritesUsecase creates the favorites store and loads the persisted
// list. An absent or unreadable list starts empty; the error is logged, not
// surfaced.
func NewFavoritesUsecase(store kvstore.Store) FavoritesUsecase {
	u := &favoritesUsecase{store: store}

	raw, err := store.Get(keyFavorites)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.WithError(err).Warn("Failed to read stored favorites, starting empty")
		}
		return u
	}
	var favorites []offerdomain.EnrichedOffer
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		log.WithError(err).Warn("Stored favorites are malformed, starting empty")
		return u
	}
	u.favorites = favorites
	return u
}

// Toggle flips the favorite status of an offer and persists the whole list.
// Returns the new status. When the write fails the in-memory list keeps its
// previous value and the old status stands.
func (u *favoritesUsecase) Toggle(offer offerdomain.EnrichedOffer) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	var next []offerdomain.EnrichedOffer
	newStatus := false
	if u.indexOf(offer.ID) >= 0 {
		next = make([]offerdomain.EnrichedOffer, 0, len(u.favorites)-1)
		for _, fav := range u.favorites {
			if fav.ID != offer.ID {
				next = append(next, fav)
			}
		}
	} else {
		offer.IsFavorite = true
		next = append(append([]offerdomain.EnrichedOffer{}, u.favorites...), offer)
		newStatus = true
	}

	if err := u.persist(next); err != nil {
		return !newStatus, err
	}
	u.favorites = next
	return newStatus, nil
}

// IsFavorite is a membership test by offer id.
func (u *favoritesUsecase) IsFavorite(id string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.indexOf(id) >= 0
}

// Remove deletes the entry with the given id and persists. Removing an
// absent id is a no-op.
func (u *favoritesUsecase) Remove(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.indexOf(id) < 0 {
		return nil
	}
	next := make([]offerdomain.EnrichedOffer, 0, len(u.favorites)-1)
	for _, fav := range u.favorites {
		if fav.ID != id {
			next = append(next, fav)
		}
	}
	if err := u.persist(next); err != nil {
		return err
	}
	u.favorites = next
	return nil
}

func (u *favoritesUsecase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.favorites)
}

// List returns a copy of the current favorites in insertion order.
func (u *favoritesUsecase) List() []offerdomain.EnrichedOffer {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]offerdomain.EnrichedOffer, len(u.favorites))
	copy(out, u.favorites)
	return out
}

// indexOf requires u.mu held.
func (u *favoritesUsecase) indexOf(id string) int {
	for i := range u.favorites {
		if u.favorites[i].ID == id {
			return i
		}
	}
	return -1
}

func (u *favoritesUsecase) persist(favorites []offerdomain.EnrichedOffer) error {
	if favorites == nil {
		favorites = []offerdomain.EnrichedOffer{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return err
	}
	if err := u.store.Set(keyFavorites, string(raw)); err != nil {
		log.WithError(err).Error("Failed to persist favorites")
		return err
	}
	return nil
}
