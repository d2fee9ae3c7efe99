package usecase

import (
	"errors"
	"testing"

	offerdomain "couponbox/internal/offer/domain"
	"couponbox/pkg/kvstore"
)

type memStore struct {
	data   map[string]string
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", kvstore.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

func (s *memStore) Clear() error {
	s.data = map[string]string{}
	return nil
}

func offerWithID(id string) offerdomain.EnrichedOffer {
	return offerdomain.EnrichedOffer{
		ID:    id,
		Offer: offerdomain.Offer{OfferTitle: "Deal " + id},
	}
}

func TestToggleRoundTrip(t *testing.T) {
	uc := NewFavoritesUsecase(newMemStore())
	offer := offerWithID("msg-1_0")

	status, err := uc.Toggle(offer)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !status {
		t.Error("first toggle returned false")
	}
	if !uc.IsFavorite(offer.ID) {
		t.Error("IsFavorite = false after add")
	}
	if got := uc.Count(); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
	if list := uc.List(); len(list) != 1 || !list[0].IsFavorite {
		t.Errorf("List = %+v", list)
	}

	status, err = uc.Toggle(offer)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if status {
		t.Error("second toggle returned true")
	}
	if uc.IsFavorite(offer.ID) || uc.Count() != 0 {
		t.Error("offer still favorited after second toggle")
	}
}

func TestToggleWriteFailureRollsBack(t *testing.T) {
	store := newMemStore()
	uc := NewFavoritesUsecase(store)

	store.setErr = errors.New("disk full")
	status, err := uc.Toggle(offerWithID("msg-1_0"))
	if err == nil {
		t.Fatal("Toggle succeeded despite write failure")
	}
	if status {
		t.Error("failed toggle reported the new status")
	}
	if uc.Count() != 0 {
		t.Error("failed toggle mutated the list")
	}

	// Same rollback on the removal path.
	store.setErr = nil
	if _, err := uc.Toggle(offerWithID("msg-1_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	store.setErr = errors.New("disk full")
	status, err = uc.Toggle(offerWithID("msg-1_0"))
	if err == nil {
		t.Fatal("Toggle succeeded despite write failure")
	}
	if !status {
		t.Error("failed removal lost the old status")
	}
	if !uc.IsFavorite("msg-1_0") {
		t.Error("failed removal mutated the list")
	}
}

func TestRemove(t *testing.T) {
	uc := NewFavoritesUsecase(newMemStore())
	if _, err := uc.Toggle(offerWithID("msg-1_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := uc.Toggle(offerWithID("msg-2_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if err := uc.Remove("msg-1_0"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if uc.IsFavorite("msg-1_0") {
		t.Error("removed offer still favorited")
	}
	if got := uc.Count(); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}

	// Removing an unknown id is a no-op, not an error.
	if err := uc.Remove("no-such-id"); err != nil {
		t.Errorf("Remove(unknown) = %v", err)
	}
	if got := uc.Count(); got != 1 {
		t.Errorf("Count = %d after no-op remove", got)
	}
}

func TestFavoritesSurviveRestart(t *testing.T) {
	store := newMemStore()
	first := NewFavoritesUsecase(store)
	if _, err := first.Toggle(offerWithID("msg-1_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := first.Toggle(offerWithID("msg-2_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	second := NewFavoritesUsecase(store)
	if got := second.Count(); got != 2 {
		t.Fatalf("Count after restart = %d, want 2", got)
	}
	if !second.IsFavorite("msg-1_0") || !second.IsFavorite("msg-2_0") {
		t.Error("favorites lost across restart")
	}
	// Insertion order is preserved.
	list := second.List()
	if list[0].ID != "msg-1_0" || list[1].ID != "msg-2_0" {
		t.Errorf("order = [%s %s]", list[0].ID, list[1].ID)
	}
}

func TestMalformedStoredFavoritesStartEmpty(t *testing.T) {
	store := newMemStore()
	store.data["favorites"] = "{broken"

	uc := NewFavoritesUsecase(store)
	if got := uc.Count(); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
	// The store must still be writable after a bad load.
	if _, err := uc.Toggle(offerWithID("msg-1_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	uc := NewFavoritesUsecase(newMemStore())
	if _, err := uc.Toggle(offerWithID("msg-1_0")); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	list := uc.List()
	list[0].ID = "mutated"
	if !uc.IsFavorite("msg-1_0") {
		t.Error("mutating the returned list changed internal state")
	}
}
