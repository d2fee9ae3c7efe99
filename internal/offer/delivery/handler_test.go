package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	favoritesUsecase "couponbox/internal/favorites/usecase"
	offerdomain "couponbox/internal/offer/domain"
	offerdto "couponbox/internal/offer/dto"
	"couponbox/internal/offer/usecase"
	"couponbox/pkg/upstream"

	"github.com/gin-gonic/gin"
)

type stubOfferUsecase struct {
	offers  []offerdomain.EnrichedOffer
	loadErr error
	params  usecase.FilterParams
}

func (s *stubOfferUsecase) LoadCoupons(ctx context.Context, opts usecase.LoadOptions) error {
	return s.loadErr
}

func (s *stubOfferUsecase) View(params usecase.FilterParams) usecase.AggregateResult {
	s.params = params
	return usecase.FilterAndSort(s.offers, params)
}

func (s *stubOfferUsecase) Suggestions(query string, limit int) []string {
	return []string{"Nike"}
}

func (s *stubOfferUsecase) EmailHTML(ctx context.Context, messageID string) (string, error) {
	return "<html></html>", nil
}

func (s *stubOfferUsecase) Status() usecase.DatasetStatus {
	return usecase.DatasetStatus{Source: usecase.SourceSample, TotalOffers: len(s.offers)}
}

type stubFavorites struct {
	ids map[string]bool
}

func (s *stubFavorites) Toggle(offer offerdomain.EnrichedOffer) (bool, error) { return false, nil }
func (s *stubFavorites) IsFavorite(id string) bool                            { return s.ids[id] }
func (s *stubFavorites) Remove(id string) error                               { return nil }
func (s *stubFavorites) Count() int                                           { return len(s.ids) }
func (s *stubFavorites) List() []offerdomain.EnrichedOffer                    { return nil }

var _ favoritesUsecase.FavoritesUsecase = (*stubFavorites)(nil)

func newOffersRouter(uc *stubOfferUsecase, favs *stubFavorites) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOfferHandler(uc, favs)
	r.GET("/api/offers", h.GetOffers)
	r.GET("/api/companies", h.GetCompanies)
	r.POST("/api/offers/refresh", h.RefreshCoupons)
	r.GET("/api/offers/suggestions", h.GetSuggestions)
	return r
}

func testOffers() []offerdomain.EnrichedOffer {
	return []offerdomain.EnrichedOffer{
		{
			ID:                 "msg-1_0",
			EmailSenderCompany: "Nike",
			Offer:              offerdomain.Offer{OfferTitle: "25% Off", OfferType: "discount", DiscountAmount: "25% off"},
		},
		{
			ID:                 "msg-2_0",
			EmailSenderCompany: "Sephora",
			Offer:              offerdomain.Offer{OfferTitle: "Free Gift", OfferType: "free_gift"},
		},
	}
}

func TestGetOffers(t *testing.T) {
	uc := &stubOfferUsecase{offers: testOffers()}
	favs := &stubFavorites{ids: map[string]bool{"msg-1_0": true}}
	r := newOffersRouter(uc, favs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/offers?type=discount&sort=discount", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if uc.params.TypeFilter != "discount" || uc.params.SortBy != "discount" {
		t.Errorf("params = %+v", uc.params)
	}

	var resp offerdto.OffersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Total = %d, want 1", resp.Total)
	}
	offer := resp.Offers[0]
	if offer.ID != "msg-1_0" {
		t.Errorf("ID = %q", offer.ID)
	}
	if !offer.IsFavorite {
		t.Error("favorite status not applied")
	}
	if offer.TypeLabel != "Discount" || offer.TypeIcon != "pricetag" {
		t.Errorf("type metadata = %q/%q", offer.TypeLabel, offer.TypeIcon)
	}
	if resp.Dataset.Source != usecase.SourceSample {
		t.Errorf("dataset source = %q", resp.Dataset.Source)
	}
}

func TestGetOffersDefaults(t *testing.T) {
	uc := &stubOfferUsecase{offers: testOffers()}
	r := newOffersRouter(uc, &stubFavorites{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offers", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if uc.params.TypeFilter != usecase.TypeFilterAll || uc.params.SortBy != usecase.SortByCompany {
		t.Errorf("default params = %+v", uc.params)
	}
}

func TestGetCompanies(t *testing.T) {
	uc := &stubOfferUsecase{offers: testOffers()}
	r := newOffersRouter(uc, &stubFavorites{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/companies", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp offerdto.CompaniesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	if resp.Companies[0].Name != "Nike" || resp.Companies[1].Name != "Sephora" {
		t.Errorf("companies = %q, %q", resp.Companies[0].Name, resp.Companies[1].Name)
	}
}

func TestRefreshCouponsAuthError(t *testing.T) {
	uc := &stubOfferUsecase{loadErr: upstream.ErrTokenExpired}
	r := newOffersRouter(uc, &stubFavorites{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/offers/refresh", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetSuggestionsRequiresQuery(t *testing.T) {
	r := newOffersRouter(&stubOfferUsecase{}, &stubFavorites{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offers/suggestions", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offers/suggestions?q=nik", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
