package delivery

import (
	"errors"
	"net/http"

	favorites "couponbox/internal/favorites/usecase"
	offerdto "couponbox/internal/offer/dto"
	"couponbox/internal/offer/usecase"
	"couponbox/pkg/upstream"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUsecase usecase.OfferUsecase
	favorites    favorites.FavoritesUsecase
}

func NewOfferHandler(offerUsecase usecase.OfferUsecase, favorites favorites.FavoritesUsecase) *OfferHandler {
	return &OfferHandler{
		offerUsecase: offerUsecase,
		favorites:    favorites,
	}
}

func (h *OfferHandler) GetOffers(c *gin.Context) {
	var q offerdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.offerUsecase.View(usecase.FilterParams{
		TypeFilter: q.Type,
		Query:      q.Query,
		SortBy:     q.Sort,
	})

	offers := make([]offerdto.OfferView, 0, len(view.Offers))
	for _, offer := range view.Offers {
		offers = append(offers, offerdto.NewOfferView(offer, h.favorites.IsFavorite(offer.ID)))
	}

	c.JSON(http.StatusOK, offerdto.OffersResponse{
		Offers:  offers,
		Total:   len(offers),
		Dataset: h.offerUsecase.Status(),
	})
}

func (h *OfferHandler) GetCompanies(c *gin.Context) {
	var q offerdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.offerUsecase.View(usecase.FilterParams{
		TypeFilter: q.Type,
		Query:      q.Query,
		SortBy:     q.Sort,
	})

	companies := make([]offerdto.CompanyView, 0, len(view.Companies))
	for _, company := range view.Companies {
		cv := offerdto.CompanyView{
			Name:            company.Name,
			CompanyLogoURL:  company.CompanyLogoURL,
			CompanyDomain:   company.CompanyDomain,
			CompanyCategory: company.CompanyCategory,
			Offers:          make([]offerdto.OfferView, 0, len(company.Offers)),
		}
		for _, offer := range company.Offers {
			cv.Offers = append(cv.Offers, offerdto.NewOfferView(offer, h.favorites.IsFavorite(offer.ID)))
		}
		companies = append(companies, cv)
	}

	c.JSON(http.StatusOK, offerdto.CompaniesResponse{
		Companies: companies,
		Total:     len(companies),
		Dataset:   h.offerUsecase.Status(),
	})
}

// RefreshCoupons reloads the dataset from the backend, or from the bundled
// sample when ?sample=true. Auth failures come back as 401 so the caller can
// prompt a re-login or fall back to sample data.
func (h *OfferHandler) RefreshCoupons(c *gin.Context) {
	var q offerdto.RefreshQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.offerUsecase.LoadCoupons(c.Request.Context(), usecase.LoadOptions{ForceSample: q.Sample})
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrTokenExpired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dataset": h.offerUsecase.Status()})
}

func (h *OfferHandler) GetSuggestions(c *gin.Context) {
	var q offerdto.SuggestionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions := h.offerUsecase.Suggestions(q.Query, q.Limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, offerdto.SuggestionsResponse{Suggestions: suggestions})
}

func (h *OfferHandler) GetEmailHTML(c *gin.Context) {
	messageID := c.Param("id")
	html, err := h.offerUsecase.EmailHTML(c.Request.Context(), messageID)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, usecase.ErrNotAuthenticated),
			errors.Is(err, upstream.ErrUnauthorized),
			errors.Is(err, upstream.ErrTokenExpired):
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, offerdto.EmailHTMLResponse{Success: true, HTMLContent: html})
}
