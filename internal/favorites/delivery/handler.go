package delivery

import (
	"net/http"

	"couponbox/internal/favorites/usecase"
	offerdomain "couponbox/internal/offer/domain"

	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct {
	favorites usecase.FavoritesUsecase
}

func NewFavoritesHandler(favorites usecase.FavoritesUsecase) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	favorites := h.favorites.List()
	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

func (h *FavoritesHandler) Toggle(c *gin.Context) {
	var offer offerdomain.EnrichedOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if offer.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer id is required"})
		return
	}

	isFavorite, err := h.favorites.Toggle(offer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": offer.ID, "is_favorite": isFavorite})
}

func (h *FavoritesHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.favorites.Remove(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

func (h *FavoritesHandler) Count(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.favorites.Count()})
}
