package api

import (
	favoritesDelivery "couponbox/internal/favorites/delivery"
	favoritesUsecase "couponbox/internal/favorites/usecase"
	offerDelivery "couponbox/internal/offer/delivery"
	offerUsecase "couponbox/internal/offer/usecase"
	sessionDelivery "couponbox/internal/session/delivery"
	sessionUsecase "couponbox/internal/session/usecase"
	"couponbox/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	offerHandler     *offerDelivery.OfferHandler
	sessionHandler   *sessionDelivery.SessionHandler
	favoritesHandler *favoritesDelivery.FavoritesHandler
	config           *config.Config
}

func NewHandler(offerUc offerUsecase.OfferUsecase, sessionUc sessionUsecase.SessionUsecase, favoritesUc favoritesUsecase.FavoritesUsecase, cfg *config.Config) *Handler {
	return &Handler{
		offerHandler:     offerDelivery.NewOfferHandler(offerUc, favoritesUc),
		sessionHandler:   sessionDelivery.NewSessionHandler(sessionUc),
		favoritesHandler: favoritesDelivery.NewFavoritesHandler(favoritesUc),
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.offerHandler, h.sessionHandler, h.favoritesHandler)

	return r.Run(addr)
}
