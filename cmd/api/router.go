package api

import (
	"net/http"

	favoritesDelivery "couponbox/internal/favorites/delivery"
	offerDelivery "couponbox/internal/offer/delivery"
	sessionDelivery "couponbox/internal/session/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, offerHandler *offerDelivery.OfferHandler, sessionHandler *sessionDelivery.SessionHandler, favoritesHandler *favoritesDelivery.FavoritesHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Offer routes. These work logged out too: the dataset falls back
		// to the bundled sample when no Gmail-connected session exists.
		offers := api.Group("/offers")
		{
			offers.GET("", offerHandler.GetOffers)
			offers.POST("/refresh", offerHandler.RefreshCoupons)
			offers.GET("/suggestions", offerHandler.GetSuggestions)
		}

		api.GET("/companies", offerHandler.GetCompanies)
		api.GET("/emails/:id/html", offerHandler.GetEmailHTML)

		// Session routes
		session := api.Group("/session")
		{
			session.GET("", sessionHandler.Me)
			session.POST("/google", sessionHandler.GoogleSignIn)
			session.POST("/login", sessionHandler.Login)
			session.POST("/logout", sessionHandler.Logout)
			session.PUT("/user", sessionHandler.UpdateUser)
			session.POST("/user/refresh", sessionHandler.RefreshUser)
			session.POST("/reset", sessionHandler.Reset)
			session.GET("/gmail/status", sessionHandler.GmailStatus)
			session.GET("/gmail/connect", sessionHandler.GmailConnect)
			session.POST("/gmail/disconnect", sessionHandler.GmailDisconnect)
		}

		// Favorites routes
		favorites := api.Group("/favorites")
		{
			favorites.GET("", favoritesHandler.List)
			favorites.GET("/count", favoritesHandler.Count)
			favorites.POST("/toggle", favoritesHandler.Toggle)
			favorites.DELETE("/:id", favoritesHandler.Remove)
		}
	}
}
