package main

import (
	"context"
	"os"

	api "couponbox/cmd/api"
	favoritesUsecase "couponbox/internal/favorites/usecase"
	offerUsecase "couponbox/internal/offer/usecase"
	sessionUsecase "couponbox/internal/session/usecase"
	"couponbox/pkg/config"
	"couponbox/pkg/kvstore"
	"couponbox/pkg/upstream"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Open the local key-value store
	store, err := kvstore.Open(cfg.KVDBPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to open local store")
	}

	// Backend client
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.HTTPTimeout)

	// Initialize use cases (dependency injection)
	sessionUc := sessionUsecase.NewSessionUsecase(store, client)
	sessionUc.Restore()

	favoritesUc := favoritesUsecase.NewFavoritesUsecase(store)

	offerUc := offerUsecase.NewOfferUsecase(client, sessionUc)
	if err := offerUc.LoadCoupons(context.Background(), offerUsecase.LoadOptions{}); err != nil {
		// Live fetch failed; serve the sample dataset until a refresh succeeds
		log.WithError(err).Warn("Initial coupon load failed, falling back to sample data")
		if err := offerUc.LoadCoupons(context.Background(), offerUsecase.LoadOptions{ForceSample: true}); err != nil {
			log.WithError(err).Fatal("Failed to load sample dataset")
		}
	}

	// Initialize HTTP handler
	handler := api.NewHandler(offerUc, sessionUc, favoritesUc, cfg)

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
