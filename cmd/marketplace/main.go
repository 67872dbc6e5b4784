package main

import (
	"net/http"

	"go.uber.org/zap"

	"mealhub/config"
	httpapi "mealhub/internal/api/http"
	"mealhub/internal/geocode"
	"mealhub/internal/service"
	"mealhub/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := config.MustInitLogger()
	defer logger.Sync()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		logger.Fatal("ensure schema failed", zap.Error(err))
	}

	redisClient := config.MustInitRedis()
	defer redisClient.Close()
	cache := storage.NewRedisCache(redisClient, cfg.CacheTTL)

	orderWriter := config.NewKafkaWriter("orders")
	defer orderWriter.Close()
	reviewWriter := config.NewKafkaWriter("reviews")
	defer reviewWriter.Close()
	publisher := storage.NewKafkaPublisher(orderWriter, reviewWriter)

	geocoder := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderTimeout)
	resolver := service.NewAddressResolver(geocoder, cache, repo, repo, cfg.FallbackCity, logger)

	orders := service.NewOrderService(
		repo, repo, repo, repo,
		resolver, publisher,
		service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL},
		cfg.FeeRatePercent, cfg.PlatformAccountID,
		logger,
	)
	reviews := service.NewReviewService(repo, repo, cache, publisher, logger)
	discovery := service.NewDiscoveryService(repo, resolver, cache, logger)

	handler := httpapi.NewHandler(orders, reviews, discovery)
	router := httpapi.NewRouter(handler)

	logger.Info("marketplace listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
