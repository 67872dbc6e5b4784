package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mealhub/config"
	"mealhub/internal/service"
	"mealhub/internal/storage"
)

func main() {
	logger := config.MustInitLogger()
	defer logger.Sync()

	redisClient := config.MustInitRedis()
	defer redisClient.Close()
	analytics := storage.NewRedisCache(redisClient, 0)

	orderReader := config.NewKafkaReader("orders", "aggregator")
	defer orderReader.Close()
	reviewReader := config.NewKafkaReader("reviews", "aggregator")
	defer reviewReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go service.NewConsumer(orderReader, analytics, logger).Start(ctx)
	go service.NewConsumer(reviewReader, analytics, logger).Start(ctx)

	<-ctx.Done()
	logger.Info("aggregator shutting down")
}
