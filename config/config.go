package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"mealhub/internal/geo"
)

// Config carries the marketplace tunables; everything comes from the
// environment with deployment defaults.
type Config struct {
	HTTPAddr          string
	FeeRatePercent    int64
	PlatformAccountID int
	GeocoderURL       string
	GeocoderTimeout   time.Duration
	CacheTTL          time.Duration
	QRBaseURL         string
	FallbackCity      geo.Point
}

func Load() Config {
	return Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		FeeRatePercent:    envInt64("SERVICE_FEE_PERCENT", 15),
		PlatformAccountID: int(envInt64("PLATFORM_ACCOUNT_ID", 1)),
		GeocoderURL:       envOr("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:   10 * time.Second,
		CacheTTL:          7 * 24 * time.Hour,
		QRBaseURL:         envOr("QR_BASE_URL", "http://localhost"),
		// Berlin city centre, the last rung of the resolution ladder.
		FallbackCity: geo.Point{
			Latitude:  envFloat("FALLBACK_LAT", 52.5200),
			Longitude: envFloat("FALLBACK_LON", 13.4050),
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func MustInitLogger() *zap.Logger {
	level, err := zap.ParseAtomicLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal("Failed to parse log level:", err)
	}
	zapcfg := zap.NewProductionConfig()
	zapcfg.Level = level
	logger, err := zapcfg.Build()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	return logger
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
