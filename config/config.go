package config

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the jewelry service.
type Config struct {
	Port     string
	MongoURL string
	MongoDB  string
	RedisURL string

	// Kafka order events (optional; disabled when brokers are empty)
	KafkaBrokers string
	KafkaTopic   string

	// S3 image uploads (presign only; hosting itself is external)
	S3Bucket         string
	S3Prefix         string
	S3Endpoint       string
	CloudfrontDomain string
}

// LoadConfig loads environment variables into a Config struct and validates
// the ones the service cannot run without.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             os.Getenv("PORT"),
		MongoURL:         os.Getenv("MONGO_URL"),
		MongoDB:          os.Getenv("MONGO_DB"),
		RedisURL:         os.Getenv("REDIS_URL"),
		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:       os.Getenv("KAFKA_ORDER_TOPIC"),
		S3Bucket:         os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:         os.Getenv("AWS_S3_PREFIX"),
		S3Endpoint:       os.Getenv("AWS_S3_ENDPOINT"),
		CloudfrontDomain: os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8082"
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "jewelry"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://redis:6379"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "order-events"
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = "jewelry-assets"
	}
	if cfg.S3Prefix == "" {
		cfg.S3Prefix = "products/"
	}

	if cfg.MongoDB == "" {
		return nil, fmt.Errorf("MONGO_DB must not be empty")
	}

	return cfg, nil
}
