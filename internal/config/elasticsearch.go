package config

import (
	"os"
	"time"
)

// ElasticsearchConfig содержит конфигурацию для подключения к Elasticsearch
type ElasticsearchConfig struct {
	URL         string
	IndexPrefix string
	Username    string
	Password    string
	MaxRetries  int
	Timeout     time.Duration
	// Refresh policy for writes: "true", "false" or "wait_for"
	Refresh string
}

// LoadElasticsearchConfig загружает конфигурацию Elasticsearch из переменных окружения
func LoadElasticsearchConfig() ElasticsearchConfig {
	return ElasticsearchConfig{
		URL:         getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		IndexPrefix: getEnv("ELASTICSEARCH_INDEX_PREFIX", "gilded"),
		Username:    os.Getenv("ELASTICSEARCH_USERNAME"),
		Password:    os.Getenv("ELASTICSEARCH_PASSWORD"),
		MaxRetries:  getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		Timeout:     getEnvDuration("ELASTICSEARCH_TIMEOUT", 30*time.Second),
		Refresh:     getEnv("ELASTICSEARCH_REFRESH", "wait_for"),
	}
}

// IndexName returns the prefixed index for a collection
func (c ElasticsearchConfig) IndexName(collection string) string {
	if c.IndexPrefix == "" {
		return collection
	}
	return c.IndexPrefix + "-" + collection
}
