package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"gilded/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Hit is a raw search hit
type Hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

const indexExistsError = "resource_already_exists_exception"

// esError is the error body returned by Elasticsearch
type esError struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// ElasticsearchClient представляет клиент документного хранилища поверх Elasticsearch
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig
}

// NewElasticsearchClient создает новый клиент Elasticsearch
func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{
		client: es,
		config: cfg,
	}, nil
}

// Config returns the client configuration
func (c *ElasticsearchClient) Config() config.ElasticsearchConfig {
	return c.config
}

// EnsureIndex создает индекс с явным маппингом если он не существует
func (c *ElasticsearchClient) EnsureIndex(ctx context.Context, index string, properties map[string]any) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		slog.Debug("Elasticsearch index already exists", "index", index)
		return nil
	}

	mapping := map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]any{
			"dynamic":    true,
			"properties": properties,
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var failure esError
		_ = json.NewDecoder(createRes.Body).Decode(&failure)

		// Another instance may have created it concurrently
		if createRes.StatusCode == http.StatusBadRequest && failure.Error.Type == indexExistsError {
			slog.Debug("Elasticsearch index created concurrently", "index", index)
			return nil
		}
		return fmt.Errorf("failed to create index %s: [%d] %s: %s",
			index, createRes.StatusCode, failure.Error.Type, failure.Error.Reason)
	}

	slog.Info("Created Elasticsearch index", "index", index)
	return nil
}

// Upsert merges doc into the stored document, creating it when missing.
// Fields absent from doc are left untouched.
func (c *ElasticsearchClient) Upsert(ctx context.Context, index, id string, doc any) error {
	body, err := json.Marshal(map[string]any{
		"doc":           doc,
		"doc_as_upsert": true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	retries := 3
	req := esapi.UpdateRequest{
		Index:           index,
		DocumentID:      id,
		Body:            bytes.NewReader(body),
		Refresh:         c.config.Refresh,
		RetryOnConflict: &retries,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("upsert error: %s", res.String())
	}
	return nil
}

// Index writes the full document. An empty id lets Elasticsearch assign one;
// the stored id is returned.
func (c *ElasticsearchClient) Index(ctx context.Context, index, id string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
		Refresh:    c.config.Refresh,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return "", fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", fmt.Errorf("indexing error: %s", res.String())
	}

	var response struct {
		ID string `json:"_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode index response: %w", err)
	}
	return response.ID, nil
}

// Get decodes the document source into dst. It reports false when the
// document or the index does not exist.
func (c *ElasticsearchClient) Get(ctx context.Context, index, id string, dst any) (bool, error) {
	req := esapi.GetRequest{
		Index:      index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return false, fmt.Errorf("failed to get document: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	var response struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(response.Source, dst); err != nil {
		return false, fmt.Errorf("failed to decode document: %w", err)
	}
	return true, nil
}

// SearchTerm returns up to size documents whose keyword field equals value.
// A missing index yields no hits.
func (c *ElasticsearchClient) SearchTerm(ctx context.Context, index, field, value string, size int) ([]Hit, error) {
	if size <= 0 {
		size = 100
	}

	query, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"term": map[string]any{
				field: value,
			},
		},
		"size": size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(query),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []Hit{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []Hit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return response.Hits.Hits, nil
}

// HealthCheck проверяет состояние Elasticsearch
func (c *ElasticsearchClient) HealthCheck(ctx context.Context) error {
	req := esapi.ClusterHealthRequest{
		WaitForStatus: "yellow",
		Timeout:       c.config.Timeout,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("health check error: %s", res.String())
	}
	return nil
}
