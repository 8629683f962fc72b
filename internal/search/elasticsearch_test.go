package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gilded/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexServer answers HEAD with 404 and index creation with the given reply
func indexServer(t *testing.T, status int, body string) *ElasticsearchClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := NewElasticsearchClient(config.ElasticsearchConfig{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return client
}

var properties = map[string]any{"userId": map[string]any{"type": "keyword"}}

func TestEnsureIndex_Created(t *testing.T) {
	client := indexServer(t, http.StatusOK, `{"acknowledged":true}`)

	assert.NoError(t, client.EnsureIndex(context.Background(), "test-reservations", properties))
}

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	client := indexServer(t, http.StatusBadRequest,
		`{"error":{"type":"resource_already_exists_exception","reason":"index [test-reservations/abc] already exists"},"status":400}`)

	assert.NoError(t, client.EnsureIndex(context.Background(), "test-reservations", properties))
}

func TestEnsureIndex_BadMappingFails(t *testing.T) {
	client := indexServer(t, http.StatusBadRequest,
		`{"error":{"type":"mapper_parsing_exception","reason":"No handler for type [keywrd] declared on field [userId]"},"status":400}`)

	err := client.EnsureIndex(context.Background(), "test-reservations", properties)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}
