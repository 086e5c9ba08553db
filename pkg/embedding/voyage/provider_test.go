package voyage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestShape(t *testing.T) {
	var captured struct {
		auth        string
		contentType string
		body        map[string]interface{}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &captured.body))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer srv.Close()

	p := NewVoyageProvider("test-key", srv.URL, "voyage-multimodal-3")

	vec, err := p.Generate(context.Background(), "floral border")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)

	assert.Equal(t, "Bearer test-key", captured.auth)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Equal(t, "voyage-multimodal-3", captured.body["model"])
	assert.Equal(t, "query", captured.body["input_type"])

	// The multimodal shape nests the text as a typed segment.
	inputs, ok := captured.body["inputs"].([]interface{})
	require.True(t, ok)
	require.Len(t, inputs, 1)
	segments := inputs[0].([]interface{})
	require.Len(t, segments, 1)
	seg := segments[0].(map[string]interface{})
	assert.Equal(t, "text", seg["type"])
	assert.Equal(t, "floral border", seg["text"])
}

func TestGenerateNoRetryByDefault(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewVoyageProvider("test-key", srv.URL, "voyage-multimodal-3")

	_, err := p.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, 1, hits, "search path makes one attempt and lets the caller fall back")
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "model not found"},
		})
	}))
	defer srv.Close()

	p := NewVoyageProvider("test-key", srv.URL, "nope")

	_, err := p.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerateEmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer srv.Close()

	p := NewVoyageProvider("test-key", srv.URL, "voyage-multimodal-3")

	_, err := p.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty embedding")
}
