package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"asir-guide-api/internal/config"
	"asir-guide-api/internal/i18n"
	apierrors "asir-guide-api/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAITestConfig(url string) *config.AIConfig {
	return &config.AIConfig{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

func TestAskSendsExpectedRequestAndExtractsFirstChoice(t *testing.T) {
	var captured chatCompletionRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "first answer"}},
				{"message": map[string]string{"role": "assistant", "content": "second answer"}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIService(newAITestConfig(server.URL))
	reply, err := svc.Ask(context.Background(), "what should I see?", "some context", i18n.English)

	require.NoError(t, err)
	assert.Equal(t, "first answer", reply)
	assert.Equal(t, "Bearer test-key", authHeader)

	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 0.7, captured.Temperature)
	assert.Equal(t, 1000, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "some context\n\nUser question: what should I see?", captured.Messages[1].Content)
}

func TestAskUpstreamErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewAIService(newAITestConfig(server.URL))
	_, err := svc.Ask(context.Background(), "question", "context", i18n.English)

	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.ErrUpstream))
	assert.False(t, apierrors.Is(err, apierrors.ErrTransport))
}

func TestAskUpstreamErrorOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	svc := NewAIService(newAITestConfig(server.URL))
	_, err := svc.Ask(context.Background(), "question", "context", i18n.English)

	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.ErrUpstream))
}

func TestAskTransportErrorWhenServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Nothing listens any more.

	svc := NewAIService(newAITestConfig(server.URL))
	_, err := svc.Ask(context.Background(), "question", "context", i18n.English)

	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.ErrTransport))
}
