package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/agrinethra/plant-health-relay/internal/api/http/middleware"
	"github.com/agrinethra/plant-health-relay/internal/plant_health/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindwiseClient_HealthAssessment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/health_assessment", r.URL.Path)
		assert.Equal(t,
			"details=local_name,description,treatment,classification,common_names,cause",
			r.URL.RawQuery)
		assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"images":["data:image/jpeg;base64,aW1n"],"health":"only"}`, string(raw))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": {"is_healthy": {"binary": false}}}`))
	}))
	defer server.Close()

	client := NewKindwiseClient(server.URL, "test-key", 5*time.Second)

	res, err := client.HealthAssessment(context.Background(), domain.NewAssessmentRequest("aW1n"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.JSONEq(t, `{"result": {"is_healthy": {"binary": false}}}`, string(res.Body))
}

func TestKindwiseClient_EmptyAPIKeyStillSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values, ok := r.Header["Api-Key"]
		assert.True(t, ok, "Api-Key header should be present")
		assert.Equal(t, []string{""}, values)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "API key not provided"}`))
	}))
	defer server.Close()

	client := NewKindwiseClient(server.URL, "", 5*time.Second)

	res, err := client.HealthAssessment(context.Background(), domain.NewAssessmentRequest("x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.JSONEq(t, `{"error": "API key not provided"}`, string(res.Body))
}

func TestKindwiseClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	client := NewKindwiseClient(server.URL, "k", 5*time.Second)
	ctx := middleware.WithRequestID(context.Background(), "rid-502")

	_, err := client.HealthAssessment(ctx, domain.NewAssessmentRequest("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
	assert.Contains(t, err.Error(), "status 502")

	// status and raw body are still logged before the error surfaces
	assert.Contains(t, logs.String(), "[warn] request_id=rid-502")
	assert.Contains(t, logs.String(), "status=502 raw_response=<html>bad gateway</html>")
}

func TestKindwiseClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewKindwiseClient(url, "k", 5*time.Second)

	_, err := client.HealthAssessment(context.Background(), domain.NewAssessmentRequest("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream request failed")
}

func TestKindwiseClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewKindwiseClient(server.URL, "k", 50*time.Millisecond)

	_, err := client.HealthAssessment(context.Background(), domain.NewAssessmentRequest("x"))
	require.Error(t, err)
}

func TestKindwiseClient_HealthAssessmentURL(t *testing.T) {
	client := NewKindwiseClient("https://plant.id", "k", 0)
	assert.Equal(t,
		"https://plant.id/api/v3/health_assessment?details=local_name,description,treatment,classification,common_names,cause",
		client.HealthAssessmentURL())
}
