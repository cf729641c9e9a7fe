package mailrelay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darideveloper/cotiza/internal/adapters/mailrelay"
	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/ports"
)

func sampleSubmission() *domain.Submission {
	return &domain.Submission{
		Brand: "daridev",
		ClientInfo: domain.ClientInfo{
			Name:  "Ana",
			Email: "ana@example.com",
		},
		Currency:   domain.CurrencyUSD,
		TotalPrice: 55,
		SelectedFeatures: []domain.PricedItem{
			{ID: "domain", Name: "domain", Price: 25, Category: "basic"},
			{ID: "hosting", Name: "hosting", Price: 10, Category: "basic"},
		},
		SelectedSections: []domain.PricedItem{
			{ID: "hero", Name: "Hero Section", Price: 20, Category: "content"},
		},
		SectionCount:  1,
		ExtraSections: 0,
		Questions:     "How long does it take?",
		Timestamp:     time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestSend_PayloadShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := mailrelay.New(srv.URL, "secret-key", "daridev")
	receipt, err := client.Send(context.Background(), sampleSubmission())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, strings.HasPrefix(receipt.QuoteID, "QUOTE-"))

	// Credentials ride in the body, per the relay contract.
	assert.Equal(t, "secret-key", got["api_key"])
	assert.Equal(t, "daridev", got["user"])
	assert.Equal(t, "New Quote Request", got["subject"])

	assert.Equal(t, "Ana", got["client_name"])
	assert.Equal(t, "ana@example.com", got["client_email"])
	assert.Equal(t, "USD", got["currency"])
	assert.Equal(t, 55.0, got["total_price"])
	assert.Equal(t, "2026-08-28T12:00:00Z", got["timestamp"])

	features, ok := got["selected_features"].([]any)
	require.True(t, ok)
	require.Len(t, features, 2)
	first := features[0].(map[string]any)
	assert.Equal(t, "domain", first["id"])
	assert.Equal(t, 25.0, first["price"])
	assert.Equal(t, "basic", first["category"])

	msg, ok := got["message"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "NEW QUOTE REQUEST")
	assert.Contains(t, msg, "Name: Ana")
	assert.Contains(t, msg, "Total: 55 USD")
	assert.Contains(t, msg, "QUESTIONS")
}

func TestSend_ServerErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "relay quota exceeded"})
	}))
	defer srv.Close()

	client := mailrelay.New(srv.URL, "k", "u")
	_, err := client.Send(context.Background(), sampleSubmission())
	require.Error(t, err)

	var notifyErr *ports.NotifyError
	require.ErrorAs(t, err, &notifyErr)
	assert.Equal(t, http.StatusInternalServerError, notifyErr.StatusCode)
	assert.Equal(t, "relay quota exceeded", notifyErr.Message)
}

func TestSend_ServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := mailrelay.New(srv.URL, "k", "u")
	_, err := client.Send(context.Background(), sampleSubmission())

	var notifyErr *ports.NotifyError
	require.ErrorAs(t, err, &notifyErr)
	assert.Equal(t, http.StatusBadGateway, notifyErr.StatusCode)
	assert.Empty(t, notifyErr.Message)
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the dial fails

	client := mailrelay.New(srv.URL, "k", "u")
	_, err := client.Send(context.Background(), sampleSubmission())
	require.Error(t, err)

	var notifyErr *ports.NotifyError
	assert.False(t, errors.As(err, &notifyErr), "network failures are not NotifyErrors")
}

func TestSend_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := mailrelay.New(srv.URL, "k", "u", mailrelay.WithTimeout(50*time.Millisecond))
	_, err := client.Send(context.Background(), sampleSubmission())
	require.Error(t, err)
}
